package functions

import "context"

// TriggerExtractor isolates the trigger binding of a function for the scale
// controller. It reuses ConfigResolver, so the file-over-memory precedence
// rules apply here too.
type TriggerExtractor struct {
	resolver *ConfigResolver
}

func NewTriggerExtractor(resolver *ConfigResolver) *TriggerExtractor {
	return &TriggerExtractor{resolver: resolver}
}

// Extract returns the function's trigger binding augmented with a
// "functionName" key, or nil when the function has no trigger. The scan is
// in array order and the first binding whose type ends in "Trigger"
// (case-insensitive) wins. The returned object is a copy; the resolved
// configuration is never mutated.
func (e *TriggerExtractor) Extract(ctx context.Context, def *FunctionDefinition, hostPaths HostPaths) map[string]any {
	cfg := e.resolver.Resolve(ctx, def, hostPaths)

	raw, ok := lookupFold(cfg, "bindings")
	if !ok {
		return nil
	}

	bindings, ok := raw.([]any)
	if !ok {
		return nil
	}

	for _, el := range bindings {
		binding, ok := el.(map[string]any)
		if !ok {
			continue
		}

		bindingType, ok := stringProperty(binding, "type")
		if !ok || !hasTriggerSuffix(bindingType) {
			continue
		}

		trigger := make(map[string]any, len(binding)+1)
		for k, v := range binding {
			trigger[k] = v
		}
		trigger["functionName"] = def.Name

		return trigger
	}

	return nil
}
