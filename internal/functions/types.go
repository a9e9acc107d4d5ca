// Package functions projects internal function definitions into the
// descriptors consumed by the management API and the scale controller.
package functions

import (
	"encoding/json"
	"strings"
)

// triggerSuffix marks a binding type as the function's invocation source.
// The comparison is case-insensitive.
const triggerSuffix = "trigger"

// httpTriggerType is the binding type that makes a function HTTP-invocable.
const httpTriggerType = "httpTrigger"

// configFileName is the per-function metadata file under the script root.
const configFileName = "function.json"

// Binding is a declared input/output connection point for a function.
// RawProperties carries the unparsed property bag from function.json;
// keys are looked up case-insensitively.
type Binding struct {
	Type          string
	Direction     string
	RawProperties map[string]any
}

// IsTrigger reports whether the binding's type identifies it as the
// function's invocation source.
func (b Binding) IsTrigger() bool {
	return hasTriggerSuffix(b.Type)
}

// IsInput reports whether the binding is an input binding. Bindings that
// don't declare a direction count as inputs; triggers never declare "out".
func (b Binding) IsInput() bool {
	return !strings.EqualFold(b.Direction, "out")
}

// Property returns the binding property stored under key, matched
// case-insensitively.
func (b Binding) Property(key string) (any, bool) {
	return lookupFold(b.RawProperties, key)
}

func hasTriggerSuffix(bindingType string) bool {
	return len(bindingType) >= len(triggerSuffix) &&
		strings.EqualFold(bindingType[len(bindingType)-len(triggerSuffix):], triggerSuffix)
}

// FunctionDefinition is the internal record describing a single deployable
// function. Names are compared case-insensitively and must be safe as both
// filesystem and URL path segments.
type FunctionDefinition struct {
	Name              string
	EntryPoint        string
	ScriptFile        string
	Language          string
	FunctionDirectory string
	IsDirect          bool
	IsDisabled        bool
	Bindings          []Binding
}

// InputBindings returns the definition's input bindings in declaration order.
func (d *FunctionDefinition) InputBindings() []Binding {
	inputs := make([]Binding, 0, len(d.Bindings))
	for _, b := range d.Bindings {
		if b.IsInput() {
			inputs = append(inputs, b)
		}
	}
	return inputs
}

// HostPaths locates the host's function assets on the backing store.
type HostPaths struct {
	// RootScriptPath contains one subdirectory per function.
	RootScriptPath string

	// TestDataPath holds per-function test data files. Empty disables
	// test data resolution.
	TestDataPath string
}

// FunctionDescriptor is the externally consumable projection of a function.
// Pointer fields are present in the JSON output only when their source
// exists or is configured. TestData is a pre-encoded JSON value so the
// three states stay distinct on the wire: absent when test data is
// disabled, the literal null when capping withholds the content, and the
// encoded string otherwise.
type FunctionDescriptor struct {
	Name               string          `json:"name"`
	Href               string          `json:"href"`
	Config             map[string]any  `json:"config"`
	IsDirect           bool            `json:"isDirect"`
	IsDisabled         bool            `json:"isDisabled"`
	IsProxy            bool            `json:"isProxy"`
	Language           string          `json:"language"`
	InvokeURLTemplate  *string         `json:"invokeUrlTemplate"`
	ScriptRootPathHref *string         `json:"scriptRootPathHref,omitempty"`
	ConfigHref         *string         `json:"configHref,omitempty"`
	TestDataHref       *string         `json:"testDataHref,omitempty"`
	TestData           json.RawMessage `json:"testData,omitempty"`
	ScriptHref         *string         `json:"scriptHref,omitempty"`
}
