package functions

import (
	"path"
	"strings"
)

// DefaultBaseURL is used when the caller supplies no base URL.
const DefaultBaseURL = "https://localhost/"

// BuildHref returns the management resource URL for a function:
// {baseUrl}/admin/functions/{name}.
func BuildHref(name, baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/admin/functions/" + name
}

// BuildVfsHref returns the virtual-file-system URL for a store path:
// {baseUrl}/admin/vfs/{path}.
func BuildVfsHref(baseURL, storePath string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/admin/vfs/" + strings.TrimLeft(path.Clean(storePath), "/")
}

// BuildInvokeURLTemplate returns the lower-cased invocation URL template for
// an HTTP-invocable function, or nil when the function has no httpTrigger
// input binding. A "route" property on the trigger (matched
// case-insensitively) replaces the function name as the final segment:
// {baseUrl}[/{routePrefix}]/{route|name}.
func BuildInvokeURLTemplate(baseURL string, def *FunctionDefinition, routePrefix string) *string {
	httpBinding := findHTTPTrigger(def)
	if httpBinding == nil {
		return nil
	}

	customRoute := ""
	if route, ok := stringProperty(httpBinding.RawProperties, "route"); ok {
		customRoute = route
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(baseURL, "/"))

	if routePrefix != "" {
		sb.WriteString("/")
		sb.WriteString(strings.TrimRight(routePrefix, "/"))
	}

	if customRoute != "" {
		sb.WriteString("/")
		sb.WriteString(customRoute)
	} else {
		sb.WriteString("/")
		sb.WriteString(def.Name)
	}

	// Routing is case-insensitive; normalize the template.
	template := strings.ToLower(sb.String())
	return &template
}

// findHTTPTrigger returns the first input binding typed httpTrigger,
// compared case-insensitively, or nil.
func findHTTPTrigger(def *FunctionDefinition) *Binding {
	for i := range def.Bindings {
		b := &def.Bindings[i]
		if b.IsInput() && strings.EqualFold(b.Type, httpTriggerType) {
			return b
		}
	}
	return nil
}
