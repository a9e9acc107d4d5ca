package functions

import "testing"

func TestBuildHref(t *testing.T) {
	tests := []struct {
		name    string
		fnName  string
		baseURL string
		want    string
	}{
		{"plain base", "Foo", "https://host", "https://host/admin/functions/Foo"},
		{"trailing slash", "Foo", "https://host/", "https://host/admin/functions/Foo"},
		{"default base", "Foo", "", "https://localhost/admin/functions/Foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildHref(tt.fnName, tt.baseURL); got != tt.want {
				t.Errorf("BuildHref() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildVfsHref(t *testing.T) {
	got := BuildVfsHref("https://host/", "functions/Foo/function.json")
	want := "https://host/admin/vfs/functions/Foo/function.json"
	if got != want {
		t.Errorf("BuildVfsHref() = %q, want %q", got, want)
	}
}

func httpFunction(name, route string) *FunctionDefinition {
	props := map[string]any{"type": "httpTrigger", "direction": "in"}
	if route != "" {
		props["route"] = route
	}
	return &FunctionDefinition{
		Name: name,
		Bindings: []Binding{
			{Type: "httpTrigger", Direction: "in", RawProperties: props},
		},
	}
}

func TestBuildInvokeURLTemplate(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		def         *FunctionDefinition
		routePrefix string
		want        string
	}{
		{
			name:        "name as route",
			baseURL:     "https://host/",
			def:         httpFunction("Foo", ""),
			routePrefix: "api",
			want:        "https://host/api/foo",
		},
		{
			name:        "custom route",
			baseURL:     "https://host/",
			def:         httpFunction("Foo", "items/{id}"),
			routePrefix: "api",
			want:        "https://host/api/items/{id}",
		},
		{
			name:        "empty route prefix",
			baseURL:     "https://host/",
			def:         httpFunction("Foo", ""),
			routePrefix: "",
			want:        "https://host/foo",
		},
		{
			name:        "prefix trailing slash trimmed",
			baseURL:     "https://host",
			def:         httpFunction("Foo", ""),
			routePrefix: "api/",
			want:        "https://host/api/foo",
		},
		{
			name:        "result lower-cased",
			baseURL:     "https://Host/",
			def:         httpFunction("MixedCase", ""),
			routePrefix: "API",
			want:        "https://host/api/mixedcase",
		},
		{
			name:        "default base url",
			baseURL:     "",
			def:         httpFunction("Foo", ""),
			routePrefix: "api",
			want:        "https://localhost/api/foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildInvokeURLTemplate(tt.baseURL, tt.def, tt.routePrefix)
			if got == nil {
				t.Fatal("BuildInvokeURLTemplate() = nil, want URL")
			}
			if *got != tt.want {
				t.Errorf("BuildInvokeURLTemplate() = %q, want %q", *got, tt.want)
			}
		})
	}
}

func TestBuildInvokeURLTemplate_NoHTTPTrigger(t *testing.T) {
	tests := []struct {
		name string
		def  *FunctionDefinition
	}{
		{"no bindings", &FunctionDefinition{Name: "Foo"}},
		{
			"queue trigger only",
			&FunctionDefinition{
				Name:     "Foo",
				Bindings: []Binding{{Type: "queueTrigger", Direction: "in"}},
			},
		},
		{
			"http binding is output",
			&FunctionDefinition{
				Name:     "Foo",
				Bindings: []Binding{{Type: "httpTrigger", Direction: "out"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildInvokeURLTemplate("https://host/", tt.def, "api"); got != nil {
				t.Errorf("BuildInvokeURLTemplate() = %q, want nil", *got)
			}
		})
	}
}

func TestBuildInvokeURLTemplate_CaseInsensitiveType(t *testing.T) {
	def := &FunctionDefinition{
		Name: "Foo",
		Bindings: []Binding{
			{Type: "HTTPTRIGGER", Direction: "in", RawProperties: map[string]any{"Route": "Items"}},
		},
	}

	got := BuildInvokeURLTemplate("https://host/", def, "api")
	if got == nil {
		t.Fatal("BuildInvokeURLTemplate() = nil, want URL")
	}
	if *got != "https://host/api/items" {
		t.Errorf("BuildInvokeURLTemplate() = %q, want https://host/api/items", *got)
	}
}
