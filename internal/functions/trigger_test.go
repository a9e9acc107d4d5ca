package functions

import (
	"context"
	"testing"
)

func TestTriggerExtractor_NoBindings(t *testing.T) {
	store, rootDir := newTestStore(t)
	extractor := NewTriggerExtractor(NewConfigResolver(store))

	tests := []struct {
		name    string
		content string
	}{
		{"no bindings key", `{"language":"node"}`},
		{"empty bindings", `{"bindings":[]}`},
		{"bindings not an array", `{"bindings":{"type":"httpTrigger"}}`},
		{"no trigger binding", `{"bindings":[{"type":"blob"},{"type":"queue"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFunctionConfig(t, rootDir, "Fn", tt.content)

			def := &FunctionDefinition{Name: "Fn"}
			if got := extractor.Extract(context.Background(), def, testHostPaths()); got != nil {
				t.Errorf("Extract() = %#v, want nil", got)
			}
		})
	}
}

func TestTriggerExtractor_FirstMatchWins(t *testing.T) {
	store, rootDir := newTestStore(t)
	resolver := NewConfigResolver(store)
	extractor := NewTriggerExtractor(resolver)

	writeFunctionConfig(t, rootDir, "Worker",
		`{"bindings":[{"type":"blob"},{"type":"queueTrigger","queueName":"jobs"},{"type":"httpTrigger"}]}`)

	def := &FunctionDefinition{Name: "Worker"}
	got := extractor.Extract(context.Background(), def, testHostPaths())
	if got == nil {
		t.Fatal("Extract() = nil, want queueTrigger binding")
	}

	if got["type"] != "queueTrigger" {
		t.Errorf("type = %v, want queueTrigger", got["type"])
	}
	if got["functionName"] != "Worker" {
		t.Errorf("functionName = %v, want Worker", got["functionName"])
	}
	if got["queueName"] != "jobs" {
		t.Errorf("queueName = %v, want jobs", got["queueName"])
	}
}

func TestTriggerExtractor_CaseInsensitiveSuffix(t *testing.T) {
	store, rootDir := newTestStore(t)
	extractor := NewTriggerExtractor(NewConfigResolver(store))

	writeFunctionConfig(t, rootDir, "Timer",
		`{"bindings":[{"TYPE":"TIMERTRIGGER","schedule":"0 * * * * *"}]}`)

	def := &FunctionDefinition{Name: "Timer"}
	got := extractor.Extract(context.Background(), def, testHostPaths())
	if got == nil {
		t.Fatal("Extract() = nil, want timer trigger")
	}
	if got["functionName"] != "Timer" {
		t.Errorf("functionName = %v, want Timer", got["functionName"])
	}
}

func TestTriggerExtractor_DoesNotMutateStoredConfig(t *testing.T) {
	store, rootDir := newTestStore(t)
	resolver := NewConfigResolver(store)
	extractor := NewTriggerExtractor(resolver)

	writeFunctionConfig(t, rootDir, "Fn", `{"bindings":[{"type":"queueTrigger"}]}`)

	def := &FunctionDefinition{Name: "Fn"}
	first := extractor.Extract(context.Background(), def, testHostPaths())
	if first == nil || first["functionName"] != "Fn" {
		t.Fatalf("Extract() = %#v, want augmented trigger", first)
	}

	// A fresh resolution must not carry the injected key.
	cfg := resolver.Resolve(context.Background(), def, testHostPaths())
	bindings := cfg["bindings"].([]any)
	binding := bindings[0].(map[string]any)
	if _, ok := binding["functionName"]; ok {
		t.Error("stored config was mutated by Extract")
	}
}

func TestTriggerExtractor_FromInMemoryDefinition(t *testing.T) {
	store, _ := newTestStore(t)
	extractor := NewTriggerExtractor(NewConfigResolver(store))

	def := &FunctionDefinition{
		Name: "Mem",
		Bindings: []Binding{
			{Type: "queueTrigger", RawProperties: map[string]any{"type": "queueTrigger", "queueName": "q"}},
		},
	}

	got := extractor.Extract(context.Background(), def, testHostPaths())
	if got == nil {
		t.Fatal("Extract() = nil, want trigger from in-memory config")
	}
	if got["functionName"] != "Mem" || got["queueName"] != "q" {
		t.Errorf("Extract() = %#v, want augmented in-memory trigger", got)
	}
}
