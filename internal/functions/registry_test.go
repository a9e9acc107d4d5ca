package functions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistry_Discover(t *testing.T) {
	store, rootDir := newTestStore(t)

	writeFunctionConfig(t, rootDir, "Alpha",
		`{"entryPoint":"run","scriptFile":"Alpha/index.js","language":"node","bindings":[{"type":"httpTrigger","direction":"in"}]}`)
	writeFunctionConfig(t, rootDir, "Beta",
		`{"language":"python","disabled":true,"bindings":[{"type":"queueTrigger","queueName":"jobs"}]}`)

	// Directories without function.json or with unsafe names are skipped.
	for _, dir := range []string{"_shared", ".git", "NoConfig"} {
		if err := os.MkdirAll(filepath.Join(rootDir, "functions", dir), 0755); err != nil {
			t.Fatal(err)
		}
	}

	registry := NewRegistry(store, testHostPaths())
	if err := registry.Discover(context.Background()); err != nil {
		t.Fatal(err)
	}

	if registry.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", registry.Count())
	}

	alpha, ok := registry.Get("Alpha")
	if !ok {
		t.Fatal("Alpha not discovered")
	}
	if alpha.EntryPoint != "run" || alpha.ScriptFile != "Alpha/index.js" || alpha.Language != "node" {
		t.Errorf("Alpha = %+v", alpha)
	}
	if len(alpha.Bindings) != 1 || alpha.Bindings[0].Type != "httpTrigger" {
		t.Errorf("Alpha bindings = %+v", alpha.Bindings)
	}
	if alpha.FunctionDirectory != "functions/Alpha" {
		t.Errorf("FunctionDirectory = %q", alpha.FunctionDirectory)
	}

	beta, ok := registry.Get("Beta")
	if !ok {
		t.Fatal("Beta not discovered")
	}
	if !beta.IsDisabled {
		t.Error("Beta should be disabled")
	}
}

func TestRegistry_CaseInsensitiveGet(t *testing.T) {
	store, rootDir := newTestStore(t)
	writeFunctionConfig(t, rootDir, "Greet", `{"language":"node"}`)

	registry := NewRegistry(store, testHostPaths())
	if err := registry.Discover(context.Background()); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"Greet", "greet", "GREET"} {
		def, ok := registry.Get(name)
		if !ok {
			t.Errorf("Get(%q) not found", name)
			continue
		}
		if def.Name != "Greet" {
			t.Errorf("Get(%q).Name = %q, want original casing preserved", name, def.Name)
		}
	}
}

func TestRegistry_ListOrdered(t *testing.T) {
	store, rootDir := newTestStore(t)
	for _, name := range []string{"zeta", "Alpha", "midway"} {
		writeFunctionConfig(t, rootDir, name, `{}`)
	}

	registry := NewRegistry(store, testHostPaths())
	if err := registry.Discover(context.Background()); err != nil {
		t.Fatal(err)
	}

	list := registry.List()
	if len(list) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(list))
	}
	want := []string{"Alpha", "midway", "zeta"}
	for i, def := range list {
		if def.Name != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, def.Name, want[i])
		}
	}
}

func TestRegistry_MalformedConfigSkipped(t *testing.T) {
	store, rootDir := newTestStore(t)
	writeFunctionConfig(t, rootDir, "Good", `{}`)
	writeFunctionConfig(t, rootDir, "Bad", `{not json`)

	registry := NewRegistry(store, testHostPaths())
	if err := registry.Discover(context.Background()); err != nil {
		t.Fatal(err)
	}

	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (malformed skipped)", registry.Count())
	}
	if _, ok := registry.Get("Bad"); ok {
		t.Error("malformed function should not be registered")
	}
}

func TestRegistry_EmptyScriptRoot(t *testing.T) {
	store, _ := newTestStore(t)

	registry := NewRegistry(store, testHostPaths())
	if err := registry.Discover(context.Background()); err != nil {
		t.Fatalf("Discover on missing root: %v", err)
	}
	if registry.Count() != 0 {
		t.Errorf("Count() = %d, want 0", registry.Count())
	}
}

func TestRegistry_Reload(t *testing.T) {
	store, rootDir := newTestStore(t)
	writeFunctionConfig(t, rootDir, "One", `{}`)

	registry := NewRegistry(store, testHostPaths())
	if err := registry.Discover(context.Background()); err != nil {
		t.Fatal(err)
	}
	if registry.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", registry.Count())
	}

	writeFunctionConfig(t, rootDir, "Two", `{}`)
	if err := registry.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if registry.Count() != 2 {
		t.Errorf("Count() after reload = %d, want 2", registry.Count())
	}
}
