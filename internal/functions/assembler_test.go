package functions

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crowmatic/perch/internal/config"
)

func TestAssembler_FullDescriptor(t *testing.T) {
	store, rootDir := newTestStore(t)
	assembler := NewAssembler(store)

	writeFunctionConfig(t, rootDir, "Greet",
		`{"bindings":[{"type":"httpTrigger","direction":"in","route":"greet/{name}"}]}`)

	def := &FunctionDefinition{
		Name:       "Greet",
		ScriptFile: "Greet/index.js",
		Language:   "node",
		Bindings: []Binding{
			{Type: "httpTrigger", Direction: "in", RawProperties: map[string]any{"type": "httpTrigger", "direction": "in", "route": "greet/{name}"}},
		},
	}

	hostPaths := HostPaths{RootScriptPath: "functions", TestDataPath: "testdata"}

	desc, err := assembler.Assemble(context.Background(), def, hostPaths, "api", "https://host/")
	if err != nil {
		t.Fatal(err)
	}

	if desc.Name != "Greet" {
		t.Errorf("Name = %q", desc.Name)
	}
	if desc.Href != "https://host/admin/functions/Greet" {
		t.Errorf("Href = %q", desc.Href)
	}
	if desc.Config == nil {
		t.Error("Config is nil, must always be an object")
	}
	if desc.IsProxy {
		t.Error("IsProxy must be false")
	}
	if desc.InvokeURLTemplate == nil || *desc.InvokeURLTemplate != "https://host/api/greet/{name}" {
		t.Errorf("InvokeURLTemplate = %v", desc.InvokeURLTemplate)
	}
	if desc.ScriptRootPathHref == nil || *desc.ScriptRootPathHref != "https://host/admin/vfs/functions/Greet" {
		t.Errorf("ScriptRootPathHref = %v", desc.ScriptRootPathHref)
	}
	if desc.ConfigHref == nil || *desc.ConfigHref != "https://host/admin/vfs/functions/Greet/function.json" {
		t.Errorf("ConfigHref = %v", desc.ConfigHref)
	}
	if desc.TestDataHref == nil || *desc.TestDataHref != "https://host/admin/vfs/testdata/Greet.dat" {
		t.Errorf("TestDataHref = %v", desc.TestDataHref)
	}
	if string(desc.TestData) != `""` {
		t.Errorf("TestData = %s, want empty string from lazily created file", desc.TestData)
	}
	if desc.ScriptHref == nil || *desc.ScriptHref != "https://host/admin/vfs/functions/Greet/index.js" {
		t.Errorf("ScriptHref = %v", desc.ScriptHref)
	}

	// The test data file was materialized as a side effect.
	if _, err := os.Stat(filepath.Join(rootDir, "testdata", "Greet.dat")); err != nil {
		t.Errorf("test data file not created: %v", err)
	}
}

func TestAssembler_OmitsUnmetFields(t *testing.T) {
	store, _ := newTestStore(t)
	assembler := NewAssembler(store)

	def := &FunctionDefinition{Name: "Ghost", Language: "node"}
	hostPaths := HostPaths{RootScriptPath: "functions"}

	desc, err := assembler.Assemble(context.Background(), def, hostPaths, "api", "https://host/")
	if err != nil {
		t.Fatal(err)
	}

	if desc.ScriptRootPathHref != nil {
		t.Error("ScriptRootPathHref present for missing directory")
	}
	if desc.ConfigHref != nil {
		t.Error("ConfigHref present for missing config file")
	}
	if desc.TestDataHref != nil || desc.TestData != nil {
		t.Error("test data fields present without TestDataPath")
	}
	if desc.ScriptHref != nil {
		t.Error("ScriptHref present for empty ScriptFile")
	}
	if desc.InvokeURLTemplate != nil {
		t.Error("InvokeURLTemplate present without httpTrigger")
	}
	if desc.Config == nil {
		t.Error("Config is nil, must always be an object")
	}
}

func TestAssembler_DirWithoutConfigFile(t *testing.T) {
	store, rootDir := newTestStore(t)
	assembler := NewAssembler(store)

	if err := os.MkdirAll(filepath.Join(rootDir, "functions", "Bare"), 0755); err != nil {
		t.Fatal(err)
	}

	def := &FunctionDefinition{Name: "Bare"}
	desc, err := assembler.Assemble(context.Background(), def, HostPaths{RootScriptPath: "functions"}, "", "")
	if err != nil {
		t.Fatal(err)
	}

	if desc.ScriptRootPathHref == nil {
		t.Error("ScriptRootPathHref missing for existing directory")
	}
	if desc.ConfigHref != nil {
		t.Error("ConfigHref present without function.json")
	}
	if desc.Href != "https://localhost/admin/functions/Bare" {
		t.Errorf("Href = %q, want default base url applied", desc.Href)
	}
}

func TestAssembler_TestDataCapping(t *testing.T) {
	store, rootDir := newTestStore(t)
	assembler := NewAssembler(store)

	big := strings.Repeat("y", MaxTestDataInlineLength+1)
	if err := os.MkdirAll(filepath.Join(rootDir, "testdata"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rootDir, "testdata", "Big.dat"), []byte(big), 0644); err != nil {
		t.Fatal(err)
	}

	def := &FunctionDefinition{Name: "Big"}
	hostPaths := HostPaths{RootScriptPath: "functions", TestDataPath: "testdata"}

	// Capping on (default): inline test data is withheld, href remains.
	desc, err := assembler.Assemble(context.Background(), def, hostPaths, "", "https://host/")
	if err != nil {
		t.Fatal(err)
	}
	if string(desc.TestData) != "null" {
		t.Errorf("TestData = %s, want null for over-cap content with capping enabled", desc.TestData)
	}
	if desc.TestDataHref == nil {
		t.Error("TestDataHref missing; out-of-band fetch needs it")
	}

	// Capping off via the environment setting.
	t.Setenv(config.TestDataCapSetting, "0")
	desc, err = assembler.Assemble(context.Background(), def, hostPaths, "", "https://host/")
	if err != nil {
		t.Fatal(err)
	}
	var inline string
	if err := json.Unmarshal(desc.TestData, &inline); err != nil {
		t.Fatalf("TestData = %s, want encoded string: %v", desc.TestData, err)
	}
	if len(inline) != MaxTestDataInlineLength+1 {
		t.Errorf("TestData = %d bytes, want full content with capping disabled", len(inline))
	}
}

func TestAssembler_TestDataNullVsAbsent(t *testing.T) {
	store, rootDir := newTestStore(t)
	assembler := NewAssembler(store)

	big := strings.Repeat("z", MaxTestDataInlineLength+1)
	if err := os.MkdirAll(filepath.Join(rootDir, "testdata"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rootDir, "testdata", "Big.dat"), []byte(big), 0644); err != nil {
		t.Fatal(err)
	}

	def := &FunctionDefinition{Name: "Big"}

	// Configured but capped: the serialized descriptor carries an explicit
	// null so the consumer knows to follow testDataHref.
	desc, err := assembler.Assemble(context.Background(), def,
		HostPaths{RootScriptPath: "functions", TestDataPath: "testdata"}, "", "https://host/")
	if err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(desc)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(out, &fields); err != nil {
		t.Fatal(err)
	}
	v, ok := fields["testData"]
	if !ok {
		t.Error("testData key missing, want explicit null for capped content")
	}
	if v != nil {
		t.Errorf("testData = %v, want null", v)
	}

	// Test data disabled: the key is omitted entirely.
	desc, err = assembler.Assemble(context.Background(), def,
		HostPaths{RootScriptPath: "functions"}, "", "https://host/")
	if err != nil {
		t.Fatal(err)
	}
	out, err = json.Marshal(desc)
	if err != nil {
		t.Fatal(err)
	}
	fields = nil
	if err := json.Unmarshal(out, &fields); err != nil {
		t.Fatal(err)
	}
	if _, ok := fields["testData"]; ok {
		t.Error("testData key present without a configured TestDataPath")
	}
}
