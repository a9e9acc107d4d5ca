package functions

import (
	"context"
	"encoding/json"
	"path"

	"github.com/crowmatic/perch/internal/config"
	"github.com/crowmatic/perch/internal/storage"
)

// testDataExtension is appended to the function name to form its test data
// file name under the test data path.
const testDataExtension = ".dat"

// Assembler orchestrates config resolution, URL synthesis, and test data
// into the final function descriptor.
type Assembler struct {
	store    storage.Store
	resolver *ConfigResolver
	testData *TestDataCache
}

func NewAssembler(store storage.Store) *Assembler {
	return &Assembler{
		store:    store,
		resolver: NewConfigResolver(store),
		testData: NewTestDataCache(store),
	}
}

// Resolver returns the assembler's config resolver, shared with the trigger
// extraction path.
func (a *Assembler) Resolver() *ConfigResolver {
	return a.resolver
}

// Assemble builds the descriptor for a function. Optional fields are set
// only when their preconditions hold: hrefs for the function directory and
// config file require the path to exist on the store, test data requires
// TestDataPath to be configured, and the script href requires a non-empty
// ScriptFile. Test data storage failures propagate.
func (a *Assembler) Assemble(ctx context.Context, def *FunctionDefinition, hostPaths HostPaths, routePrefix, baseURL string) (*FunctionDescriptor, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	dirExists, configExists, err := a.resolver.ConfigExists(ctx, def, hostPaths)
	if err != nil {
		return nil, err
	}

	desc := &FunctionDescriptor{
		Name:              def.Name,
		Href:              BuildHref(def.Name, baseURL),
		Config:            a.resolver.Resolve(ctx, def, hostPaths),
		IsDirect:          def.IsDirect,
		IsDisabled:        def.IsDisabled,
		IsProxy:           false,
		Language:          def.Language,
		InvokeURLTemplate: BuildInvokeURLTemplate(baseURL, def, routePrefix),
	}

	functionDir := path.Join(hostPaths.RootScriptPath, def.Name)
	if dirExists {
		href := BuildVfsHref(baseURL, functionDir)
		desc.ScriptRootPathHref = &href
	}
	if configExists {
		href := BuildVfsHref(baseURL, path.Join(functionDir, configFileName))
		desc.ConfigHref = &href
	}

	if hostPaths.TestDataPath != "" {
		testDataPath := path.Join(hostPaths.TestDataPath, def.Name+testDataExtension)

		href := BuildVfsHref(baseURL, testDataPath)
		desc.TestDataHref = &href

		testData, err := a.testData.GetOrCreate(ctx, testDataPath, config.TestDataCappingEnabled(), MaxTestDataInlineLength)
		if err != nil {
			return nil, err
		}

		// Capped content serializes as an explicit null; the href still
		// points at the full payload.
		desc.TestData = json.RawMessage("null")
		if testData != nil {
			encoded, err := json.Marshal(*testData)
			if err != nil {
				return nil, err
			}
			desc.TestData = encoded
		}
	}

	if def.ScriptFile != "" {
		href := BuildVfsHref(baseURL, path.Join(hostPaths.RootScriptPath, def.ScriptFile))
		desc.ScriptHref = &href
	}

	return desc, nil
}
