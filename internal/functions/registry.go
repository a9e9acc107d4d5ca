package functions

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/crowmatic/perch/internal/storage"
)

// validFunctionName constrains names to values that are safe as both
// filesystem and URL path segments.
var validFunctionName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

// Registry manages discovered function definitions. Functions are
// discovered by scanning first-level directories under the script root for
// a function.json file. Names are matched case-insensitively.
type Registry struct {
	store     storage.Store
	hostPaths HostPaths
	functions map[string]*FunctionDefinition
	mu        sync.RWMutex
}

func NewRegistry(store storage.Store, hostPaths HostPaths) *Registry {
	return &Registry{
		store:     store,
		hostPaths: hostPaths,
		functions: make(map[string]*FunctionDefinition),
	}
}

// Discover scans the script root and rebuilds the registry. Directories
// without a parseable function.json are skipped with a warning; they can
// still be addressed by name and resolve to an empty config.
func (r *Registry) Discover(ctx context.Context) error {
	dirs, err := r.store.ListDirs(ctx, r.hostPaths.RootScriptPath)
	if err != nil {
		return fmt.Errorf("listing script root: %w", err)
	}

	discovered := make(map[string]*FunctionDefinition, len(dirs))

	for _, name := range dirs {
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if !validFunctionName.MatchString(name) {
			log.Warn().Str("dir", name).Msg("Skipping directory with unsafe function name")
			continue
		}

		def, err := r.parseFunction(ctx, name)
		if err != nil {
			log.Warn().Err(err).Str("function", name).Msg("Failed to parse function metadata")
			continue
		}
		if def == nil {
			// No function.json in this directory.
			continue
		}

		discovered[strings.ToLower(def.Name)] = def
		log.Debug().
			Str("name", def.Name).
			Str("language", def.Language).
			Int("bindings", len(def.Bindings)).
			Msg("Discovered function")
	}

	r.mu.Lock()
	r.functions = discovered
	r.mu.Unlock()

	log.Info().Int("count", len(discovered)).Msg("Functions discovered")
	return nil
}

// parseFunction loads a function's metadata file into a definition.
// Returns nil when the directory has no function.json.
func (r *Registry) parseFunction(ctx context.Context, dirName string) (*FunctionDefinition, error) {
	functionDir := path.Join(r.hostPaths.RootScriptPath, dirName)
	configPath := path.Join(functionDir, configFileName)

	exists, err := r.store.Exists(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", configFileName, err)
	}
	if !exists {
		return nil, nil
	}

	data, err := r.store.ReadFile(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configFileName, err)
	}

	var meta struct {
		Name       string           `json:"name"`
		EntryPoint string           `json:"entryPoint"`
		ScriptFile string           `json:"scriptFile"`
		Language   string           `json:"language"`
		Disabled   bool             `json:"disabled"`
		Direct     bool             `json:"direct"`
		Bindings   []map[string]any `json:"bindings"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
	}

	name := meta.Name
	if name == "" {
		name = dirName
	}
	if !validFunctionName.MatchString(name) {
		return nil, fmt.Errorf("unsafe function name %q", name)
	}

	def := &FunctionDefinition{
		Name:              name,
		EntryPoint:        meta.EntryPoint,
		ScriptFile:        meta.ScriptFile,
		Language:          meta.Language,
		FunctionDirectory: functionDir,
		IsDirect:          meta.Direct,
		IsDisabled:        meta.Disabled,
	}

	for _, raw := range meta.Bindings {
		bindingType, _ := stringProperty(raw, "type")
		direction, _ := stringProperty(raw, "direction")
		def.Bindings = append(def.Bindings, Binding{
			Type:          bindingType,
			Direction:     direction,
			RawProperties: raw,
		})
	}

	return def, nil
}

// Get returns a function definition by name, compared case-insensitively.
func (r *Registry) Get(name string) (*FunctionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.functions[strings.ToLower(name)]
	return def, ok
}

// List returns all discovered functions ordered by name.
func (r *Registry) List() []*FunctionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*FunctionDefinition, 0, len(r.functions))
	for _, def := range r.functions {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	return result
}

// Count returns the number of discovered functions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.functions)
}

// Reload rediscovers all functions.
func (r *Registry) Reload(ctx context.Context) error {
	return r.Discover(ctx)
}

// HostPaths returns the registry's host paths.
func (r *Registry) HostPaths() HostPaths {
	return r.hostPaths
}
