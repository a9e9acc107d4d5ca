package functions

import (
	"context"
	"encoding/json"
	"errors"
	"path"

	"github.com/rs/zerolog/log"

	"github.com/crowmatic/perch/internal/storage"
)

// ConfigResolver produces the canonical configuration object for a function,
// merging the on-disk function.json with the in-memory definition. The file
// wins when it exists; the definition fills in when it doesn't.
type ConfigResolver struct {
	store storage.Store
}

func NewConfigResolver(store storage.Store) *ConfigResolver {
	return &ConfigResolver{store: store}
}

// Resolve returns the function's configuration object. The result is never
// nil: read and parse failures fall back to an empty object. Legacy
// consumers depend on never seeing an error here, so failures are logged and
// swallowed rather than surfaced.
func (r *ConfigResolver) Resolve(ctx context.Context, def *FunctionDefinition, hostPaths HostPaths) map[string]any {
	if configPath, ok := r.configPath(ctx, def, hostPaths); ok {
		return r.readConfig(ctx, def.Name, configPath)
	}
	return buildConfig(def)
}

// ConfigExists reports whether the function's directory and metadata file
// exist on the backing store.
func (r *ConfigResolver) ConfigExists(ctx context.Context, def *FunctionDefinition, hostPaths HostPaths) (dirExists, configExists bool, err error) {
	functionDir := path.Join(hostPaths.RootScriptPath, def.Name)

	dirExists, err = r.store.DirExists(ctx, functionDir)
	if err != nil || !dirExists {
		return dirExists, false, err
	}

	configExists, err = r.store.Exists(ctx, path.Join(functionDir, configFileName))
	return dirExists, configExists, err
}

// configPath locates the function's metadata file, treating a missing
// directory or file as absent rather than an error.
func (r *ConfigResolver) configPath(ctx context.Context, def *FunctionDefinition, hostPaths HostPaths) (string, bool) {
	dirExists, configExists, err := r.ConfigExists(ctx, def, hostPaths)
	if err != nil {
		log.Warn().Err(err).Str("function", def.Name).Msg("Suppressed storage error during config resolution")
		return "", false
	}
	if !dirExists || !configExists {
		return "", false
	}
	return path.Join(hostPaths.RootScriptPath, def.Name, configFileName), true
}

// readConfig reads and parses function.json. Any failure resolves to the
// empty object: not-found and malformed JSON are the expected kinds and log
// at debug; anything else logs at warn so a real fault stays diagnosable.
func (r *ConfigResolver) readConfig(ctx context.Context, name, configPath string) map[string]any {
	data, err := r.store.ReadFile(ctx, configPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Debug().Str("function", name).Str("path", configPath).Msg("Function config vanished before read")
		} else {
			log.Warn().Err(err).Str("function", name).Str("path", configPath).Msg("Suppressed read error for function config")
		}
		return map[string]any{}
	}

	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			log.Debug().Err(err).Str("function", name).Str("path", configPath).Msg("Malformed function config, using empty object")
		} else {
			log.Warn().Err(err).Str("function", name).Str("path", configPath).Msg("Suppressed parse error for function config")
		}
		return map[string]any{}
	}

	if cfg == nil {
		// The file contained the literal "null".
		return map[string]any{}
	}

	return cfg
}

// buildConfig projects the in-memory definition into the same shape the
// metadata file would produce. Bindings keep their raw property bags.
func buildConfig(def *FunctionDefinition) map[string]any {
	bindings := make([]any, 0, len(def.Bindings))
	for _, b := range def.Bindings {
		bindings = append(bindings, b.RawProperties)
	}

	return map[string]any{
		"name":              def.Name,
		"entryPoint":        def.EntryPoint,
		"scriptFile":        def.ScriptFile,
		"language":          def.Language,
		"functionDirectory": def.FunctionDirectory,
		"bindings":          bindings,
	}
}
