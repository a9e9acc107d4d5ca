package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crowmatic/perch/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a new Perch host directory",
	Long: `Initialize a new Perch host directory with:

  - perch.yaml     Configuration file
  - functions/     Script root with a sample function
  - testdata/      Per-function test data directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")

	rootCmd.AddCommand(initCmd)
}

// starterConfig mirrors the perch.yaml layout for scaffolding.
type starterConfig struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Host struct {
		ScriptRoot   string `yaml:"script_root"`
		TestDataPath string `yaml:"test_data_path"`
		RoutePrefix  string `yaml:"route_prefix"`
	} `yaml:"host"`
	Storage struct {
		Type string `yaml:"type"`
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

const sampleFunctionJSON = `{
  "entryPoint": "handler",
  "scriptFile": "hello/index.js",
  "language": "node",
  "bindings": [
    {
      "type": "httpTrigger",
      "direction": "in",
      "route": "hello/{name}"
    }
  ]
}
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	configPath := filepath.Join(dir, "perch.yaml")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	defaults := config.Default()

	var starter starterConfig
	starter.Server.Host = defaults.Server.Host
	starter.Server.Port = defaults.Server.Port
	starter.Host.ScriptRoot = defaults.Host.ScriptRoot
	starter.Host.TestDataPath = "testdata"
	starter.Host.RoutePrefix = defaults.Host.RoutePrefix
	starter.Storage.Type = defaults.Storage.Type
	starter.Storage.Path = "."
	starter.Logging.Level = defaults.Logging.Level
	starter.Logging.Format = defaults.Logging.Format

	data, err := yaml.Marshal(&starter)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	for _, sub := range []string{defaults.Host.ScriptRoot, "testdata"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", sub, err)
		}
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	samplePath := filepath.Join(dir, defaults.Host.ScriptRoot, "hello", "function.json")
	if err := os.MkdirAll(filepath.Dir(samplePath), 0755); err != nil {
		return fmt.Errorf("creating sample function directory: %w", err)
	}
	if err := os.WriteFile(samplePath, []byte(sampleFunctionJSON), 0644); err != nil {
		return fmt.Errorf("writing sample function: %w", err)
	}

	log.Info().Str("dir", dir).Msg("Initialized Perch host")
	fmt.Printf("Created %s\n\nNext steps:\n  cd %s\n  perch serve\n", configPath, dir)
	return nil
}
