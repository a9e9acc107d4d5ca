// Package cli implements the perch command line interface.
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crowmatic/perch/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "perch",
	Short: "A lightweight script function host",
	Long: `Perch serves script functions from a directory tree and exposes:

  - An admin API with per-function descriptors (config, hrefs, invoke URLs)
  - A trigger feed for autoscaling controllers
  - Lazily materialized per-function test data

Start the server:
  perch serve

Initialize a new host directory:
  perch init my-host`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./perch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("perch")
	}

	viper.SetEnvPrefix("PERCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			log.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
		}
	}
}

// setupLogging configures the default logger before any config file loads.
// Commands that load config reapply the configured level and format.
func setupLogging() {
	applyLogging(config.LoggingConfig{
		Level:  config.DefaultLogLevel,
		Format: config.DefaultLogFormat,
	})
}

// Version returns the version string.
func Version() string {
	return fmt.Sprintf("perch version %s", "0.1.0-dev")
}
