package config

import "time"

// Default configuration values.
const (
	// Server defaults.
	DefaultHost         = "localhost"
	DefaultPort         = 7071
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 120 * time.Second

	// Host defaults.
	DefaultScriptRoot  = "functions"
	DefaultRoutePrefix = "api"

	// Storage defaults.
	DefaultStorageType = "filesystem"

	// Logging defaults.
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	// Watch defaults.
	DefaultWatchDebounce = 100 * time.Millisecond
)

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		Host: HostConfig{
			ScriptRoot:  DefaultScriptRoot,
			RoutePrefix: DefaultRoutePrefix,
		},
		Storage: StorageConfig{
			Type: DefaultStorageType,
			Path: ".",
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: DefaultWatchDebounce,
		},
	}
}
