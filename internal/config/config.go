// Package config provides configuration management for Perch.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure for Perch.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Host    HostConfig    `mapstructure:"host"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host to bind the server to
	Host string `mapstructure:"host"`

	// Port to listen on
	Port int `mapstructure:"port"`

	// Request timeouts
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`

	// BaseURL is the externally visible base URL used when synthesizing
	// hrefs and invoke URL templates. Empty means https://localhost/.
	BaseURL string `mapstructure:"base_url"`

	// AdminKey guards the /admin surface. Empty disables the gate
	// (development only).
	AdminKey string `mapstructure:"admin_key"`
}

// HostConfig holds script host settings.
type HostConfig struct {
	// ScriptRoot is the directory containing one subdirectory per function.
	ScriptRoot string `mapstructure:"script_root"`

	// TestDataPath is the directory holding per-function test data files.
	// Empty disables test data entirely.
	TestDataPath string `mapstructure:"test_data_path"`

	// RoutePrefix is prepended to all HTTP-triggered invocation URLs.
	RoutePrefix string `mapstructure:"route_prefix"`
}

// StorageConfig selects and configures the backing store.
type StorageConfig struct {
	// Type is "filesystem" or "s3".
	Type string `mapstructure:"type"`

	// Path is the filesystem root (filesystem type only).
	Path string `mapstructure:"path"`

	S3 S3Config `mapstructure:"s3"`
}

// S3Config holds S3 store settings.
type S3Config struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	ForcePathStyle  bool   `mapstructure:"force_path_style"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format is "console" or "json"
	Format string `mapstructure:"format"`
}

// WatchConfig controls script root watching.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Address returns the host:port address to bind to.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
