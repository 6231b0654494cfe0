// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Common errors
var (
	Err = errors.New("config error")
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Docker       DockerConfig       `mapstructure:"docker"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Icons        IconsConfig        `mapstructure:"icons"`
	Notification NotificationConfig `mapstructure:"notification"`

	// ConfigFilePath stores the path to the loaded config file (not marshaled from YAML)
	ConfigFilePath string `mapstructure:"-"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// DockerConfig contains Docker-specific settings
type DockerConfig struct {
	SocketPath     string `mapstructure:"socket_path"`
	IncludeStopped bool   `mapstructure:"include_stopped"`
}

// StorageConfig contains database and upload path settings
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path"`
	IconsDir     string `mapstructure:"icons_dir"` // uploaded icon files
}

// IconsConfig contains icon catalog resolution settings
type IconsConfig struct {
	OverridesFile      string `mapstructure:"overrides_file"`
	CatalogURLTemplate string `mapstructure:"catalog_url_template"` // %s replaced by lookup key
	DefaultIcon        string `mapstructure:"default_icon"`         // symbolic icon-set name, not a URL
	Validate           bool   `mapstructure:"validate"`             // HEAD-check catalog URLs during sync
}

// NotificationConfig contains notification settings
type NotificationConfig struct {
	ShoutrrURL string `mapstructure:"shoutrrr_url"` // Shoutrrr URL format
	Enabled    bool   `mapstructure:"enabled"`
}

// autoDetectDockerSocket determines the Docker socket path based on environment and platform.
func autoDetectDockerSocket() string {
	if os.Getenv("DOCKER_HOST") != "" {
		return os.Getenv("DOCKER_HOST")
	}
	// Check for Unix socket
	if _, err := os.Stat("/var/run/docker.sock"); err == nil {
		return "unix:///var/run/docker.sock"
	}
	// Default to Windows named pipe if Unix socket not found
	return "npipe:////./pipe/docker_engine"
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/porthall")
		v.AddConfigPath("/etc/porthall")
	}

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := v.ConfigFileUsed()
			if configFile == "" {
				configFile = configPath
			}
			return nil, fmt.Errorf("error reading config file from %s: %w", configFile, err)
		}
		// Config file not found; using defaults and env vars
	}

	// Environment variable support
	v.SetEnvPrefix("PORTHALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		configFile := v.ConfigFileUsed()
		if configFile == "" {
			configFile = "(using defaults and environment variables)"
		}
		return nil, fmt.Errorf("error unmarshaling config from %s: %w", configFile, err)
	}

	// Store the config file path in the struct (DI approach, no global state)
	cfg.ConfigFilePath = v.ConfigFileUsed()

	// Auto-detect Docker socket if not specified
	if cfg.Docker.SocketPath == "" {
		cfg.Docker.SocketPath = autoDetectDockerSocket()
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		configFile := v.ConfigFileUsed()
		if configFile == "" {
			configFile = "(using defaults and environment variables)"
		}
		return nil, fmt.Errorf("config validation failed for %s: %w", configFile, err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.listen_addr", ":7575")

	// Docker defaults
	if os.Getenv("DOCKER_HOST") != "" {
		v.SetDefault("docker.socket_path", os.Getenv("DOCKER_HOST"))
	} else {
		// Default Docker socket paths by platform
		if _, err := os.Stat("/var/run/docker.sock"); err == nil {
			v.SetDefault("docker.socket_path", "unix:///var/run/docker.sock")
		} else {
			v.SetDefault("docker.socket_path", "npipe:////./pipe/docker_engine")
		}
	}
	v.SetDefault("docker.include_stopped", true)

	// Storage defaults
	v.SetDefault("storage.database_path", "./data/porthall.db")
	v.SetDefault("storage.icons_dir", "./data/icons")

	// Icons defaults
	v.SetDefault("icons.overrides_file", "")
	v.SetDefault("icons.catalog_url_template",
		"https://cdn.jsdelivr.net/gh/walkxcode/dashboard-icons/png/%s.png")
	v.SetDefault("icons.default_icon", "docker")
	v.SetDefault("icons.validate", true)

	// Notification defaults
	v.SetDefault("notification.shoutrrr_url", "") // Required for AutomaticEnv to work
	v.SetDefault("notification.enabled", false)
}

// Validate ensures all required fields are set and values are within valid ranges.
func (c *Config) Validate() error {
	configSource := c.ConfigFilePath
	if configSource == "" {
		configSource = "(defaults/environment)"
	}

	if err := c.validateRequiredFields(configSource); err != nil {
		return err
	}

	return c.validateCatalogTemplate(configSource)
}

func (c *Config) validateRequiredFields(configSource string) error {
	requiredFields := []struct {
		value   string
		message string
	}{
		{c.Server.ListenAddr, "server.listen_addr is required in config %s"},
		{c.Docker.SocketPath, "docker.socket_path is required in config %s"},
		{c.Storage.DatabasePath, "storage.database_path is required in config %s"},
		{c.Icons.CatalogURLTemplate, "icons.catalog_url_template is required in config %s"},
		{c.Icons.DefaultIcon, "icons.default_icon is required in config %s"},
	}

	for _, field := range requiredFields {
		if field.value == "" {
			return fmt.Errorf(field.message, configSource)
		}
	}
	return nil
}

func (c *Config) validateCatalogTemplate(configSource string) error {
	if strings.Count(c.Icons.CatalogURLTemplate, "%s") != 1 {
		return fmt.Errorf("icons.catalog_url_template must contain exactly one %%s placeholder, got %q in config %s",
			c.Icons.CatalogURLTemplate, configSource)
	}
	return nil
}
