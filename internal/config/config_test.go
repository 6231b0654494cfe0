package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Check defaults
	assert.Equal(t, ":7575", cfg.Server.ListenAddr)
	assert.True(t, cfg.Docker.IncludeStopped)
	assert.Equal(t, "./data/porthall.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "./data/icons", cfg.Storage.IconsDir)
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/walkxcode/dashboard-icons/png/%s.png",
		cfg.Icons.CatalogURLTemplate)
	assert.Equal(t, "docker", cfg.Icons.DefaultIcon)
	assert.True(t, cfg.Icons.Validate)
	assert.False(t, cfg.Notification.Enabled)
	assert.NotEmpty(t, cfg.Docker.SocketPath)
}

func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("PORTHALL_SERVER_LISTEN_ADDR", ":9999")   // nolint:errcheck,gosec
	os.Setenv("PORTHALL_ICONS_DEFAULT_ICON", "compose") // nolint:errcheck,gosec
	defer os.Unsetenv("PORTHALL_SERVER_LISTEN_ADDR")    // nolint:errcheck
	defer os.Unsetenv("PORTHALL_ICONS_DEFAULT_ICON")    // nolint:errcheck

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, ":9999", cfg.Server.ListenAddr)
	assert.Equal(t, "compose", cfg.Icons.DefaultIcon)
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `server:
  listen_addr: ":8080"
docker:
  socket_path: unix:///test/docker.sock
  include_stopped: false
storage:
  database_path: /test/porthall.db
  icons_dir: /test/icons
icons:
  overrides_file: /test/overrides.yaml
  catalog_url_template: "https://icons.example.com/%s.png"
  default_icon: homelab
  validate: false
notification:
  enabled: true
  shoutrrr_url: generic://test
`
	err := os.WriteFile(configPath, []byte(configContent), 0600)
	assert.NoError(t, err)

	cfg, err := Load(configPath)
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "unix:///test/docker.sock", cfg.Docker.SocketPath)
	assert.False(t, cfg.Docker.IncludeStopped)
	assert.Equal(t, "/test/porthall.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "/test/icons", cfg.Storage.IconsDir)
	assert.Equal(t, "/test/overrides.yaml", cfg.Icons.OverridesFile)
	assert.Equal(t, "https://icons.example.com/%s.png", cfg.Icons.CatalogURLTemplate)
	assert.Equal(t, "homelab", cfg.Icons.DefaultIcon)
	assert.False(t, cfg.Icons.Validate)
	assert.True(t, cfg.Notification.Enabled)
	assert.Equal(t, "generic://test", cfg.Notification.ShoutrrURL)
	assert.Equal(t, configPath, cfg.ConfigFilePath)
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `server:
  listen_addr: test
  invalid yaml content [[[
`
	err := os.WriteFile(configPath, []byte(configContent), 0600)
	assert.NoError(t, err)

	_, err = Load(configPath)
	assert.Error(t, err)
}

func TestValidate_MissingListenAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Server.ListenAddr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.listen_addr")
}

func TestValidate_MissingDatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.DatabasePath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "storage.database_path")
}

func TestValidate_BadCatalogTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantErr  bool
	}{
		{name: "valid single placeholder", template: "https://x/%s.png", wantErr: false},
		{name: "no placeholder", template: "https://x/icon.png", wantErr: true},
		{name: "two placeholders", template: "https://x/%s/%s.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Icons.CatalogURLTemplate = tt.template

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "catalog_url_template")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{ListenAddr: ":7575"},
		Docker:  DockerConfig{SocketPath: "unix:///var/run/docker.sock"},
		Storage: StorageConfig{DatabasePath: "./data/porthall.db", IconsDir: "./data/icons"},
		Icons: IconsConfig{
			CatalogURLTemplate: "https://icons.example.com/%s.png",
			DefaultIcon:        "docker",
		},
	}
}
