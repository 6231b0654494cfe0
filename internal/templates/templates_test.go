package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestConfigYAML_NotEmpty(t *testing.T) {
	assert.NotEmpty(t, ConfigYAML)
}

func TestConfigYAML_ParsesAsYAML(t *testing.T) {
	var parsed map[string]any
	err := yaml.Unmarshal(ConfigYAML, &parsed)
	assert.NoError(t, err)
	assert.Contains(t, parsed, "server")
	assert.Contains(t, parsed, "docker")
	assert.Contains(t, parsed, "storage")
	assert.Contains(t, parsed, "icons")
	assert.Contains(t, parsed, "notification")
}

func TestEnvFile_NotEmpty(t *testing.T) {
	assert.NotEmpty(t, EnvFile)
}

func TestIconOverridesYAML_ParsesAsYAML(t *testing.T) {
	var parsed map[string]string
	err := yaml.Unmarshal(IconOverridesYAML, &parsed)
	assert.NoError(t, err)
	// Template ships commented-out examples only.
	assert.Empty(t, parsed)
}
