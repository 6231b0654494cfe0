package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "plain name", input: "plex", expected: "plex"},
		{name: "leading slash", input: "/homeassistant", expected: "homeassistant"},
		{name: "instance suffix", input: "portainer-1", expected: "portainer"},
		{name: "hyphenated with suffix", input: "nginx-proxy-2", expected: "nginx-proxy"},
		{name: "uppercase", input: "/Portainer-2", expected: "portainer"},
		{name: "digits inside name kept", input: "wg-easy2", expected: "wg-easy2"},
		{name: "stacked numeric suffixes", input: "app-1-2", expected: "app"},
		{name: "bare slash", input: "/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BaseName(tt.input))
		})
	}
}

func TestBaseName_Idempotent(t *testing.T) {
	inputs := []string{"", "/plex", "Portainer-1", "nginx-proxy-2", "some_app-10"}
	for _, in := range inputs {
		once := BaseName(in)
		assert.Equal(t, once, BaseName(once), "BaseName must be idempotent for %q", in)
	}
}

func TestImageShortName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "bare image", input: "nginx", expected: "nginx"},
		{name: "namespace and tag", input: "linuxserver/plex:latest", expected: "plex"},
		{name: "registry path", input: "ghcr.io/home-assistant/core:stable", expected: "core"},
		{name: "tag only", input: "redis:7", expected: "redis"},
		{name: "uppercase normalized", input: "myorg/MyApp", expected: "myapp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ImageShortName(tt.input))
		})
	}
}

func TestStripInstanceSuffix(t *testing.T) {
	assert.Equal(t, "plex", StripInstanceSuffix("plex-1"))
	assert.Equal(t, "Plex", StripInstanceSuffix("Plex-12"))
	assert.Equal(t, "plex", StripInstanceSuffix("plex"))
	assert.Equal(t, "app-v2", StripInstanceSuffix("app-v2"))
}
