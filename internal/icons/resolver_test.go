package icons

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubChecker implements ExistenceChecker for testing and counts calls.
type stubChecker struct {
	exists bool
	calls  int
}

func (s *stubChecker) Exists(_ context.Context, _ string) bool {
	s.calls++
	return s.exists
}

const testTemplate = "https://icons.example.com/%s.png"

func newTestResolver(overrides map[string]string, checker ExistenceChecker) *Resolver {
	return NewResolver(NewOverrideTable(overrides), checker, testTemplate, "docker")
}

func TestLookupKey_Stages(t *testing.T) {
	tests := []struct {
		name        string
		overrides   map[string]string
		input       string
		expectKey   string
		expectURL   string
		expectFound bool
	}{
		{
			name:      "plain name no override",
			input:     "plex",
			expectKey: "plex",
		},
		{
			name:      "lowercase and leading slash",
			input:     "/Plex",
			expectKey: "plex",
		},
		{
			name:      "version tag dropped",
			input:     "redis:7.2",
			expectKey: "redis",
		},
		{
			name:      "vendor prefix stripped",
			input:     "linuxserver/sonarr:latest",
			expectKey: "sonarr",
		},
		{
			name:      "instance suffix stripped",
			input:     "portainer-1",
			expectKey: "portainer",
		},
		{
			name:      "underscore heuristic takes leading word",
			input:     "gitlab_runner",
			expectKey: "gitlab",
		},
		{
			name:      "hyphen never split",
			input:     "nginx-proxy",
			expectKey: "nginx-proxy",
		},
		{
			name:        "override hit at raw stage",
			overrides:   map[string]string{"docker-controller-bot": "https://trusted.example.com/bot.png"},
			input:       "docker-controller-bot",
			expectKey:   "docker-controller-bot",
			expectURL:   "https://trusted.example.com/bot.png",
			expectFound: true,
		},
		{
			name:        "override hit before underscore split",
			overrides:   map[string]string{"paperless_ngx": "https://trusted.example.com/paperless.png"},
			input:       "paperless_ngx",
			expectKey:   "paperless_ngx",
			expectURL:   "https://trusted.example.com/paperless.png",
			expectFound: true,
		},
		{
			name:        "override hit after devendor stage",
			overrides:   map[string]string{"wg-easy": "https://trusted.example.com/wg.png"},
			input:       "ghcr.io/wg-easy/wg-easy:14",
			expectKey:   "wg-easy",
			expectURL:   "https://trusted.example.com/wg.png",
			expectFound: true,
		},
		{
			name:        "override hit after deinstance stage",
			overrides:   map[string]string{"homeassistant": "https://trusted.example.com/ha.png"},
			input:       "/HomeAssistant-2",
			expectKey:   "homeassistant",
			expectURL:   "https://trusted.example.com/ha.png",
			expectFound: true,
		},
		{
			name:      "empty input",
			input:     "",
			expectKey: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(tt.overrides, &stubChecker{})

			key, url, found := r.LookupKey(tt.input)
			assert.Equal(t, tt.expectKey, key)
			assert.Equal(t, tt.expectURL, url)
			assert.Equal(t, tt.expectFound, found)
		})
	}
}

func TestResolve_OverrideSkipsExistenceCheck(t *testing.T) {
	checker := &stubChecker{exists: false}
	r := newTestResolver(map[string]string{
		"docker-controller-bot": "https://trusted.example.com/bot.png",
	}, checker)

	got := r.Resolve(context.Background(), "docker-controller-bot-1", true)

	assert.Equal(t, "https://trusted.example.com/bot.png", got)
	assert.Zero(t, checker.calls, "override hits must never be existence-checked")
}

func TestResolve_CatalogHit(t *testing.T) {
	checker := &stubChecker{exists: true}
	r := newTestResolver(nil, checker)

	got := r.Resolve(context.Background(), "linuxserver/plex:latest", true)

	assert.Equal(t, "https://icons.example.com/plex.png", got)
	assert.Equal(t, 1, checker.calls)
}

func TestResolve_FailedCheckFallsBackToDefault(t *testing.T) {
	checker := &stubChecker{exists: false}
	r := newTestResolver(nil, checker)

	got := r.Resolve(context.Background(), "some-obscure-app", true)

	assert.Equal(t, "docker", got, "failed validation must yield the default icon name, not a URL")
}

func TestResolve_UnvalidatedReturnsCatalogURL(t *testing.T) {
	checker := &stubChecker{exists: false}
	r := newTestResolver(nil, checker)

	got := r.Resolve(context.Background(), "some-obscure-app", false)

	assert.Equal(t, "https://icons.example.com/some-obscure-app.png", got)
	assert.Zero(t, checker.calls, "unvalidated resolution must not touch the checker")
}

func TestResolve_EmptyNameYieldsDefault(t *testing.T) {
	r := newTestResolver(nil, &stubChecker{exists: true})

	assert.Equal(t, "docker", r.Resolve(context.Background(), "", true))
}

func TestCatalogURL(t *testing.T) {
	r := newTestResolver(map[string]string{
		"wg-easy": "https://trusted.example.com/wg.png",
	}, &stubChecker{})

	assert.Equal(t, "https://icons.example.com/jellyfin.png", r.CatalogURL("Jellyfin-1"))
	assert.Equal(t, "https://trusted.example.com/wg.png", r.CatalogURL("wg-easy"))
}
