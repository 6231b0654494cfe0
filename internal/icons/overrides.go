// Package icons resolves best-effort icon URLs for containers from a
// CDN-hosted icon catalog, with a curated override table taking precedence
// over automatic name normalization.
package icons

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultOverrides maps normalized container/image keys whose names don't
// normalize cleanly onto trusted icon URLs. Entries from an overrides file
// are layered on top and win on conflict.
var defaultOverrides = map[string]string{
	"docker-controller-bot": "https://raw.githubusercontent.com/dgongut/docker-controller-bot/master/logo.png",
	"db-backup":             "https://cdn.jsdelivr.net/gh/walkxcode/dashboard-icons/png/sqlitebrowser.png",
	"cloudflare-ddns":       "https://cdn.jsdelivr.net/gh/walkxcode/dashboard-icons/png/cloudflare.png",
	"wg-easy":               "https://cdn.jsdelivr.net/gh/walkxcode/dashboard-icons/png/wireguard.png",
}

// OverrideTable is an immutable mapping from normalized lookup key to a
// trusted icon URL. It is loaded once at startup; a process restart is
// required to pick up changes.
type OverrideTable struct {
	entries map[string]string
}

// NewOverrideTable builds a table from an explicit entry map. The map is
// copied so later mutation by the caller cannot leak in.
func NewOverrideTable(entries map[string]string) *OverrideTable {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &OverrideTable{entries: copied}
}

// LoadOverrides returns the default override table, extended by the YAML
// mapping at path when one is given. A missing file with a non-empty path is
// an error; an empty path means defaults only.
func LoadOverrides(path string) (*OverrideTable, error) {
	entries := make(map[string]string, len(defaultOverrides))
	for k, v := range defaultOverrides {
		entries[k] = v
	}

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from application config
		if err != nil {
			return nil, fmt.Errorf("failed to read icon overrides from %s: %w", path, err)
		}

		var fileEntries map[string]string
		if err := yaml.Unmarshal(data, &fileEntries); err != nil {
			return nil, fmt.Errorf("failed to parse icon overrides %s: %w", path, err)
		}

		for k, v := range fileEntries {
			entries[k] = v
		}
	}

	return &OverrideTable{entries: entries}, nil
}

// Lookup returns the trusted URL for key and whether the key is present.
func (t *OverrideTable) Lookup(key string) (string, bool) {
	url, ok := t.entries[key]
	return url, ok
}

// Len returns the number of entries in the table.
func (t *OverrideTable) Len() int {
	return len(t.entries)
}
