package icons

import (
	"context"
	"fmt"
	"strings"

	"github.com/zorak1103/porthall/internal/names"
)

// Resolver turns a container or image name into a usable icon reference:
// an override URL, a catalog URL, or the configured default icon name.
// It never returns an error; the worst outcome is the default icon.
type Resolver struct {
	table           *OverrideTable
	checker         ExistenceChecker
	catalogTemplate string // fmt template with one %s for the lookup key
	defaultIcon     string // symbolic icon-set name, not a URL
}

// NewResolver constructs a resolver. The override table and checker are
// passed in explicitly so tests can substitute both.
func NewResolver(table *OverrideTable, checker ExistenceChecker, catalogTemplate, defaultIcon string) *Resolver {
	return &Resolver{
		table:           table,
		checker:         checker,
		catalogTemplate: catalogTemplate,
		defaultIcon:     defaultIcon,
	}
}

// lookupStage is one step of the key derivation: transform the current key,
// then consult the override table before falling through to the next stage.
type lookupStage struct {
	name      string
	transform func(string) string
}

// stages are applied in a fixed order. Each stage is gated by an override
// lookup so a generic strip step can never shadow a curated mapping.
var stages = []lookupStage{
	{name: "raw", transform: func(k string) string {
		return strings.ToLower(strings.TrimPrefix(k, "/"))
	}},
	{name: "deversioned", transform: func(k string) string {
		if idx := strings.Index(k, ":"); idx >= 0 {
			return k[:idx]
		}
		return k
	}},
	{name: "devendored", transform: func(k string) string {
		if idx := strings.LastIndex(k, "/"); idx >= 0 {
			return k[idx+1:]
		}
		return k
	}},
	{name: "deinstanced", transform: func(k string) string {
		return names.StripInstanceSuffix(k)
	}},
	// Compound names like "gitlab_runner" usually index the catalog under the
	// leading word. Hyphens are meaningful in the catalog's own naming scheme
	// and are never split.
	{name: "underscore", transform: func(k string) string {
		if idx := strings.Index(k, "_"); idx > 0 {
			return k[:idx]
		}
		return k
	}},
}

// LookupKey derives the catalog lookup key for a raw container or image
// name. When any derivation stage hits the override table, the trusted URL
// is returned with ok=true and the key frozen at that stage.
func (r *Resolver) LookupKey(raw string) (key string, overrideURL string, ok bool) {
	if raw == "" {
		return "", "", false
	}

	key = raw
	for _, stage := range stages {
		key = stage.transform(key)
		if url, hit := r.table.Lookup(key); hit {
			return key, url, true
		}
	}
	return key, "", false
}

// CatalogURL returns the unchecked catalog URL for a name. Used for fast
// preview paths where the frontend tolerates a broken image.
func (r *Resolver) CatalogURL(raw string) string {
	key, overrideURL, ok := r.LookupKey(raw)
	if ok {
		return overrideURL
	}
	return fmt.Sprintf(r.catalogTemplate, key)
}

// Resolve returns the best icon reference for a name. Override hits are
// trusted and returned without validation. Otherwise the catalog URL is
// built and, when validate is set, existence-checked; a negative check
// yields the default icon name.
func (r *Resolver) Resolve(ctx context.Context, raw string, validate bool) string {
	key, overrideURL, ok := r.LookupKey(raw)
	if ok {
		return overrideURL
	}
	if key == "" {
		return r.defaultIcon
	}

	catalogURL := fmt.Sprintf(r.catalogTemplate, key)
	if !validate {
		return catalogURL
	}
	if r.checker.Exists(ctx, catalogURL) {
		return catalogURL
	}
	return r.defaultIcon
}

// DefaultIcon returns the configured fallback icon name.
func (r *Resolver) DefaultIcon() string {
	return r.defaultIcon
}
