package store

import "time"

// ContainerLink holds the container identity of a container-backed shortcut.
// A shortcut without one is a pure custom link (URL or port only). MatchName
// can only exist inside a link, which enforces the invariant that a custom
// link never carries a match identity.
type ContainerLink struct {
	Name      string `json:"name"`                 // base (de-instanced) container name
	MatchName string `json:"match_name,omitempty"` // normalized, restart-stable match key
	RuntimeID string `json:"runtime_id,omitempty"` // last-known container ID, changes on recreation
}

// Shortcut is a persisted dashboard entry.
type Shortcut struct {
	ID          int64          `json:"id"`
	DisplayName string         `json:"display_name"`
	Icon        string         `json:"icon,omitempty"` // icon-set name, absolute URL, or local upload path
	URL         string         `json:"url,omitempty"`
	Port        int            `json:"port,omitempty"`
	IsFavorite  bool           `json:"is_favorite"`
	SectionID   int64          `json:"section_id,omitempty"` // 0 = unsectioned
	Container   *ContainerLink `json:"container,omitempty"`  // nil = custom link
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Section groups shortcuts on the dashboard.
type Section struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// LinkCorrection updates the container identity of one shortcut after a
// reconciliation pass re-matched it against a live container.
type LinkCorrection struct {
	ShortcutID    int64
	RuntimeID     string
	ContainerName string
	MatchName     string
	Port          int // 0 leaves the stored port untouched
}

// Counts summarizes the store contents for status reporting.
type Counts struct {
	Shortcuts       int
	ContainerLinked int
	Sections        int
}
