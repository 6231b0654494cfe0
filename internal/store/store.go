// Package store persists shortcuts and sections in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // cgo-free sqlite driver

	apperrors "github.com/zorak1103/porthall/internal/errors"
)

// Store wraps the SQLite database holding dashboard records.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close() // Best effort cleanup
		return nil, fmt.Errorf("failed to initialize schema for %s: %w", path, err)
	}

	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates the tables if they don't exist. The CHECK constraint
// mirrors the type-level invariant: a match name cannot exist without a
// container name.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS shortcuts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		display_name TEXT NOT NULL,
		icon TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		port INTEGER NOT NULL DEFAULT 0,
		is_favorite INTEGER NOT NULL DEFAULT 0,
		section_id INTEGER REFERENCES sections(id) ON DELETE SET NULL,
		container_id TEXT,
		container_name TEXT,
		container_match_name TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK (container_match_name IS NULL OR container_name IS NOT NULL)
	);

	CREATE INDEX IF NOT EXISTS idx_shortcuts_container_match_name
		ON shortcuts(container_match_name);
	CREATE INDEX IF NOT EXISTS idx_shortcuts_section
		ON shortcuts(section_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

const shortcutColumns = `id, display_name, icon, url, port, is_favorite, section_id,
	container_id, container_name, container_match_name, created_at, updated_at`

// scanShortcut reads one shortcut row, reconstructing the ContainerLink only
// when a container name is present.
func scanShortcut(row interface{ Scan(...any) error }) (*Shortcut, error) {
	var (
		sc                        Shortcut
		sectionID                 sql.NullInt64
		runtimeID, name, matchKey sql.NullString
		createdAt, updatedAt      string
	)

	err := row.Scan(&sc.ID, &sc.DisplayName, &sc.Icon, &sc.URL, &sc.Port, &sc.IsFavorite,
		&sectionID, &runtimeID, &name, &matchKey, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	sc.SectionID = sectionID.Int64
	if name.Valid && name.String != "" {
		sc.Container = &ContainerLink{
			Name:      name.String,
			MatchName: matchKey.String,
			RuntimeID: runtimeID.String,
		}
	}
	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &sc, nil
}

// linkColumns flattens an optional ContainerLink into nullable column values.
func linkColumns(link *ContainerLink) (runtimeID, name, matchKey sql.NullString) {
	if link == nil {
		return
	}
	name = sql.NullString{String: link.Name, Valid: link.Name != ""}
	// Guarded twice (here and by the schema CHECK): no match name without a name.
	if name.Valid {
		matchKey = sql.NullString{String: link.MatchName, Valid: link.MatchName != ""}
		runtimeID = sql.NullString{String: link.RuntimeID, Valid: link.RuntimeID != ""}
	}
	return
}

// CreateShortcut inserts a shortcut and returns its new ID.
func (s *Store) CreateShortcut(ctx context.Context, sc *Shortcut) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	runtimeID, name, matchKey := linkColumns(sc.Container)

	var sectionID sql.NullInt64
	if sc.SectionID > 0 {
		sectionID = sql.NullInt64{Int64: sc.SectionID, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO shortcuts (display_name, icon, url, port, is_favorite, section_id,
			container_id, container_name, container_match_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sc.DisplayName, sc.Icon, sc.URL, sc.Port, sc.IsFavorite, sectionID,
		runtimeID, name, matchKey, now, now)
	if err != nil {
		return 0, &apperrors.StorageError{Operation: "CreateShortcut", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &apperrors.StorageError{Operation: "CreateShortcut", Err: err}
	}
	sc.ID = id
	return id, nil
}

// GetShortcut returns the shortcut with the given ID, or sql.ErrNoRows.
func (s *Store) GetShortcut(ctx context.Context, id int64) (*Shortcut, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shortcutColumns+` FROM shortcuts WHERE id = ?`, id)

	sc, err := scanShortcut(row)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// ListShortcuts returns all shortcuts ordered by section and name.
func (s *Store) ListShortcuts(ctx context.Context) ([]*Shortcut, error) {
	return s.queryShortcuts(ctx,
		`SELECT `+shortcutColumns+` FROM shortcuts ORDER BY section_id, display_name`)
}

// ListContainerLinked returns shortcuts with a non-null container identity,
// the candidate set for a reconciliation pass. Custom links are excluded by
// construction and can never be touched by a sync.
func (s *Store) ListContainerLinked(ctx context.Context) ([]*Shortcut, error) {
	return s.queryShortcuts(ctx,
		`SELECT `+shortcutColumns+` FROM shortcuts WHERE container_name IS NOT NULL ORDER BY id`)
}

func (s *Store) queryShortcuts(ctx context.Context, query string) ([]*Shortcut, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &apperrors.StorageError{Operation: "ListShortcuts", Err: err}
	}
	defer func() { _ = rows.Close() }() // Close after iteration; error not actionable

	var result []*Shortcut
	for rows.Next() {
		sc, err := scanShortcut(rows)
		if err != nil {
			return nil, &apperrors.StorageError{Operation: "ListShortcuts", Err: err}
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

// UpdateShortcut rewrites all mutable fields of a shortcut.
func (s *Store) UpdateShortcut(ctx context.Context, sc *Shortcut) error {
	now := time.Now().UTC().Format(time.RFC3339)
	runtimeID, name, matchKey := linkColumns(sc.Container)

	var sectionID sql.NullInt64
	if sc.SectionID > 0 {
		sectionID = sql.NullInt64{Int64: sc.SectionID, Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE shortcuts
		SET display_name = ?, icon = ?, url = ?, port = ?, is_favorite = ?, section_id = ?,
			container_id = ?, container_name = ?, container_match_name = ?, updated_at = ?
		WHERE id = ?
	`, sc.DisplayName, sc.Icon, sc.URL, sc.Port, sc.IsFavorite, sectionID,
		runtimeID, name, matchKey, now, sc.ID)
	if err != nil {
		return &apperrors.StorageError{Operation: "UpdateShortcut", ShortcutID: sc.ID, Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &apperrors.StorageError{Operation: "UpdateShortcut", ShortcutID: sc.ID, Err: err}
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteShortcut removes a shortcut. Deletion is always a user action, never
// a sync side effect.
func (s *Store) DeleteShortcut(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM shortcuts WHERE id = ?`, id)
	if err != nil {
		return &apperrors.StorageError{Operation: "DeleteShortcut", ShortcutID: id, Err: err}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &apperrors.StorageError{Operation: "DeleteShortcut", ShortcutID: id, Err: err}
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ApplyLinkCorrections applies identity corrections from a reconciliation
// pass in a single transaction. Individual failures are collected and
// skipped so one bad record cannot sink the rest of the batch. Returns the
// number of corrections applied and the per-record errors.
func (s *Store) ApplyLinkCorrections(ctx context.Context, corrections []LinkCorrection) (int, []error) {
	if len(corrections) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, []error{&apperrors.StorageError{Operation: "ApplyLinkCorrections", Err: err}}
	}
	defer func() { _ = tx.Rollback() }() // No-op after commit

	now := time.Now().UTC().Format(time.RFC3339)
	applied := 0
	var errs []error

	for _, c := range corrections {
		query := `
			UPDATE shortcuts
			SET container_id = ?, container_name = ?, container_match_name = ?, updated_at = ?
			WHERE id = ? AND container_name IS NOT NULL`
		args := []any{c.RuntimeID, c.ContainerName, c.MatchName, now, c.ShortcutID}

		if c.Port > 0 {
			query = `
				UPDATE shortcuts
				SET container_id = ?, container_name = ?, container_match_name = ?, port = ?, updated_at = ?
				WHERE id = ? AND container_name IS NOT NULL`
			args = []any{c.RuntimeID, c.ContainerName, c.MatchName, c.Port, now, c.ShortcutID}
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			errs = append(errs, &apperrors.StorageError{
				Operation: "ApplyLinkCorrections", ShortcutID: c.ShortcutID, Err: err,
			})
			continue
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, append(errs, &apperrors.StorageError{Operation: "ApplyLinkCorrections", Err: err})
	}
	return applied, errs
}

// CreateSection inserts a section and returns its new ID.
func (s *Store) CreateSection(ctx context.Context, sec *Section) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO sections (name, position) VALUES (?, ?)`, sec.Name, sec.Position)
	if err != nil {
		return 0, &apperrors.StorageError{Operation: "CreateSection", Err: err}
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, &apperrors.StorageError{Operation: "CreateSection", Err: err}
	}
	sec.ID = id
	return id, nil
}

// ListSections returns all sections ordered by position.
func (s *Store) ListSections(ctx context.Context) ([]*Section, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, position FROM sections ORDER BY position, id`)
	if err != nil {
		return nil, &apperrors.StorageError{Operation: "ListSections", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var result []*Section
	for rows.Next() {
		var sec Section
		if err := rows.Scan(&sec.ID, &sec.Name, &sec.Position); err != nil {
			return nil, &apperrors.StorageError{Operation: "ListSections", Err: err}
		}
		result = append(result, &sec)
	}
	return result, rows.Err()
}

// UpdateSection rewrites a section's name and position.
func (s *Store) UpdateSection(ctx context.Context, sec *Section) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sections SET name = ?, position = ? WHERE id = ?`,
		sec.Name, sec.Position, sec.ID)
	if err != nil {
		return &apperrors.StorageError{Operation: "UpdateSection", Err: err}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &apperrors.StorageError{Operation: "UpdateSection", Err: err}
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteSection removes a section; shortcuts in it become unsectioned.
func (s *Store) DeleteSection(ctx context.Context, id int64) error {
	// ON DELETE SET NULL needs foreign keys enabled per connection; do it
	// explicitly so shortcuts are detached regardless of pragma state.
	if _, err := s.db.ExecContext(ctx,
		`UPDATE shortcuts SET section_id = NULL WHERE section_id = ?`, id); err != nil {
		return &apperrors.StorageError{Operation: "DeleteSection", Err: err}
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return &apperrors.StorageError{Operation: "DeleteSection", Err: err}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &apperrors.StorageError{Operation: "DeleteSection", Err: err}
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetCounts returns record counts for status reporting.
func (s *Store) GetCounts(ctx context.Context) (Counts, error) {
	var c Counts
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM shortcuts),
			(SELECT COUNT(*) FROM shortcuts WHERE container_name IS NOT NULL),
			(SELECT COUNT(*) FROM sections)`)
	if err := row.Scan(&c.Shortcuts, &c.ContainerLinked, &c.Sections); err != nil {
		return Counts{}, &apperrors.StorageError{Operation: "GetCounts", Err: err}
	}
	return c, nil
}
