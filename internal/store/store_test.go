package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "porthall.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetShortcut(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sc := &Shortcut{
		DisplayName: "Plex",
		Icon:        "https://icons.example.com/plex.png",
		Port:        32400,
		Container: &ContainerLink{
			Name:      "plex",
			MatchName: "plex",
			RuntimeID: "abc123",
		},
	}

	id, err := s.CreateShortcut(ctx, sc)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.GetShortcut(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Plex", got.DisplayName)
	assert.Equal(t, 32400, got.Port)
	require.NotNil(t, got.Container)
	assert.Equal(t, "plex", got.Container.Name)
	assert.Equal(t, "plex", got.Container.MatchName)
	assert.Equal(t, "abc123", got.Container.RuntimeID)
	assert.False(t, got.IsFavorite)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateShortcut_CustomLink(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateShortcut(ctx, &Shortcut{
		DisplayName: "Router",
		URL:         "https://192.168.1.1",
	})
	require.NoError(t, err)

	got, err := s.GetShortcut(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Container, "custom link must not carry container identity")
	assert.Equal(t, "https://192.168.1.1", got.URL)
}

func TestCreateShortcut_MatchNameRequiresContainerName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A link with an empty name but a match name must not persist the match
	// name: linkColumns drops it before the schema CHECK would reject it.
	id, err := s.CreateShortcut(ctx, &Shortcut{
		DisplayName: "Broken",
		Container:   &ContainerLink{Name: "", MatchName: "ghost"},
	})
	require.NoError(t, err)

	got, err := s.GetShortcut(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Container)
}

func TestListContainerLinked(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateShortcut(ctx, &Shortcut{
		DisplayName: "Plex",
		Container:   &ContainerLink{Name: "plex", MatchName: "plex"},
	})
	require.NoError(t, err)
	_, err = s.CreateShortcut(ctx, &Shortcut{DisplayName: "Router", URL: "https://192.168.1.1"})
	require.NoError(t, err)

	linked, err := s.ListContainerLinked(ctx)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "Plex", linked[0].DisplayName)

	all, err := s.ListShortcuts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateShortcut(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sc := &Shortcut{DisplayName: "Jellyfin", Container: &ContainerLink{Name: "jellyfin"}}
	_, err := s.CreateShortcut(ctx, sc)
	require.NoError(t, err)

	sc.DisplayName = "Jellyfin Media"
	sc.IsFavorite = true
	sc.Container.MatchName = "jellyfin"
	require.NoError(t, s.UpdateShortcut(ctx, sc))

	got, err := s.GetShortcut(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jellyfin Media", got.DisplayName)
	assert.True(t, got.IsFavorite)
	assert.Equal(t, "jellyfin", got.Container.MatchName)
}

func TestUpdateShortcut_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateShortcut(context.Background(), &Shortcut{ID: 9999, DisplayName: "Ghost"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteShortcut(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateShortcut(ctx, &Shortcut{DisplayName: "Temp"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteShortcut(ctx, id))

	_, err = s.GetShortcut(ctx, id)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.ErrorIs(t, s.DeleteShortcut(ctx, id), sql.ErrNoRows)
}

func TestApplyLinkCorrections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sc := &Shortcut{
		DisplayName: "Portainer",
		Port:        9000,
		Container:   &ContainerLink{Name: "portainer", MatchName: "portainer", RuntimeID: "old-id"},
	}
	_, err := s.CreateShortcut(ctx, sc)
	require.NoError(t, err)

	custom := &Shortcut{DisplayName: "Router", URL: "https://192.168.1.1"}
	_, err = s.CreateShortcut(ctx, custom)
	require.NoError(t, err)

	applied, errs := s.ApplyLinkCorrections(ctx, []LinkCorrection{
		{
			ShortcutID:    sc.ID,
			RuntimeID:     "new-id",
			ContainerName: "portainer",
			MatchName:     "portainer",
			Port:          9443,
		},
		// Corrections never touch custom links, even if addressed directly.
		{
			ShortcutID:    custom.ID,
			RuntimeID:     "x",
			ContainerName: "router",
			MatchName:     "router",
		},
	})
	assert.Empty(t, errs)
	assert.Equal(t, 2, applied) // both statements ran; the custom-link one matched no rows

	got, err := s.GetShortcut(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-id", got.Container.RuntimeID)
	assert.Equal(t, 9443, got.Port)

	untouched, err := s.GetShortcut(ctx, custom.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.Container)
}

func TestApplyLinkCorrections_Empty(t *testing.T) {
	s := newTestStore(t)

	applied, errs := s.ApplyLinkCorrections(context.Background(), nil)
	assert.Zero(t, applied)
	assert.Empty(t, errs)
}

func TestSections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	media := &Section{Name: "Media", Position: 1}
	_, err := s.CreateSection(ctx, media)
	require.NoError(t, err)

	infra := &Section{Name: "Infra", Position: 0}
	_, err = s.CreateSection(ctx, infra)
	require.NoError(t, err)

	sections, err := s.ListSections(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Infra", sections[0].Name, "sections ordered by position")

	media.Name = "Media Stack"
	require.NoError(t, s.UpdateSection(ctx, media))

	// Shortcut in a deleted section becomes unsectioned, not deleted.
	sc := &Shortcut{DisplayName: "Plex", SectionID: media.ID}
	_, err = s.CreateShortcut(ctx, sc)
	require.NoError(t, err)

	require.NoError(t, s.DeleteSection(ctx, media.ID))

	got, err := s.GetShortcut(ctx, sc.ID)
	require.NoError(t, err)
	assert.Zero(t, got.SectionID)
}

func TestGetCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateShortcut(ctx, &Shortcut{
		DisplayName: "Plex", Container: &ContainerLink{Name: "plex"},
	})
	require.NoError(t, err)
	_, err = s.CreateShortcut(ctx, &Shortcut{DisplayName: "Router", URL: "https://r"})
	require.NoError(t, err)
	_, err = s.CreateSection(ctx, &Section{Name: "Media"})
	require.NoError(t, err)

	counts, err := s.GetCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Shortcuts: 2, ContainerLinked: 1, Sections: 1}, counts)
}
