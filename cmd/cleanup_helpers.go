package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zorak1103/porthall/internal/store"
)

// shortcutLister is the store surface cleanup needs.
type shortcutLister interface {
	ListShortcuts(ctx context.Context) ([]*store.Shortcut, error)
}

// findOrphanedIcons returns files in iconsDir that no shortcut references.
// Icon references are compared by base name so both bare filenames and
// full paths stored in the icon column keep their files alive.
func findOrphanedIcons(ctx context.Context, storage shortcutLister, iconsDir string) ([]string, error) {
	entries, err := os.ReadDir(iconsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read icons directory %s: %w", iconsDir, err)
	}

	shortcuts, err := storage.ListShortcuts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortcuts: %w", err)
	}

	referenced := make(map[string]bool, len(shortcuts))
	for _, sc := range shortcuts {
		if sc.Icon != "" {
			referenced[filepath.Base(sc.Icon)] = true
		}
	}

	var orphaned []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !referenced[entry.Name()] {
			orphaned = append(orphaned, filepath.Join(iconsDir, entry.Name()))
		}
	}

	return orphaned, nil
}

// deleteIconFiles removes the given files, continuing past failures so one
// locked file cannot stop the rest of the cleanup.
func deleteIconFiles(paths []string) (deleted int, errs []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		deleted++
	}
	return deleted, errs
}
