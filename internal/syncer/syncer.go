// Package syncer drives one reconciliation pass: live containers in, stored
// shortcuts corrected and created. It is the only place where matcher and
// resolver output is turned into storage writes.
package syncer

import (
	"context"
	"fmt"
	"io"

	"github.com/zorak1103/porthall/internal/docker"
	"github.com/zorak1103/porthall/internal/match"
	"github.com/zorak1103/porthall/internal/names"
	"github.com/zorak1103/porthall/internal/store"
)

// Inventory lists live containers. Satisfied by docker.Client.
type Inventory interface {
	ListContainers(ctx context.Context, opts docker.FilterOptions) ([]docker.Container, error)
}

// Storage is the subset of the store a pass reads and writes.
type Storage interface {
	ListContainerLinked(ctx context.Context) ([]*store.Shortcut, error)
	ApplyLinkCorrections(ctx context.Context, corrections []store.LinkCorrection) (int, []error)
	CreateShortcut(ctx context.Context, sc *store.Shortcut) (int64, error)
}

// IconResolver resolves an icon reference for a container name.
// Satisfied by icons.Resolver.
type IconResolver interface {
	Resolve(ctx context.Context, raw string, validate bool) string
}

// Notifier delivers an optional pass summary. Satisfied by
// notification.Notifier; nil disables summaries.
type Notifier interface {
	SendSyncSummary(created, updated, total int) error
}

// Options tunes a single pass.
type Options struct {
	IncludeStopped bool // include stopped containers in the inventory
	ValidateIcons  bool // existence-check catalog URLs for new shortcuts
	DryRun         bool // compute but do not write
}

// Result reports what a pass did. Total is the number of live containers
// examined. A repeat pass with no runtime changes yields Created=0,
// Updated=0.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// Syncer wires the matcher and resolver to their collaborators.
type Syncer struct {
	inventory Inventory
	storage   Storage
	resolver  IconResolver
	notifier  Notifier
	warnOut   io.Writer
}

// New constructs a Syncer. notifier may be nil; warnOut may be nil to
// silence warnings.
func New(inventory Inventory, storage Storage, resolver IconResolver, notifier Notifier, warnOut io.Writer) *Syncer {
	if warnOut == nil {
		warnOut = io.Discard
	}
	return &Syncer{
		inventory: inventory,
		storage:   storage,
		resolver:  resolver,
		notifier:  notifier,
		warnOut:   warnOut,
	}
}

// Synchronize runs one reconciliation pass.
//
// An unreachable daemon is the dominant failure mode in practice and is
// non-fatal: the pass degrades to a no-op result. Storage write failures
// are logged per record and skipped so one bad row cannot sink the batch.
func (s *Syncer) Synchronize(ctx context.Context, opts Options) (Result, error) {
	containers, err := s.inventory.ListContainers(ctx, docker.FilterOptions{IncludeAll: opts.IncludeStopped})
	if err != nil {
		s.warnf("container engine unreachable, skipping pass: %v", err)
		return Result{}, nil
	}

	shortcuts, err := s.storage.ListContainerLinked(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load container-linked shortcuts: %w", err)
	}

	reconciled := match.Reconcile(containers, shortcuts)

	for _, ctr := range reconciled.AmbiguousContainers {
		s.warnf("container %s (%s) shares a match key with another container, leaving unmatched",
			ctr.Name, shortID(ctr.ID))
	}

	result := Result{Total: len(containers)}

	corrections := make([]store.LinkCorrection, 0, len(reconciled.Pairs))
	for _, pair := range reconciled.Pairs {
		if pair.Correction != nil {
			corrections = append(corrections, *pair.Correction)
		}
	}

	if opts.DryRun {
		result.Updated = len(corrections)
		result.Created = len(reconciled.UnmatchedContainers)
		return result, nil
	}

	if len(corrections) > 0 {
		applied, errs := s.storage.ApplyLinkCorrections(ctx, corrections)
		for _, applyErr := range errs {
			s.warnf("correction skipped: %v", applyErr)
		}
		result.Updated = applied
	}

	for _, ctr := range reconciled.UnmatchedContainers {
		sc := s.newShortcut(ctx, ctr, opts.ValidateIcons)
		if _, err := s.storage.CreateShortcut(ctx, sc); err != nil {
			s.warnf("shortcut creation skipped for %s: %v", ctr.Name, err)
			continue
		}
		result.Created++
	}

	if s.notifier != nil && (result.Created > 0 || result.Updated > 0) {
		if err := s.notifier.SendSyncSummary(result.Created, result.Updated, result.Total); err != nil {
			s.warnf("sync summary notification failed: %v", err)
		}
	}

	return result, nil
}

// newShortcut builds the record for a container no shortcut claimed.
func (s *Syncer) newShortcut(ctx context.Context, ctr docker.Container, validateIcons bool) *store.Shortcut {
	iconName := ctr.Name
	if iconName == "" {
		iconName = ctr.Image
	}
	base := names.BaseName(ctr.Name)

	return &store.Shortcut{
		DisplayName: base,
		Icon:        s.resolver.Resolve(ctx, iconName, validateIcons),
		Port:        ctr.FirstPublicPort(),
		IsFavorite:  false,
		Container: &store.ContainerLink{
			Name:      base,
			MatchName: base,
			RuntimeID: ctr.ID,
		},
	}
}

func (s *Syncer) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.warnOut, "⚠️  "+format+"\n", args...)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
