package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/zorak1103/porthall/internal/config"
	"github.com/zorak1103/porthall/internal/docker"
	"github.com/zorak1103/porthall/internal/icons"
	"github.com/zorak1103/porthall/internal/notification"
	"github.com/zorak1103/porthall/internal/store"
	"github.com/zorak1103/porthall/internal/syncer"
)

// iconCheckTimeout bounds each catalog HEAD request so one slow CDN
// response cannot stall a whole reconciliation pass.
const iconCheckTimeout = 10 * time.Second

// buildResolver assembles the icon resolver from the configured override
// table and catalog template.
func buildResolver(cfg *config.Config) (*icons.Resolver, error) {
	table, err := icons.LoadOverrides(cfg.Icons.OverridesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load icon overrides: %w", err)
	}

	checker := icons.NewHTTPChecker(iconCheckTimeout)
	return icons.NewResolver(table, checker, cfg.Icons.CatalogURLTemplate, cfg.Icons.DefaultIcon), nil
}

// buildSyncer wires a reconciliation pass from its collaborators. Warnings
// go to stderr so they stay visible next to command output.
func buildSyncer(cfg *config.Config, dockerClient docker.Client, st *store.Store) (*syncer.Syncer, error) {
	resolver, err := buildResolver(cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := notification.NewNotifier(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notifier: %w", err)
	}

	return syncer.New(dockerClient, st, resolver, notifier, os.Stderr), nil
}

// syncOptionsFromConfig derives the default pass options.
func syncOptionsFromConfig(cfg *config.Config) syncer.Options {
	return syncer.Options{
		IncludeStopped: cfg.Docker.IncludeStopped,
		ValidateIcons:  cfg.Icons.Validate,
	}
}

// openStore opens the database at the configured path.
func openStore(cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return st, nil
}
