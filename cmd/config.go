package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zorak1103/porthall/internal/config"
)

// validateConfigOrExit validates that the configuration is properly initialized
// and all required directories exist. Returns a user-friendly error if validation fails.
func validateConfigOrExit(cfg *config.Config, _ string) error {
	// Check if config was loaded
	if cfg == nil {
		if loadErr := GetConfigLoadError(); loadErr != nil {
			return fmt.Errorf("configuration not loaded: %w\n\nRun 'porthall init' to set up Porthall and create the necessary configuration", loadErr)
		}
		return fmt.Errorf("configuration not loaded\n\nPorthall has not been initialized in this directory.\nRun 'porthall init' to set up Porthall and create the necessary configuration")
	}

	// Validate required directories exist
	var missingDirs []string

	// Check database parent directory
	dbDir := filepath.Dir(cfg.Storage.DatabasePath)
	if dbDir != "." && dbDir != "" {
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			missingDirs = append(missingDirs, fmt.Sprintf("Database directory: %s", dbDir))
		}
	}

	// Check icons directory (only if configured)
	if cfg.Storage.IconsDir != "" {
		if _, err := os.Stat(cfg.Storage.IconsDir); os.IsNotExist(err) {
			missingDirs = append(missingDirs, fmt.Sprintf("Icons directory: %s", cfg.Storage.IconsDir))
		}
	}

	// If directories are missing, return helpful error
	if len(missingDirs) > 0 {
		errMsg := "required directories are missing:\n\n"
		for _, dir := range missingDirs {
			errMsg += fmt.Sprintf("  - %s\n", dir)
		}
		errMsg += "\nRun 'porthall init' to create the required directory structure"
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: `Display the effective configuration that Porthall will use at runtime.

This shows the merged configuration from:
  1. Default values
  2. Configuration file (config.yaml)
  3. Environment variables (highest priority)

Sensitive values like notification URLs are masked for security.`,
	Example: `  # Show current configuration
  porthall config

  # Show with custom config file
  porthall config --config /etc/porthall/config.yaml`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("configuration not loaded\n\nTo get started, run: porthall init")
		}

		fmt.Println("=== Porthall Effective Configuration ===")
		fmt.Println()

		// Server Configuration
		fmt.Println("🌐 Server Configuration:")
		fmt.Printf("   Listen Addr:    %s\n", cfg.Server.ListenAddr)
		fmt.Println()

		// Docker Configuration
		fmt.Println("🐳 Docker Configuration:")
		fmt.Printf("   Socket Path:    %s\n", cfg.Docker.SocketPath)
		fmt.Printf("   Include Stopped: %v\n", cfg.Docker.IncludeStopped)
		fmt.Println()

		// Storage Configuration
		fmt.Println("📁 Storage Configuration:")
		fmt.Printf("   Database Path:  %s\n", cfg.Storage.DatabasePath)
		fmt.Printf("   Icons Dir:      %s\n", cfg.Storage.IconsDir)
		fmt.Println()

		// Icons Configuration
		fmt.Println("🎨 Icons Configuration:")
		fmt.Printf("   Catalog Template: %s\n", cfg.Icons.CatalogURLTemplate)
		fmt.Printf("   Default Icon:   %s\n", cfg.Icons.DefaultIcon)
		fmt.Printf("   Validate URLs:  %v\n", cfg.Icons.Validate)
		if cfg.Icons.OverridesFile != "" {
			fmt.Printf("   Overrides:      [EXTERNAL] %s\n", cfg.Icons.OverridesFile)
		} else {
			fmt.Printf("   Overrides:      [BUILT-IN DEFAULTS]\n")
		}
		fmt.Println()

		// Notification Configuration
		fmt.Println("🔔 Notification Configuration:")
		fmt.Printf("   Enabled:        %v\n", cfg.Notification.Enabled)
		fmt.Printf("   Shoutrrr URL:   %s\n", maskShoutrrrURL(cfg.Notification.ShoutrrURL))
		fmt.Println()

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
}

// maskShoutrrrURL masks sensitive parts of Shoutrrr URL
func maskShoutrrrURL(url string) string {
	if url == "" {
		return "❌ Not configured"
	}

	// Extract service type (e.g., discord://, slack://, smtp://)
	parts := strings.SplitN(url, "://", 2)
	if len(parts) != 2 {
		return "✅ Configured (invalid format)"
	}

	service := parts[0]
	// Mask the credentials/tokens
	return fmt.Sprintf("✅ Configured (%s://***)", service)
}
