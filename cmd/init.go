package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zorak1103/porthall/internal/templates"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Porthall configuration and directory structure",
	Long: `Init creates the necessary configuration files and directories for Porthall.

This command will create:
  - config.yaml (sample configuration file)
  - .env (environment variable template)
  - icon_overrides.yaml (curated icon override table template)
  - data/ (directory for the SQLite database)
  - data/icons/ (directory for uploaded icon files)

Run this once when setting up Porthall for the first time.`,
	Example: `  # Initialize in current directory
  porthall init

  # Force overwrite existing files
  porthall init --force`,
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println("🔧 Initializing Porthall...")

		dirs := []string{
			"data",
			filepath.Join("data", "icons"),
		}

		for _, dir := range dirs {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
			fmt.Printf("✅ Created directory: %s\n", dir)
		}

		files := map[string][]byte{
			"config.yaml":         templates.ConfigYAML,
			".env":                templates.EnvFile,
			"icon_overrides.yaml": templates.IconOverridesYAML,
		}

		for filename, content := range files {
			if _, err := os.Stat(filename); err == nil && !force {
				fmt.Printf("⚠️  Skipping %s (already exists, use --force to overwrite)\n", filename)
				continue
			}

			if err := os.WriteFile(filename, content, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", filename, err)
			}

			fmt.Printf("✅ Created %s\n", filename)
		}

		fmt.Println("\n🎉 Initialization complete!")
		fmt.Println("\n📝 Next steps:")
		fmt.Println("   1. Edit config.yaml to point at your Docker socket")
		fmt.Println("   2. Edit .env to configure notifications and secrets")
		fmt.Println("   3. Run 'porthall sync --dry-run' to preview the first pass")
		fmt.Println("   4. Run 'porthall serve' to start the dashboard API")

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration files")
}
