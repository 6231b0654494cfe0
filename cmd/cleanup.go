package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const (
	checkmark = "✓"
)

var (
	cleanupDryRun bool
	cleanupForce  bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove orphaned icon files",
	Long: `Identify and remove uploaded icon files that no shortcut references.

Deleting a shortcut leaves its uploaded icon file behind so other
shortcuts sharing the file keep working. The cleanup command finds files
in the icons directory that nothing references anymore and removes them.

Note: This command requires Porthall to be initialized. Run 'porthall init'
first if you encounter configuration errors.`,
	Example: `  # List orphaned icon files
  porthall cleanup list

  # Preview what would be deleted (dry-run)
  porthall cleanup execute --dry-run

  # Delete with confirmation prompt
  porthall cleanup execute

  # Delete without confirmation
  porthall cleanup execute --force`,
}

var cleanupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orphaned icon files",
	Long: `Display icon files in the icons directory that no stored shortcut
references.`,
	Example: `  # List orphaned icon files
  porthall cleanup list`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := GetConfig()
		if err := validateConfigOrExit(cfg, "cleanup"); err != nil {
			return err
		}

		ctx := context.Background()

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }() // Close store; error not actionable in defer context

		orphaned, err := findOrphanedIcons(ctx, st, cfg.Storage.IconsDir)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "🧹 Orphaned Icon Files:")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")

		if len(orphaned) == 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s No orphaned icon files found\n", checkmark)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  The icons directory is clean!")
			return nil
		}

		for _, path := range orphaned {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  • %s\n", filepath.Base(path))
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Found %d orphaned file(s) in %s\n", len(orphaned), cfg.Storage.IconsDir)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Run 'porthall cleanup execute' to remove these files")

		return nil
	},
}

var cleanupExecuteCmd = &cobra.Command{
	Use:   "execute",
	Short: "Remove orphaned icon files",
	Long: `Remove icon files that no stored shortcut references.

By default, displays what will be deleted and prompts for confirmation.
Use --dry-run to preview without deleting, or --force to skip confirmation.`,
	Example: `  # Preview what would be deleted
  porthall cleanup execute --dry-run

  # Delete with confirmation prompt
  porthall cleanup execute

  # Delete without confirmation
  porthall cleanup execute --force`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := GetConfig()
		if err := validateConfigOrExit(cfg, "cleanup"); err != nil {
			return err
		}

		ctx := context.Background()

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }() // Close store; error not actionable in defer context

		orphaned, err := findOrphanedIcons(ctx, st, cfg.Storage.IconsDir)
		if err != nil {
			return err
		}

		if len(orphaned) == 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s No orphaned icon files found\n", checkmark)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "  The icons directory is clean!")
			return nil
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Found %d orphaned file(s):\n", len(orphaned))
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		for _, path := range orphaned {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  • %s\n", filepath.Base(path))
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")

		// Dry-run mode - exit without deleting
		if cleanupDryRun {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "🔍 DRY RUN - No changes made")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "   Run without --dry-run to perform the cleanup")
			return nil
		}

		// Confirmation prompt (unless --force)
		if !cleanupForce {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), "⚠️  Proceed with cleanup? (y/N): ")
			var response string
			if _, scanErr := fmt.Fscanln(cmd.InOrStdin(), &response); scanErr != nil {
				// Treat scan error as "no" response
				response = "n"
			}
			response = strings.ToLower(strings.TrimSpace(response))

			if response != "y" && response != "yes" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "❌ Cleanup canceled")
				return nil
			}
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "🧹 Cleaning up...")

		deleted, errs := deleteIconFiles(orphaned)

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✅ Cleanup complete")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   Removed: %d file(s)\n", deleted)
		if len(errs) > 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   Failed: %d file(s)\n", len(errs))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "⚠️  Errors encountered:")
			for _, errMsg := range errs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   - %s\n", errMsg)
			}
		}

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.AddCommand(cleanupListCmd)
	cleanupCmd.AddCommand(cleanupExecuteCmd)

	// Global cleanup flags
	cleanupCmd.PersistentFlags().BoolVar(&cleanupDryRun, "dry-run", false, "show what would be deleted without actually deleting")
	cleanupCmd.PersistentFlags().BoolVar(&cleanupForce, "force", false, "skip confirmation prompt")
}
