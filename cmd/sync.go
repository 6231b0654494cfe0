package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zorak1103/porthall/internal/docker"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-time synchronization pass",
	Long: `Sync performs a single reconciliation pass between Docker containers
and stored shortcuts.

This command:
  1. Lists containers from the Docker daemon
  2. Matches them against existing container-linked shortcuts
  3. Corrects stale links (renamed or recreated containers)
  4. Creates shortcuts for containers no shortcut claims
  5. Sends a summary notification if configured

Custom links are never touched and shortcuts are never deleted.
Use this for one-off passes or when integrating with external cron/schedulers.`,
	Example: `  # Run a synchronization pass
  porthall sync

  # Preview without writing (no shortcuts created or corrected)
  porthall sync --dry-run

  # Sync running containers only
  porthall sync --running-only`,
	RunE: runSync,
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(syncCmd)

	// Define flags without global variables - values are stored internally by Cobra
	syncCmd.Flags().Bool("dry-run", false, "compute changes without writing to the database")
	syncCmd.Flags().Bool("running-only", false, "ignore stopped containers for this pass")
	syncCmd.Flags().Bool("no-validate", false, "skip icon existence checks for this pass")
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg = GetConfig()
	if err := validateConfigOrExit(cfg, "sync"); err != nil {
		return err
	}

	opts := syncOptionsFromConfig(cfg)
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	if runningOnly, _ := cmd.Flags().GetBool("running-only"); runningOnly {
		opts.IncludeStopped = false
	}
	if noValidate, _ := cmd.Flags().GetBool("no-validate"); noValidate {
		opts.ValidateIcons = false
	}

	ctx := context.Background()

	if IsVerbose() {
		fmt.Println("=== Porthall Synchronization ===")
		fmt.Printf("Dry Run: %v\n", opts.DryRun)
		fmt.Printf("Include Stopped: %v\n", opts.IncludeStopped)
		fmt.Printf("Validate Icons: %v\n", opts.ValidateIcons)
		fmt.Printf("Docker Socket: %s\n", cfg.Docker.SocketPath)
		fmt.Printf("Database: %s\n", cfg.Storage.DatabasePath)
		fmt.Println()
	}

	fmt.Println("🔍 Starting synchronization pass...")
	if opts.DryRun {
		fmt.Println("⚠️  DRY RUN MODE - No shortcuts will be created or corrected")
	}
	fmt.Println()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }() // Close store; error not actionable in defer context

	dockerClient, err := docker.NewClient(cfg.Docker.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to create Docker client: %w", err)
	}
	defer func() { _ = dockerClient.Close() }() // Close client; error not actionable in defer context

	sync, err := buildSyncer(cfg, dockerClient, st)
	if err != nil {
		return err
	}

	result, err := sync.Synchronize(ctx, opts)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	fmt.Printf("✅ Sync complete!\n")
	fmt.Printf("   Containers examined: %d\n", result.Total)
	fmt.Printf("   Shortcuts created: %d\n", result.Created)
	fmt.Printf("   Shortcuts updated: %d\n", result.Updated)
	if opts.DryRun {
		fmt.Printf("   Database: Not modified (dry-run)\n")
	}
	fmt.Println()

	return nil
}
