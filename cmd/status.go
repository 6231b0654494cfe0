package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zorak1103/porthall/internal/docker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon connectivity and stored record counts",
	Long: `Status reports the health of Porthall's two dependencies: the Docker
daemon and the SQLite database.

It shows whether the daemon is reachable, how many containers are
visible, and how many shortcuts and sections are stored.`,
	Example: `  # Show current status
  porthall status

  # Show with verbose output
  porthall status --verbose`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg = GetConfig()
		if err := validateConfigOrExit(cfg, "status"); err != nil {
			return err
		}

		ctx := context.Background()

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "📊 Porthall Status:")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")

		// Daemon connectivity. An unreachable daemon is reported, not fatal:
		// the stored records are still worth showing.
		containerCount := -1
		dockerClient, err := docker.NewClient(cfg.Docker.SocketPath)
		if err == nil {
			defer func() { _ = dockerClient.Close() }() // Close client; error not actionable in defer context
			if pingErr := dockerClient.Ping(ctx); pingErr == nil {
				containers, listErr := dockerClient.ListContainers(ctx, docker.FilterOptions{
					IncludeAll: cfg.Docker.IncludeStopped,
				})
				if listErr == nil {
					containerCount = len(containers)
				}
			}
		}

		if containerCount >= 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "🐳 Docker: connected (%s)\n", cfg.Docker.SocketPath)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   Containers visible: %d\n", containerCount)
		} else {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "❌ Docker: unreachable (%s)\n", cfg.Docker.SocketPath)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "   Synchronization passes will be skipped until the daemon is back")
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }() // Close store; error not actionable in defer context

		counts, err := st.GetCounts(ctx)
		if err != nil {
			return fmt.Errorf("failed to read record counts: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "Records\tCount")
		_, _ = fmt.Fprintln(w, "-------\t-----")
		_, _ = fmt.Fprintf(w, "Shortcuts\t%d\n", counts.Shortcuts)
		_, _ = fmt.Fprintf(w, "  container-linked\t%d\n", counts.ContainerLinked)
		_, _ = fmt.Fprintf(w, "  custom links\t%d\n", counts.Shortcuts-counts.ContainerLinked)
		_, _ = fmt.Fprintf(w, "Sections\t%d\n", counts.Sections)
		_ = w.Flush() // Flush buffered output; error not actionable in CLI display context

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", cfg.Storage.DatabasePath)

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(statusCmd)
}
