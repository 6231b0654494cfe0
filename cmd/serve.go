package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zorak1103/porthall/internal/docker"
	"github.com/zorak1103/porthall/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP API",
	Long: `Serve starts the Porthall HTTP API.

The API exposes shortcut and section management, the live container
inventory, on-demand synchronization, and icon resolution under /api/v1.
The dashboard stays usable from stored data when the Docker daemon is
unreachable.`,
	Example: `  # Start on the configured address (default :7575)
  porthall serve

  # Start with a custom config file
  porthall serve --config /etc/porthall/config.yaml`,
	RunE: runServe,
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg = GetConfig()
	if err := validateConfigOrExit(cfg, "serve"); err != nil {
		return err
	}

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

	resolver, err := buildResolver(cfg)
	if err != nil {
		return err
	}

	handler := server.NewHandler(st, dockerClient, sync, resolver, syncOptionsFromConfig(cfg))
	app := server.NewApp(handler)

	// Shut the listener down cleanly on SIGINT/SIGTERM so in-flight
	// requests finish before the process exits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\n🛑 Received %s, shutting down...\n", sig)
		_ = app.Shutdown()
	}()

	fmt.Printf("🚀 Porthall listening on %s\n", cfg.Server.ListenAddr)
	if err := app.Listen(cfg.Server.ListenAddr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	fmt.Println("✅ Shutdown complete")
	return nil
}
