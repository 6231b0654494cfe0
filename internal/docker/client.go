// Package docker provides a client for interacting with the Docker API.
package docker

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// Common errors
var (
	ErrConnectionFailed = errors.New("docker connection failed")
	ErrNotFound         = errors.New("container not found")
)

// Client defines the interface for Docker client operations.
// Implementations must provide container listing and connection management.
// All methods accept context.Context for cancellation and timeout support.
type Client interface {
	// Ping verifies the Docker daemon is accessible. Returns error if connection fails.
	Ping(ctx context.Context) error
	// Close closes the Docker client connection and releases resources.
	Close() error

	// ListContainers lists containers matching the provided filter options.
	//
	// Example usage with filters:
	//   opts := FilterOptions{
	//       IncludeAll:  true,          // Include stopped containers
	//       NamePattern: "^media-.*$",  // Match media stack containers
	//   }
	//   containers, err := client.ListContainers(ctx, opts)
	//   if err != nil {
	//       return fmt.Errorf("failed to list containers: %w", err)
	//   }
	//   for _, ctr := range containers {
	//       fmt.Printf("  %s: %s (%s)\n", ctr.Name, ctr.ID[:12], ctr.State)
	//   }
	ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error)
}

// dockerClientWrapper wraps the Docker client to implement our interface
type dockerClientWrapper struct {
	cli        *client.Client
	socketPath string
}

// Compile-time verification that dockerClientWrapper implements Client
var _ Client = (*dockerClientWrapper)(nil)

// NewClient connects to the Docker daemon at socketPath (or default if empty).
func NewClient(socketPath string) (Client, error) {
	opts := []client.Opt{
		client.WithAPIVersionNegotiation(),
	}

	// Add host option if socket path is specified
	if socketPath != "" {
		opts = append(opts, client.WithHost(socketPath))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client for socket %s: %w", socketPath, err)
	}

	wrapper := &dockerClientWrapper{
		cli:        cli,
		socketPath: socketPath,
	}
	return &dockerClient{cli: wrapper}, nil
}

// NewClientWithInterface is used for testing with mock implementations.
func NewClientWithInterface(dockerCli Client) Client {
	return &dockerClient{cli: dockerCli}
}

func (w *dockerClientWrapper) Ping(ctx context.Context) error {
	_, err := w.cli.Ping(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping Docker daemon at %s: %w", w.socketPath, err)
	}
	return nil
}

func (w *dockerClientWrapper) Close() error {
	return w.cli.Close()
}

func (w *dockerClientWrapper) ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error) {
	listOptions := container.ListOptions{
		All: opts.IncludeAll,
	}

	containers, err := w.cli.ContainerList(ctx, listOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers from socket %s: %w", w.socketPath, err)
	}

	var result []Container
	var nameFilter *regexp.Regexp

	// Compile regex if pattern is provided
	if opts.NamePattern != "" {
		nameFilter, err = regexp.Compile(opts.NamePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid name pattern '%s': %w", opts.NamePattern, err)
		}
	}

	for _, ctr := range containers {
		// Extract container name (remove leading slash)
		name := ""
		if len(ctr.Names) > 0 {
			name = ctr.Names[0]
			if name != "" && name[0] == '/' {
				name = name[1:]
			}
		}

		// Apply name filter if specified
		if nameFilter != nil && !nameFilter.MatchString(name) {
			continue
		}

		ports := make([]Port, 0, len(ctr.Ports))
		for _, p := range ctr.Ports {
			ports = append(ports, Port{
				Private:  int(p.PrivatePort),
				Public:   int(p.PublicPort),
				Protocol: p.Type,
			})
		}

		result = append(result, Container{
			ID:    ctr.ID,
			Name:  name,
			State: ctr.State,
			Image: ctr.Image,
			Ports: ports,
		})
	}

	return result, nil
}

// dockerClient wraps the Docker client with application-specific logic
type dockerClient struct {
	cli Client
}

func (c *dockerClient) Close() error {
	return c.cli.Close()
}

func (c *dockerClient) Ping(ctx context.Context) error {
	return c.cli.Ping(ctx)
}

func (c *dockerClient) ListContainers(ctx context.Context, opts FilterOptions) ([]Container, error) {
	return c.cli.ListContainers(ctx, opts)
}
