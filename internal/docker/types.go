package docker

// Container represents a Docker container with the metadata the dashboard
// needs: identity, image, lifecycle state, and published ports.
type Container struct {
	ID    string
	Name  string // leading slash stripped
	State string // running, exited, etc.
	Image string
	Ports []Port
}

// Port represents a single container port mapping. Public is zero when the
// port is not published on the host.
type Port struct {
	Private  int
	Public   int
	Protocol string // tcp or udp
}

// FilterOptions contains options for filtering containers
type FilterOptions struct {
	NamePattern string // Regex pattern for container names
	IncludeAll  bool   // Include stopped containers
}

// FirstPublicPort returns the lowest host-published port of the container,
// or 0 when nothing is published. Deterministic regardless of the order the
// daemon reports mappings in.
func (c Container) FirstPublicPort() int {
	best := 0
	for _, p := range c.Ports {
		if p.Public == 0 {
			continue
		}
		if best == 0 || p.Public < best {
			best = p.Public
		}
	}
	return best
}
