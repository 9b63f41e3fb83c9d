// Package docker probes the local Docker daemon.
//
// The scaffolder never talks to the daemon beyond a reachability check:
// when Docker integration is requested, the orchestrator pings the daemon
// so the user learns up front whether `docker compose up` will work once
// the generated stack exists. The check is advisory; the files are
// generated either way.
package docker

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"
)

// pingTimeout bounds the daemon reachability check. 5 seconds covers
// Docker Desktop on macOS, which responds noticeably slower than native
// Linux Docker.
const pingTimeout = 5 * time.Second

// Client wraps the Docker SDK client with automatic socket detection.
type Client struct {
	inner *client.Client
}

// NewClient creates a Docker client. DOCKER_HOST wins when set; otherwise
// the platform's default socket locations are probed.
func NewClient() (*Client, error) {
	host := os.Getenv("DOCKER_HOST")
	if host == "" {
		detected, err := detectHost()
		if err != nil {
			return nil, err
		}
		host = detected
	}

	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create Docker client for host %q: %w", host, err)
	}

	return &Client{inner: c}, nil
}

// detectHost returns the Docker host URI for the current platform by
// probing known socket paths. Existence of the socket file does not
// guarantee a listening daemon; Ping handles that part.
func detectHost() (string, error) {
	var candidates []string
	switch runtime.GOOS {
	case "linux":
		candidates = []string{"/var/run/docker.sock"}
	case "darwin":
		candidates = []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, home+"/.docker/run/docker.sock")
		}
	case "windows":
		// Named pipes cannot be stat'ed; let the SDK try the fixed path.
		return "npipe:////./pipe/docker_engine", nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of %v, is Docker running?", candidates)
}

// Ping verifies the daemon is reachable and responsive within pingTimeout.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return fmt.Errorf("Docker daemon is not responding, is Docker running?: %w", err)
	}
	return nil
}

// Close releases the client's resources. Safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// DaemonReachable is the one-shot form used by the preflight stage and
// the doctor command: connect, ping, close.
func DaemonReachable(ctx context.Context) error {
	c, err := NewClient()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return c.Ping(ctx)
}
