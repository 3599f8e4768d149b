// Package dockerutil constructs clients for the container daemon the
// development harness runs its environments on.
package dockerutil

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"

	"github.com/leosac/devkit/internal/logging"
)

// NewAPIClient returns the low-level daemon client bound to host, exposing
// the SDK's full protocol surface without version negotiation or any
// convenience layer. The caller owns the handle and closes it; connection
// problems surface on first use exactly as the SDK reports them.
func NewAPIClient(host string) (*client.Client, error) {
	api, err := client.NewClientWithOpts(client.WithHost(host))
	if err != nil {
		return nil, fmt.Errorf("create daemon API client: %w", err)
	}
	return api, nil
}

// Daemon is the high-level daemon handle used by harness commands. Handles
// are independent per call site: nothing is pooled or reused, and closing
// is the caller's job.
type Daemon struct {
	logging.Mixin
	api *client.Client
}

// NewClient returns a high-level handle bound to host, negotiating the API
// version with the daemon on first contact.
func NewClient(host string) (*Daemon, error) {
	api, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create daemon client: %w", err)
	}

	d := &Daemon{api: api}
	d.Bind(d)
	return d, nil
}

// API exposes the underlying low-level client for operations the
// convenience layer does not cover.
func (d *Daemon) API() *client.Client {
	return d.api
}

// Close releases the handle's transport.
func (d *Daemon) Close() error {
	return d.api.Close()
}

// ListContainers returns the daemon's containers; all includes stopped
// ones.
func (d *Daemon) ListContainers(ctx context.Context, all bool) ([]types.Container, error) {
	containers, err := d.api.ContainerList(ctx, container.ListOptions{All: all})
	if err != nil {
		return nil, d.Fail(fmt.Errorf("list containers: %w", err))
	}
	return containers, nil
}

// Inspect returns the full inspection document for a container.
func (d *Daemon) Inspect(ctx context.Context, containerID string) (types.ContainerJSON, error) {
	info, err := d.api.ContainerInspect(ctx, containerID)
	if err != nil {
		return types.ContainerJSON{}, d.Fail(fmt.Errorf("inspect container %s: %w", containerID, err))
	}
	return info, nil
}

// Remove deletes a container, optionally force-removing a running one.
func (d *Daemon) Remove(ctx context.Context, containerID string, force bool) error {
	if err := d.api.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: force}); err != nil {
		return d.Fail(fmt.Errorf("remove container %s: %w", containerID, err))
	}
	return nil
}

// Pull fetches an image, draining the daemon's progress stream.
func (d *Daemon) Pull(ctx context.Context, ref string) error {
	stream, err := d.api.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return d.Fail(fmt.Errorf("pull image %s: %w", ref, err))
	}
	defer stream.Close()

	// The pull is not complete until the progress stream ends.
	if _, err := io.Copy(io.Discard, stream); err != nil {
		return d.Fail(fmt.Errorf("pull image %s: %w", ref, err))
	}
	return nil
}

// Version returns the daemon's version document.
func (d *Daemon) Version(ctx context.Context) (types.Version, error) {
	version, err := d.api.ServerVersion(ctx)
	if err != nil {
		return types.Version{}, d.Fail(fmt.Errorf("daemon version: %w", err))
	}
	return version, nil
}

// Ping probes daemon liveness.
func (d *Daemon) Ping(ctx context.Context) (types.Ping, error) {
	ping, err := d.api.Ping(ctx)
	if err != nil {
		return types.Ping{}, d.Fail(fmt.Errorf("ping daemon: %w", err))
	}
	return ping, nil
}
