// Package leaselite is a durable workflow engine. Handlers are registered
// by name, runs are enqueued with Start and executed by any process running
// Poll against the same store. Ownership of a run is a lease persisted on
// its record, progress survives crashes through memoized steps and naps.
package leaselite

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/davidroman0O/leaselite/store"
)

type Client struct {
	store    store.Store
	registry *Registry
	config   *clientConfig
	logger   Logger

	// executions, never cancelled by Poll or Close
	group    errgroup.Group
	inFlight atomic.Int64
	closed   atomic.Bool
}

func New(ctx context.Context, st store.Store, registry *Registry, opts ...ClientOption) (*Client, error) {
	if st == nil {
		return nil, errors.New("leaselite: nil store")
	}
	if registry == nil {
		return nil, errors.New("leaselite: nil registry")
	}
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	c := &Client{
		store:    st,
		registry: registry,
		config:   config,
		logger:   config.logger,
	}
	c.logger.Debug(ctx, "client ready",
		"handlers", registry.Names(),
		"max_failures", config.maxFailures,
		"timeout_interval", config.timeoutInterval,
		"poll_interval", config.pollInterval,
		"retry_interval", config.retryInterval)
	return c, nil
}

// Start enqueues a run of handler. It reports false, without error, when a
// workflow with the same id already exists; the first input is kept.
func (c *Client) Start(ctx context.Context, id, handler string, input any) (bool, error) {
	if c.closed.Load() {
		return false, ErrClientClosed
	}
	data, err := c.config.codec.Marshal(input)
	if err != nil {
		return false, fmt.Errorf("start %s: encode input: %w", id, err)
	}
	created, err := c.store.Insert(ctx, id, handler, data, c.config.now())
	if err != nil {
		return false, fmt.Errorf("start %s: %w", id, err)
	}
	if created {
		c.logger.Debug(ctx, "workflow started", "workflow_id", id, "handler", handler)
	} else {
		c.logger.Debug(ctx, "workflow already started", "workflow_id", id)
	}
	return created, nil
}

// Inspect returns the full persisted record of a workflow.
func (c *Client) Inspect(ctx context.Context, id string) (*store.Workflow, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	wf, err := c.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Join(ErrWorkflowNotFound, err)
		}
		return nil, err
	}
	return wf, nil
}

// Wait blocks until every execution dispatched so far has returned.
func (c *Client) Wait() error {
	return c.group.Wait()
}

// InFlight is the number of executions currently running in this process.
func (c *Client) InFlight() int {
	return int(c.inFlight.Load())
}

// Close releases the store. Executions still running are not interrupted,
// call Wait first to let them finish.
func (c *Client) Close(ctx context.Context) error {
	if c.closed.Swap(true) {
		return ErrClientClosed
	}
	if n := c.InFlight(); n > 0 {
		c.logger.Warn(ctx, "closing with executions in flight", "in_flight", n)
	}
	return c.store.Close(ctx)
}
