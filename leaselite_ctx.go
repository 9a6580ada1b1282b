package leaselite

import (
	"context"
	"fmt"
	"time"
)

// coarsest wake time resolution among the stores
const napPrecision = time.Millisecond

// Context is handed to a handler for one run of one workflow. Steps and naps
// are keyed by caller chosen ids that must be stable across replays.
type Context struct {
	context.Context
	client     *Client
	workflowID string
	handler    string
	attempt    int
	logger     Logger
}

func newContext(ctx context.Context, client *Client, workflowID, handler string, attempt int) *Context {
	return &Context{
		Context:    ctx,
		client:     client,
		workflowID: workflowID,
		handler:    handler,
		attempt:    attempt,
		logger: client.config.logger.WithFields(map[string]interface{}{
			"workflow_id": workflowID,
			"handler":     handler,
			"attempt":     attempt,
		}),
	}
}

func (c *Context) WorkflowID() string {
	return c.workflowID
}

func (c *Context) Handler() string {
	return c.handler
}

// Attempt is 1 on the first run and grows with every recorded failure.
func (c *Context) Attempt() int {
	return c.attempt
}

func (c *Context) Logger() Logger {
	return c.logger
}

// Step runs fn once per stepID over the whole life of the workflow. A replay
// finds the persisted output and skips fn. When out is not nil the persisted
// output is decoded into it, also on the first run, so both paths observe
// the same value. An error from fn persists nothing.
func (c *Context) Step(stepID string, out any, fn func(ctx context.Context) (any, error)) error {
	cfg := c.client.config
	st := c.client.store

	data, found, err := st.ReadStep(c, c.workflowID, stepID)
	if err != nil {
		return fmt.Errorf("step %s: %w", stepID, err)
	}

	if found {
		c.logger.Debug(c, "step replayed", "step_id", stepID)
	} else {
		value, err := fn(c)
		if err != nil {
			return err
		}
		encoded, err := cfg.codec.Marshal(value)
		if err != nil {
			return fmt.Errorf("step %s: encode output: %w", stepID, err)
		}
		if data, err = st.WriteStep(c, c.workflowID, stepID, encoded, cfg.now().Add(cfg.timeoutInterval)); err != nil {
			return fmt.Errorf("step %s: %w", stepID, err)
		}
		c.logger.Debug(c, "step recorded", "step_id", stepID)
	}

	if out == nil {
		return nil
	}
	if err := cfg.codec.Unmarshal(data, out); err != nil {
		return fmt.Errorf("step %s: decode output: %w", stepID, err)
	}
	return nil
}

// Step is the typed form of Context.Step.
func Step[T any](c *Context, stepID string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := c.Step(stepID, &out, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	return out, err
}

// Sleep suspends the run until the wake time recorded the first time napID
// was reached. A replay only waits for whatever is left of it.
func (c *Context) Sleep(napID string, d time.Duration) error {
	cfg := c.client.config
	st := c.client.store

	wakeAt, found, err := st.ReadNap(c, c.workflowID, napID)
	if err != nil {
		return fmt.Errorf("nap %s: %w", napID, err)
	}
	now := cfg.now()

	if found {
		remaining := wakeAt.Sub(now)
		if remaining <= 0 {
			return nil
		}
		c.logger.Debug(c, "nap resumed", "nap_id", napID, "remaining", remaining)
		return cfg.sleep(c, remaining)
	}

	wakeAt = now.Add(d)
	// the lease outlives the nap
	persisted, err := st.WriteNap(c, c.workflowID, napID, wakeAt, wakeAt.Add(cfg.timeoutInterval))
	if err != nil {
		return fmt.Errorf("nap %s: %w", napID, err)
	}
	remaining := persisted.Sub(now)
	// our own write, possibly rounded by the store
	if diff := persisted.Sub(wakeAt); diff > -napPrecision && diff < napPrecision {
		remaining = d
	}
	if remaining <= 0 {
		return nil
	}
	c.logger.Debug(c, "nap recorded", "nap_id", napID, "wake_at", persisted)
	return cfg.sleep(c, remaining)
}

// Start enqueues another workflow, see Client.Start.
func (c *Context) Start(id, handler string, input any) (bool, error) {
	return c.client.Start(c, id, handler, input)
}
