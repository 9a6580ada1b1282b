package leaselite

import (
	"context"
	"fmt"
)

// Poll claims eligible workflows one at a time until shouldStop reports true
// or ctx is done. Claimed workflows run in the background without bound and
// Poll does not wait for them, see Wait. A failing claim stops Poll with its
// error; failures of the runs themselves are only logged.
func (c *Client) Poll(ctx context.Context, shouldStop func() bool) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	if shouldStop == nil {
		shouldStop = func() bool { return false }
	}

	for !shouldStop() {
		if err := ctx.Err(); err != nil {
			return err
		}

		id, ok, err := c.store.Claim(ctx, c.config.now(), c.config.timeoutInterval)
		if err != nil {
			return fmt.Errorf("claim: %w", err)
		}
		if ok {
			c.dispatch(ctx, id)
			continue
		}

		if err := c.config.sleep(ctx, c.config.pollInterval); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) dispatch(ctx context.Context, id string) {
	// runs outlive the poll loop that found them
	runCtx := context.WithoutCancel(ctx)
	c.inFlight.Add(1)
	c.logger.Debug(ctx, "workflow claimed", "workflow_id", id)

	c.group.Go(func() error {
		defer c.inFlight.Add(-1)
		if err := c.run(runCtx, id); err != nil {
			c.logger.Error(runCtx, "workflow run failed", "workflow_id", id, "error", err)
		}
		return nil
	})
}
