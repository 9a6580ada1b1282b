package leaselite

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/davidroman0O/leaselite/internal/lifecycle"
	"github.com/davidroman0O/leaselite/store"
)

// run executes one claimed workflow and records how it ended. Errors are
// about the run itself being impossible (missing record, unknown handler,
// store failure), a failing handler is not one of them.
func (c *Client) run(ctx context.Context, id string) error {
	rd, err := c.store.ReadRunData(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.Join(ErrWorkflowNotFound, err)
		}
		return fmt.Errorf("read run data %s: %w", id, err)
	}

	fn, ok := c.registry.Get(rd.Handler)
	if !ok {
		return fmt.Errorf("%w: %q for workflow %s", ErrHandlerNotFound, rd.Handler, id)
	}

	wctx := newContext(ctx, c, id, rd.Handler, rd.Failures+1)
	wctx.logger.Debug(ctx, "workflow running")

	herr := invoke(fn, wctx, Input{data: rd.Input, codec: c.config.codec})
	if herr == nil {
		if _, err := lifecycle.Next(store.StatusRunning, lifecycle.TriggerComplete, rd.Failures, c.config.maxFailures); err != nil {
			return err
		}
		if err := c.store.SetFinished(ctx, id); err != nil {
			return fmt.Errorf("finish %s: %w", id, err)
		}
		wctx.logger.Info(ctx, "workflow finished")
		return nil
	}

	failures := rd.Failures + 1
	status, err := lifecycle.Next(store.StatusRunning, lifecycle.TriggerFail, failures, c.config.maxFailures)
	if err != nil {
		return err
	}
	timeoutAt := c.config.now().Add(c.config.retryInterval)
	if err := c.store.SetStatus(ctx, id, status, timeoutAt, failures, herr.Error()); err != nil {
		return fmt.Errorf("record failure of %s: %w", id, errors.Join(herr, err))
	}

	if status == store.StatusAborted {
		wctx.logger.Error(ctx, "workflow aborted", "failures", failures, "error", herr)
	} else {
		wctx.logger.Warn(ctx, "workflow failed", "failures", failures, "retry_at", timeoutAt, "error", herr)
	}
	return nil
}

// invoke turns a handler panic into an error.
func invoke(fn HandlerFunc, ctx *Context, input Input) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrWorkflowPanicked, r, debug.Stack())
		}
	}()
	return fn(ctx, input)
}
