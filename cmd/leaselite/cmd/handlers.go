package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/davidroman0O/leaselite"
)

type countdownInput struct {
	From  int    `msgpack:"from"`
	Every string `msgpack:"every"`
}

// demoRegistry holds the handlers the worker command serves.
func demoRegistry() (*leaselite.Registry, error) {
	return leaselite.NewRegistry().
		Handler("echo", echo).
		Handler("countdown", leaselite.Handle(countdown)).
		Build()
}

func echo(ctx *leaselite.Context, input leaselite.Input) error {
	var payload any
	if err := input.Decode(&payload); err != nil {
		return err
	}
	ctx.Logger().Info(ctx, "echo", "payload", payload)
	return nil
}

// countdown announces every tick once and naps between ticks, a restarted
// run skips the ticks already announced and the time already slept.
func countdown(ctx *leaselite.Context, in countdownInput) error {
	every := time.Second
	if in.Every != "" {
		d, err := time.ParseDuration(in.Every)
		if err != nil {
			return fmt.Errorf("countdown: %w", err)
		}
		every = d
	}
	if in.From <= 0 {
		return fmt.Errorf("countdown: from must be positive, got %d", in.From)
	}

	for i := in.From; i > 0; i-- {
		_, err := leaselite.Step(ctx, fmt.Sprintf("announce-%d", i), func(context.Context) (time.Time, error) {
			ctx.Logger().Info(ctx, "tick", "remaining", i)
			return time.Now().UTC(), nil
		})
		if err != nil {
			return err
		}
		if err := ctx.Sleep(fmt.Sprintf("tick-%d", i), every); err != nil {
			return err
		}
	}
	ctx.Logger().Info(ctx, "liftoff")
	return nil
}
