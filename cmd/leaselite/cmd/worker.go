package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davidroman0O/leaselite"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Claim and run workflows until interrupted",
	Long: `worker polls the store for eligible workflows and runs them with the
demo handlers (echo, countdown). On SIGINT or SIGTERM it stops claiming,
waits for the runs in progress and closes the store.`,
	Args: cobra.NoArgs,
	RunE: runWorker,
}

func runWorker(cmd *cobra.Command, _ []string) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, shutdown, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, shutdown(context.Background()))
	}()

	registry, err := demoRegistry()
	if err != nil {
		return err
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	client, err := leaselite.New(ctx, st, registry, clientOptions(logger)...)
	if err != nil {
		return errors.Join(err, st.Close(context.Background()))
	}

	logger.Info(ctx, "worker started", "store", cfg.StoreURL, "handlers", registry.Names())
	perr := client.Poll(ctx, nil)
	if errors.Is(perr, context.Canceled) {
		perr = nil
	}

	logger.Info(context.Background(), "worker stopping", "in_flight", client.InFlight())
	return errors.Join(perr, client.Wait(), client.Close(context.Background()))
}
