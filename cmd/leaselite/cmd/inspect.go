package cmd

import (
	"context"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Print the persisted record of a workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, shutdown, err := newLogger(ctx)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())

		client, err := newClient(ctx, logger)
		if err != nil {
			return err
		}
		defer client.Close(context.Background())

		wf, err := client.Inspect(ctx, args[0])
		if err != nil {
			return err
		}
		printer := pp.New()
		printer.SetOutput(cmd.OutOrStdout())
		printer.SetColoringEnabled(false)
		_, err = printer.Println(wf)
		return err
	},
}
