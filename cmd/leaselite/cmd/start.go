package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/davidroman0O/leaselite"
)

var startID string

var startCmd = &cobra.Command{
	Use:   "start <handler> [json-input]",
	Short: "Enqueue a workflow",
	Example: `  leaselite start echo '{"hello":"world"}'
  leaselite start countdown '{"from":5,"every":"2s"}' --id launch-1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVar(&startID, "id", "", "workflow id (default: random uuid)")
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	handler := args[0]

	var input any
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &input); err != nil {
			return fmt.Errorf("input: %w", err)
		}
		input = integral(input)
	}
	id := startID
	if id == "" {
		id = uuid.NewString()
	}

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

	created, err := client.Start(ctx, id, handler, input)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "started %s (%s)\n", id, handler)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", id)
	}
	return nil
}

// newClient opens a client without handlers, enough to enqueue and inspect.
func newClient(ctx context.Context, logger leaselite.Logger) (*leaselite.Client, error) {
	registry, err := leaselite.NewRegistry().Build()
	if err != nil {
		return nil, err
	}
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	return leaselite.New(ctx, st, registry, clientOptions(logger)...)
}

// integral turns whole JSON numbers into int64 so they decode into integer
// fields of handler inputs.
func integral(v any) any {
	switch t := v.(type) {
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return int64(t)
		}
	case map[string]any:
		for k, e := range t {
			t[k] = integral(e)
		}
	case []any:
		for i, e := range t {
			t[i] = integral(e)
		}
	}
	return v
}
