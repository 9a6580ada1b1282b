// Package cmd is the leaselite command line: a worker running the demo
// handlers plus commands to enqueue and inspect workflows.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/davidroman0O/leaselite"
	"github.com/davidroman0O/leaselite/internal/config"
	"github.com/davidroman0O/leaselite/internal/logs"
	"github.com/davidroman0O/leaselite/store"
	"github.com/davidroman0O/leaselite/store/dsn"
)

var (
	storeURL  string
	logLevel  string
	logFormat string

	appVersion = "dev"

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "leaselite",
	Short: "Durable workflows over a shared store",
	Long: `leaselite runs workflows whose progress lives in a store shared by
every worker. Workers claim runs through leases, memoized steps and naps
let a run resume where a crashed worker left it.

Settings come from LEASELITE_* environment variables, flags win.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func SetVersion(version string) {
	appVersion = version
	rootCmd.Version = version
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeURL, "store", "",
		"store url, memory:// sqlite:// mongodb:// or nats:// (default from LEASELITE_STORE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format (text, json, pretty)")

	rootCmd.AddCommand(workerCmd, startCmd, inspectCmd)
}

func initConfig(cmd *cobra.Command) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		loaded.StoreURL = storeURL
	}
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		loaded.Log.Format = logFormat
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func baseHandler(w io.Writer) slog.Handler {
	level := leaselite.ParseLevel(cfg.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Log.Format {
	case "json":
		return slog.NewJSONHandler(w, opts)
	case "text":
		return slog.NewTextHandler(w, opts)
	default:
		return logs.NewPrettyHandler(w, level)
	}
}

// newLogger returns the engine logger and a shutdown func flushing the OTLP
// exporter when one is configured.
func newLogger(ctx context.Context) (leaselite.Logger, func(context.Context) error, error) {
	handler := baseHandler(os.Stderr)
	if cfg.Log.OTelExporter != "otlp" {
		return leaselite.NewLogger(handler), func(context.Context) error { return nil }, nil
	}
	otlp, err := logs.NewOTLP(ctx, "leaselite", appVersion, cfg.Log.OTelEndpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("otlp logs: %w", err)
	}
	return leaselite.NewLogger(logs.NewMultiHandler(handler, otlp)), otlp.Shutdown, nil
}

func openStore(ctx context.Context) (store.Store, error) {
	st, err := dsn.Open(ctx, cfg.StoreURL)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.StoreURL, err)
	}
	return st, nil
}

func clientOptions(logger leaselite.Logger) []leaselite.ClientOption {
	return []leaselite.ClientOption{
		leaselite.WithMaxFailures(cfg.Engine.MaxFailures),
		leaselite.WithTimeoutInterval(cfg.Engine.TimeoutInterval),
		leaselite.WithPollInterval(cfg.Engine.PollInterval),
		leaselite.WithRetryInterval(cfg.Engine.RetryInterval),
		leaselite.WithLogger(logger),
	}
}
