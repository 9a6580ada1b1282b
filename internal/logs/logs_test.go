package logs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -timeout 30s -v -count=1 -run ^TestPrettyHandler$ ./internal/logs
func TestPrettyHandler(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := slog.New(NewPrettyHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("workflow_id", "wf1").WithGroup("step").Info("memoized", "id", "charge")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, " INFO ")
	assert.Contains(t, out, "memoized")
	assert.Contains(t, out, `workflow_id="wf1"`)
	assert.Contains(t, out, `step.id="charge"`)
}

type failing struct{ slog.Handler }

func (failing) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandler(t *testing.T) {
	var text, json bytes.Buffer
	multi := NewMultiHandler(
		slog.NewTextHandler(&text, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&json, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(multi).With("run", 1)

	logger.Info("claimed")
	logger.Warn("aborted")

	assert.Contains(t, text.String(), "claimed")
	assert.Contains(t, text.String(), "aborted")
	assert.NotContains(t, json.String(), "claimed")
	assert.Contains(t, json.String(), `"run":1`)

	broken := NewMultiHandler(failing{slog.NewTextHandler(&text, nil)}, slog.NewTextHandler(&json, nil))
	err := broken.Handle(context.Background(), slog.Record{Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")
}
