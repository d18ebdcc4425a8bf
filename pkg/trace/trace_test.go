package trace

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_WritesOneFilePerDocument(t *testing.T) {
	dir := t.TempDir()
	tracer, err := NewDir(filepath.Join(dir, "traces"), nil)
	require.NoError(t, err)

	ctx := WithCorrelationID(context.Background(), "op-1")
	tracer.Trace(ctx, "CCT/upload init request", []byte("<a/>"))
	tracer.Trace(ctx, "CCT/upload init response", []byte("<b/>"))

	entries, err := os.ReadDir(filepath.Join(dir, "traces"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.Contains(t, e.Name(), "op-1")
		assert.NotContains(t, e.Name(), "/")
		assert.True(t, strings.HasSuffix(e.Name(), ".xml"))
	}
	first, err := os.ReadFile(filepath.Join(dir, "traces", entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "<a/>", string(first))
}

func TestDir_WriteErrorIsLogged(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	tracer, err := NewDir(dir, logger)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	assert.NotPanics(t, func() {
		tracer.Trace(context.Background(), "step", []byte("<a/>"))
	})
	assert.Contains(t, buf.String(), "failed to write trace")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewLogger(logger).Trace(WithCorrelationID(context.Background(), "op-2"), "HPB request", []byte("<x/>"))

	out := buf.String()
	assert.Contains(t, out, `"step":"HPB request"`)
	assert.Contains(t, out, `"correlation_id":"op-2"`)
	assert.Contains(t, out, `x/>`)
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, CorrelationID(context.Background()))
	id := NewCorrelationID()
	assert.Len(t, id, 36)
	assert.Equal(t, id, CorrelationID(WithCorrelationID(context.Background(), id)))

	Nop{}.Trace(context.Background(), "ignored", nil)
}
