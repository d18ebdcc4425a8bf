// Package trace records the documents exchanged with a bank. Every type
// here satisfies ebics.Tracer.
package trace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type correlationKey struct{}

// WithCorrelationID attaches an operation id to ctx; tracers use it to
// group the documents of one operation.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// NewCorrelationID returns a fresh operation id.
func NewCorrelationID() string {
	return uuid.NewString()
}

// CorrelationID returns the operation id of ctx, or "" if none is set.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// Nop discards all documents.
type Nop struct{}

// Trace does nothing.
func (Nop) Trace(context.Context, string, []byte) {}

// Dir writes each document to its own file in a directory.
type Dir struct {
	dir    string
	logger *slog.Logger
	seq    atomic.Uint64
}

// NewDir creates a tracer writing to dir, creating it if needed.
func NewDir(dir string, logger *slog.Logger) (*Dir, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	return &Dir{dir: dir, logger: logger.With("component", "trace")}, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Trace writes document to a new file. Write errors are logged, never returned.
func (d *Dir) Trace(ctx context.Context, step string, document []byte) {
	id := CorrelationID(ctx)
	if id == "" {
		id = NewCorrelationID()
	}
	name := fmt.Sprintf("%s-%s-%04d-%s.xml",
		time.Now().UTC().Format("20060102T150405"),
		id, d.seq.Add(1), unsafeChars.ReplaceAllString(step, "_"))
	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, document, 0o600); err != nil {
		d.logger.Warn("failed to write trace", "path", path, "error", err)
	}
}

// Logger writes documents to a structured logger at debug level.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a tracer logging through logger.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// Trace logs document at debug level.
func (l *Logger) Trace(ctx context.Context, step string, document []byte) {
	l.logger.DebugContext(ctx, "ebics document",
		"step", step,
		"correlation_id", CorrelationID(ctx),
		"size", len(document),
		"document", string(document))
}
