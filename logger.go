package pixelsort

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while images are being sorted on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger for image runs; nil restores the silent default.
// It is safe to call while Apply is running on other goroutines.
//
// Records emitted:
//   - "pixelsort: apply" (Debug): raster size, direction, keys, threshold
//     and worker count at the start of [Apply].
//   - "pixelsort: apply done" (Debug): lines, segments and sorted pixels.
//   - "pixelsort: legacy channel sort" (Debug): start of [ApplyRawChannel].
//   - "pixelsort: apply interrupted" and "pixelsort: legacy sort interrupted"
//     (Warn): the context was cancelled before every line was processed.
//
// Line-level calls ([SortLine], [Sorter]) never log.
//
// Example:
//
//	pixelsort.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by pixelsort.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
