package optics

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip attribute construction entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for optics and its sub-packages.
// By default, optics produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent default.
//
// Log levels used by optics:
//   - [slog.LevelDebug]: per-call diagnostics (remap statistics, TIR per wavelength,
//     spectrum samples skipped because the index model is undefined)
//   - [slog.LevelWarn]: degraded output (diagram labels skipped when the font fails to load)
//
// Example:
//
//	optics.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by optics.
// The diagram package calls this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
