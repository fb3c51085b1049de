package vpcomp

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/vpcomp/kernel"
	"github.com/gogpu/vpcomp/sfc"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// setters holds the collaborators of live compositors that accept a
// logger, such as diagnostic sinks.
var (
	settersMu sync.Mutex
	setters   = map[loggerSetter]int{}
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for vpcomp and all its sub-packages.
// By default, vpcomp produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by vpcomp:
//   - [slog.LevelDebug]: per-layer decisions, kernel reflection, scaler state
//   - [slog.LevelInfo]: strategy selection, pipeline creation
//   - [slog.LevelWarn]: deferred layers, fallbacks
//
// Example:
//
//	vpcomp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	kernel.SetLogger(l)
	sfc.SetLogger(l)

	settersMu.Lock()
	defer settersMu.Unlock()
	for s := range setters {
		s.SetLogger(l)
	}
}

// Logger returns the current logger used by vpcomp.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

func slogger() *slog.Logger { return loggerPtr.Load() }

// loggerSetter is implemented by collaborators that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// registerLogger makes later SetLogger calls reach v if it accepts a
// logger. v keeps its own logger until then. Registrations are counted so
// a sink shared by several compositors stays registered until the last
// one closes.
func registerLogger(v any) {
	s, ok := v.(loggerSetter)
	if !ok {
		return
	}
	settersMu.Lock()
	setters[s]++
	settersMu.Unlock()
}

func unregisterLogger(v any) {
	s, ok := v.(loggerSetter)
	if !ok {
		return
	}
	settersMu.Lock()
	defer settersMu.Unlock()
	if setters[s]--; setters[s] <= 0 {
		delete(setters, s)
	}
}
