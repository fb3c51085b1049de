package diag

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Report describes one finished composition.
type Report struct {
	// ID identifies the composition request.
	ID uuid.UUID

	Strategy string
	Diff     Diff
	Features Features

	Admitted int
	Deferred int
	Removed  int
}

// NewReport returns a report with a fresh request id.
func NewReport(strategy string) *Report {
	return &Report{ID: uuid.New(), Strategy: strategy}
}

// LogValue groups the report into one structured attribute.
func (r *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", r.ID.String()),
		slog.String("strategy", r.Strategy),
		slog.String("diff", fmt.Sprintf("%#x", uint32(r.Diff))),
		slog.String("diff_flags", r.Diff.String()),
		slog.String("features", fmt.Sprintf("%#x", r.Features.Pack())),
		slog.Int("admitted", r.Admitted),
		slog.Int("deferred", r.Deferred),
		slog.Int("removed", r.Removed),
	)
}

// Sink receives composition reports. Implementations must be safe for
// concurrent use when shared between compositors.
type Sink interface {
	Report(r *Report)
}

// SlogSink writes reports as Debug records.
type SlogSink struct {
	logger atomic.Pointer[slog.Logger]
}

// NewSlogSink returns a sink writing through l, or discarding when l is
// nil until SetLogger is called.
func NewSlogSink(l *slog.Logger) *SlogSink {
	s := &SlogSink{}
	s.SetLogger(l)
	return s
}

// SetLogger replaces the sink's logger. vpcomp.SetLogger propagates here.
func (s *SlogSink) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discard{})
	}
	s.logger.Store(l)
}

// Report logs r.
func (s *SlogSink) Report(r *Report) {
	s.logger.Load().LogAttrs(context.Background(), slog.LevelDebug, "vpcomp: composition report",
		slog.Any("report", r))
}

type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

// Recorder keeps reports in memory. It is meant for tests and tools.
type Recorder struct {
	mu      sync.Mutex
	reports []*Report
}

// Report appends r.
func (c *Recorder) Report(r *Report) {
	c.mu.Lock()
	c.reports = append(c.reports, r)
	c.mu.Unlock()
}

// Reports returns a copy of the recorded reports.
func (c *Recorder) Reports() []*Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Report(nil), c.reports...)
}
