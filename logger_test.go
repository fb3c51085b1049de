package vpcomp

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/vpcomp/diag"
	"github.com/gogpu/vpcomp/format"
)

var levels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range levels {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("layers", 2)}).(nopHandler); !ok {
		t.Error("WithAttrs left the nop handler")
	}
	if _, ok := h.WithGroup("compose").(nopHandler); !ok {
		t.Error("WithGroup left the nop handler")
	}
}

// captureLogs installs a debug text logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range levels {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	buf := captureLogs(t)

	Logger().Info("hello", "key", "value")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output = %q", buf.String())
	}

	SetLogger(nil)
	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestComposeLogs(t *testing.T) {
	buf := captureLogs(t)

	c := newCompositor(t)
	inputs := make([]input, 9)
	for i := range inputs {
		inputs[i] = input{f: format.A8R8G8B8, w: 16, h: 16}
	}
	req, set := request(format.A8R8G8B8, 16, 16, inputs...)
	mustCompose(t, c, req, set)

	out := buf.String()
	for _, want := range []string{"composition built", "layers deferred", "reason=Layers"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerReachesSink(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	sink := diag.NewSlogSink(nil)
	c := newCompositor(t, WithDiagnostics(sink))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	req, set := request(format.NV12, 64, 64, input{f: format.NV12, w: 64, h: 64})
	mustCompose(t, c, req, set)
	if !strings.Contains(buf.String(), "composition report") {
		t.Fatalf("sink did not follow SetLogger:\n%s", buf.String())
	}

	// A closed compositor releases the sink.
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	settersMu.Lock()
	_, registered := setters[sink]
	settersMu.Unlock()
	if registered {
		t.Error("sink still registered after Close")
	}
}

func TestSharedSinkRegistration(t *testing.T) {
	sink := diag.NewSlogSink(nil)
	a := newCompositor(t, WithDiagnostics(sink))
	b := newCompositor(t, WithDiagnostics(sink))

	_ = a.Close()
	settersMu.Lock()
	n := setters[sink]
	settersMu.Unlock()
	if n != 1 {
		t.Errorf("registrations after one Close = %d, want 1", n)
	}

	_ = b.Close()
	settersMu.Lock()
	_, registered := setters[sink]
	settersMu.Unlock()
	if registered {
		t.Error("sink still registered after both compositors closed")
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 50
	for range goroutines {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
