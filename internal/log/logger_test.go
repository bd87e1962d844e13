package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentDataset, Output: &buf})
	l.Info("loaded", FieldRows, 3)
	out := buf.String()
	if !strings.Contains(out, "component=dataset") {
		t.Fatalf("missing component: %q", out)
	}
	if !strings.Contains(out, "rows=3") {
		t.Fatalf("missing rows field: %q", out)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})
	l.Info("hidden")
	l.Debug("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithComponentReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Output: &buf}).WithComponent(ComponentCache)
	l.Info("hit")
	out := buf.String()
	if strings.Count(out, "component=") != 1 || !strings.Contains(out, "component=cache") {
		t.Fatalf("expected single cache component, got %q", out)
	}
}

func TestWithKeepsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	l := New(cfg).WithComponent(ComponentDataset).With(FieldLoadID, "abc")
	l.Info("ready")
	out := buf.String()
	if !strings.Contains(out, "component=dataset") || !strings.Contains(out, "load_id=abc") {
		t.Fatalf("expected component and load_id, got %q", out)
	}
}

func TestSetDefaultRoutesSlog(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var buf bytes.Buffer
	SetDefault(New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf}))
	slog.Info("via default")
	if !strings.Contains(buf.String(), "component=app") {
		t.Fatalf("expected default logger output, got %q", buf.String())
	}
}
