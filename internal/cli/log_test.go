package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hydrochem/pkg/observability"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("workbook loaded") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("cache miss") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache miss") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("rows dropped") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v (%q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestCLILoggerVerbose(t *testing.T) {
	t.Cleanup(observability.Reset)
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("cache lookup", "key", "abc")
	if buf.Len() != 0 {
		t.Fatalf("debug logged before SetLogLevel: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("cache lookup", "key", "abc")
	if !strings.Contains(buf.String(), "key=abc") {
		t.Errorf("debug output %q missing key=abc", buf.String())
	}
	if _, ok := observability.Cache().(*observability.LogHooks); !ok {
		t.Errorf("cache hooks = %T, want *LogHooks", observability.Cache())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Rendered diagrams", "count", 2, "source", "wells.xlsx")

	out := buf.String()
	for _, want := range []string{"Rendered diagrams", "count=2", "source=wells.xlsx", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should yield log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Fatal("loggerFromContext did not return the attached logger")
	}
}
