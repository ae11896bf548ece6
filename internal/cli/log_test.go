package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("msg") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("msg") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	newProgress(logger).done("rendered tree")

	out := buf.String()
	if !strings.Contains(out, "rendered tree") {
		t.Errorf("done() output %q should contain the message", out)
	}
	if !strings.Contains(out, "(") || !strings.Contains(out, ")") {
		t.Errorf("done() output %q should include the elapsed duration", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext() should return the attached logger")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext() should fall back to the default logger")
	}
}
