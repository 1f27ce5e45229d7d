package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestZeroLogger_InfoWritesFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Info("budget search served",
		Field{Key: "place", Value: "goa"},
		Field{Key: "combinations", Value: 3},
		Field{Key: "cache_hit", Value: false},
	)

	output := buf.String()
	for _, want := range []string{
		"budget search served",
		`"level":"info"`,
		`"place":"goa"`,
		`"combinations":3`,
		`"cache_hit":false`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in log, got: %s", want, output)
		}
	}
}

func TestZeroLogger_DebugShownOutsideProduction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("staging", buf)

	log.Debug("candidate pool built")

	if !strings.Contains(buf.String(), "candidate pool built") {
		t.Errorf("expected debug log outside production, got: %s", buf.String())
	}
}

func TestZeroLogger_DebugHiddenInProduction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("production", buf)

	log.Debug("debug-hidden")

	if buf.String() != "" {
		t.Errorf("expected no debug output in production, got: %s", buf.String())
	}
}

func TestZeroLogger_ProductionDoesNotLeakIntoOtherLoggers(t *testing.T) {
	prodBuf := &bytes.Buffer{}
	devBuf := &bytes.Buffer{}
	_ = NewWithWriter("production", prodBuf)
	dev := NewWithWriter("development", devBuf)

	dev.Debug("still visible")

	if !strings.Contains(devBuf.String(), "still visible") {
		t.Errorf("expected development logger to keep debug level, got: %s", devBuf.String())
	}
}

func TestZeroLogger_ErrorAndDuration(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Error("catalog refresh failed", Err(errors.New("connection refused")), Field{Key: "took", Value: 1500 * time.Millisecond})

	output := buf.String()
	if !strings.Contains(output, `"level":"error"`) {
		t.Errorf("expected error level, got: %s", output)
	}
	if !strings.Contains(output, `"err":"connection refused"`) {
		t.Errorf("expected err field, got: %s", output)
	}
	if !strings.Contains(output, `"took":1500`) {
		t.Errorf("expected duration field in ms, got: %s", output)
	}
}

func TestZeroLogger_WarnFallsBackForComplexValues(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("development", buf)

	log.Warn("unknown destination", Field{Key: "known", Value: []string{"Goa", "Kerala"}})

	output := buf.String()
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("expected warn level, got: %s", output)
	}
	if !strings.Contains(output, `"known":["Goa","Kerala"]`) {
		t.Errorf("expected slice field, got: %s", output)
	}
}
