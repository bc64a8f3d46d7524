package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock(l *Logger) {
	l.sink.now = func() time.Time {
		return time.Date(2024, 1, 2, 13, 4, 5, 6_000_000, time.UTC)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"Warning", LevelWarn},
		{"warn", LevelWarn},
		{" error ", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelDebug, &buf)
	fixedClock(l)

	l.Info("loaded %d stars", 3)
	l.Named("catalog").Warn("row %d rejected", 7)

	want := "13:04:05.006 [INFO] loaded 3 stars\n" +
		"13:04:05.006 [WARN] catalog: row 7 rejected\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelWarn, &buf)
	l.Debug("hidden")
	l.Info("hidden")
	l.Error("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("messages below the level should be dropped")
	}
	if !strings.Contains(buf.String(), "[ERROR] shown") {
		t.Errorf("missing error line: %q", buf.String())
	}
	if l.Enabled(LevelInfo) || !l.Enabled(LevelError) {
		t.Error("Enabled disagrees with level")
	}
}

func TestLogger_NamedSharesSink(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriter(LevelInfo, &buf)
	child := root.Named("ui").Named("mouse")

	root.SetLevel(LevelDebug)
	child.Debug("move")
	if !strings.Contains(buf.String(), "ui.mouse: move") {
		t.Errorf("child should follow parent level and nest names: %q", buf.String())
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.log")
	l, closer, err := Open(path, LevelInfo)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Named("main").Info("started")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[INFO] main: started") {
		t.Errorf("log file = %q", data)
	}

	if _, _, err := Open(filepath.Join(t.TempDir(), "missing", "x.log"), LevelInfo); err == nil {
		t.Error("Open into a missing directory should fail")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard should not enable any level")
	}
}
