package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesLeveledLines(t *testing.T) {
	var buf bytes.Buffer
	fixed := time.Date(2026, 2, 4, 10, 0, 0, 0, time.UTC)
	log := New(&buf, WithClock(func() time.Time { return fixed }))
	log.Info("loaded %d players", 3)
	log.Warn("  padded  ")
	log.Error("write %s failed", "README.md")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"[2026-02-04T10:00:00Z] INFO  loaded 3 players",
		"[2026-02-04T10:00:00Z] WARN  padded",
		"[2026-02-04T10:00:00Z] ERROR write README.md failed",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger
	log.Info("ignored")
	log.Error("ignored %v", 1)
}
