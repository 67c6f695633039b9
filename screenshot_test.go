package amino

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotWritesOnRepaint(t *testing.T) {
	e, sched, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 10, 10)
	s.ScreenshotDir = filepath.Join(t.TempDir(), "shots")

	s.Screenshot("a")
	s.Screenshot("b")
	if len(s.screenshotQueue) != 2 {
		t.Fatalf("queue = %v, want 2 labels", s.screenshotQueue)
	}
	sched.RunFrame()
	if len(s.screenshotQueue) != 0 {
		t.Errorf("queue not drained: %v", s.screenshotQueue)
	}

	// The engine clock is stopped at epoch.
	for _, label := range []string{"a", "b"} {
		path := filepath.Join(s.ScreenshotDir, "20240102_030405_"+label+".png")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing screenshot %s: %v", path, err)
		}
	}
}
