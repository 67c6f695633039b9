package amino

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Screenshot queues a labelled screenshot, written as PNG into ScreenshotDir
// at the end of the next repaint.
func (s *Surface) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
	s.requestFrame()
}

// flushScreenshots writes the raster for every queued label.
func (s *Surface) flushScreenshots() {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		Logger().Warn("screenshot failed", slog.String("dir", s.ScreenshotDir), slog.Any("err", err))
		return
	}

	clock := Clock(SystemClock{})
	if s.engine != nil {
		clock = s.engine.clock
	}
	stamp := clock.Now().Format("20060102_150405")

	for _, label := range s.screenshotQueue {
		path := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := s.ctx.SavePNG(path); err != nil {
			Logger().Warn("screenshot failed", slog.String("path", path), slog.Any("err", err))
			continue
		}
		Logger().Info("screenshot written", slog.String("surface", s.id), slog.String("path", path))
	}
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
