package amino

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureLog routes the package logger into a buffer at debug level for the
// duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	buf := captureLog(t)
	e, _, _ := newTestEngine(t, false)
	e.SetDebugMode(true)
	defer e.SetDebugMode(false)

	root := NewGroup()
	cur := root
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		g := NewGroup()
		cur.Add(g)
		cur = g
	}
	if !strings.Contains(buf.String(), "tree depth exceeds limit") {
		t.Errorf("no depth warning in log:\n%s", buf.String())
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	buf := captureLog(t)
	e, _, _ := newTestEngine(t, false)
	e.SetDebugMode(true)
	defer e.SetDebugMode(false)

	g := NewGroup()
	for i := 0; i <= debugMaxChildCount; i++ {
		g.Add(NewRect())
	}
	if !strings.Contains(buf.String(), "child count exceeds limit") {
		t.Error("no child count warning in log")
	}
}

func TestReleaseMode_NoWarnings(t *testing.T) {
	buf := captureLog(t)
	root := NewGroup()
	cur := root
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		g := NewGroup()
		cur.Add(g)
		cur = g
	}
	if buf.Len() != 0 {
		t.Errorf("release mode logged:\n%s", buf.String())
	}
}

func TestDebugMode_FrameStats(t *testing.T) {
	buf := captureLog(t)
	e, _, _ := newTestEngine(t, false)
	e.SetDebugMode(true)
	defer e.SetDebugMode(false)

	s := e.AddSurface("main", 10, 10)
	s.Add(NewGroup(NewRect(), NewRect()))
	e.Repaint()

	out := buf.String()
	for _, want := range []string{"msg=frame", "surfaces=1", "nodes=3", "animations=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
