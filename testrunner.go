package amino

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// testStep is a single action in a test script.
type testStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Node     string  `json:"node,omitempty"`
	Property string  `json:"property,omitempty"`
	From     float64 `json:"from,omitempty"`
	To       float64 `json:"to,omitempty"`
	Millis   int     `json:"ms,omitempty"`
	Easing   string  `json:"easing,omitempty"`
}

// testScript is the top-level JSON structure of a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, animations and screenshots across
// frames for automated visual testing. Attach it with Surface.SetTestRunner.
//
// Actions: screenshot {label}, click {x, y}, drag {fromX, fromY, toX, toY,
// frames}, wait {frames}, animate {node, property, from, to, ms, easing}.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner. It advances once per engine frame and keeps
// frames coming until it is done.
func (s *Surface) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
	s.requestFrame()
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(s *Surface) {
	if r.done {
		return
	}
	// Injected events drain before the script advances.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "animate":
		r.animate(s, st)
	default:
		Logger().Warn("test script: unknown action", slog.String("action", st.Action))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) animate(s *Surface, st testStep) {
	n := s.Find(st.Node)
	if n == nil || s.engine == nil {
		Logger().Warn("test script: cannot animate", slog.String("node", st.Node))
		return
	}
	a, err := NewPropertyAnimation(n, st.Property, st.From, st.To, time.Duration(st.Millis)*time.Millisecond)
	if err != nil {
		Logger().Warn("test script: animate", slog.Any("err", err))
		return
	}
	if st.Easing != "" {
		fn, ok := Easing(st.Easing)
		if !ok {
			Logger().Warn("test script: unknown easing", slog.String("easing", st.Easing))
		}
		a.SetEasing(fn)
	}
	a.OnAfter(func() { s.engine.RemoveAnimation(a) })
	s.engine.AddAnimation(a)
	a.Start()
}
