package amino

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

var epoch = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func at(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestPropertyAnimationCompletesAtDuration(t *testing.T) {
	r := NewRect()
	a := MustPropertyAnimation(r, "x", 0, 100, time.Second)
	var before, after int
	a.OnBefore(func() { before++ }).OnAfter(func() { after++ })
	a.Start()

	a.Update(at(0))
	if r.X() != 0 || before != 1 {
		t.Fatalf("start: x = %v, before = %d, want 0, 1", r.X(), before)
	}
	a.Update(at(500))
	if !approx(r.X(), 50) {
		t.Errorf("x at 500ms = %v, want 50", r.X())
	}
	if !a.Playing() {
		t.Fatal("stopped before the duration elapsed")
	}
	a.Update(at(1000))
	if r.X() != 100 {
		t.Errorf("x at 1000ms = %v, want 100", r.X())
	}
	if a.Playing() {
		t.Error("still playing at exactly the duration")
	}
	if after != 1 {
		t.Errorf("after calls = %d, want 1", after)
	}

	a.Update(at(2000))
	if after != 1 || before != 1 {
		t.Errorf("stopped animation ran callbacks: before = %d, after = %d", before, after)
	}
}

func TestPropertyAnimationEasing(t *testing.T) {
	r := NewRect()
	a := MustPropertyAnimation(r, "x", 0, 100, time.Second).SetEasing(ease.InQuad)
	a.Start()
	a.Update(at(0))
	a.Update(at(500))
	if !approx(r.X(), 25) {
		t.Errorf("InQuad x at half time = %v, want 25", r.X())
	}
}

func TestPropertyAnimationLoopForeverAutoReverse(t *testing.T) {
	r := NewRect()
	a := MustPropertyAnimation(r, "x", 0, 100, time.Second).SetLoop(-1).SetAutoReverse(true)
	a.Start()

	a.Update(at(0))
	a.Update(at(1000))
	if r.X() != 100 || a.Forward() {
		t.Fatalf("after first cycle: x = %v, forward = %v, want 100, false", r.X(), a.Forward())
	}
	if !a.Playing() {
		t.Fatal("infinite loop stopped")
	}

	a.Update(at(1000))
	a.Update(at(1500))
	if !approx(r.X(), 50) {
		t.Errorf("reverse x at half time = %v, want 50", r.X())
	}
	a.Update(at(2000))
	if r.X() != 0 || !a.Forward() {
		t.Errorf("after second cycle: x = %v, forward = %v, want 0, true", r.X(), a.Forward())
	}

	for i := 2; i < 10; i++ {
		a.Update(at(i * 1000))
		a.Update(at((i + 1) * 1000))
	}
	if !a.Playing() {
		t.Error("infinite loop stopped after 10 cycles")
	}
}

func TestPropertyAnimationLoopCount(t *testing.T) {
	tests := []struct {
		name   string
		loop   int
		cycles int
	}{
		{"once", 0, 1},
		{"two extra", 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect()
			var cycles int
			a := MustPropertyAnimation(r, "y", 0, 10, 100*time.Millisecond).
				SetLoop(tt.loop).
				OnAfter(func() { cycles++ })
			a.Start()
			now := 0
			for i := 0; i < 20 && a.Playing(); i++ {
				a.Update(at(now))
				now += 100
				a.Update(at(now))
			}
			if cycles != tt.cycles {
				t.Errorf("cycles = %d, want %d", cycles, tt.cycles)
			}
			if a.Playing() {
				t.Error("still playing")
			}
		})
	}
}

func TestPropertyAnimationRestartResetsLoops(t *testing.T) {
	a := MustPropertyAnimation(NewRect(), "x", 0, 1, 100*time.Millisecond).SetLoop(1)
	var cycles int
	a.OnAfter(func() { cycles++ })
	for run := 0; run < 2; run++ {
		a.Start()
		now := run * 1000
		for i := 0; i < 5 && a.Playing(); i++ {
			a.Update(at(now))
			now += 100
			a.Update(at(now))
		}
	}
	if cycles != 4 {
		t.Errorf("cycles over two runs = %d, want 4", cycles)
	}
}

func TestPropertyAnimationStopAndToggle(t *testing.T) {
	r := NewRect()
	a := MustPropertyAnimation(r, "x", 0, 100, time.Second)
	a.Start()
	a.Update(at(0))
	a.Update(at(200))
	a.Stop()
	a.Update(at(600))
	if !approx(r.X(), 20) {
		t.Errorf("x after Stop = %v, want 20", r.X())
	}

	a.Toggle()
	if !a.Playing() {
		t.Fatal("Toggle did not restart")
	}
	a.Update(at(1000))
	a.Update(at(1100))
	if !approx(r.X(), 10) {
		t.Errorf("x after restart = %v, want 10", r.X())
	}
	a.Toggle()
	if a.Playing() {
		t.Error("Toggle did not stop")
	}
}

func TestNewPropertyAnimationErrors(t *testing.T) {
	if _, err := NewPropertyAnimation(nil, "x", 0, 1, time.Second); !errors.Is(err, ErrNilTarget) {
		t.Errorf("nil target err = %v, want ErrNilTarget", err)
	}
	if _, err := NewPropertyAnimation(NewRect(), "bogus", 0, 1, time.Second); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("unknown property err = %v, want ErrUnknownProperty", err)
	}
	if _, err := NewPropertyAnimation(42, "x", 0, 1, time.Second); err == nil {
		t.Error("expected error for a non-animatable target")
	}
}

func TestMustPropertyAnimationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustPropertyAnimation(NewRect(), "bogus", 0, 1, time.Second)
}

type styleRecorder struct {
	name, value string
}

func (s *styleRecorder) SetStyle(name, value string) { s.name, s.value = name, value }

func TestPropertyAnimationStyleTarget(t *testing.T) {
	el := &styleRecorder{}
	a := MustPropertyAnimation(el, "left", 0, 30, time.Second)
	a.Start()
	a.Update(at(0))
	a.Update(at(1000))
	if el.name != "left" || el.value != "30px" {
		t.Errorf("style = %s: %s, want left: 30px", el.name, el.value)
	}
}

func TestEasingLookup(t *testing.T) {
	if _, ok := Easing("outCubic"); !ok {
		t.Error("outCubic not found")
	}
	if _, ok := Easing("nope"); ok {
		t.Error("unknown easing found")
	}
}

func TestSequentialAnimationExclusive(t *testing.T) {
	r1, r2 := NewRect(), NewRect()
	a := MustPropertyAnimation(r1, "x", 0, 10, time.Second)
	b := MustPropertyAnimation(r2, "x", 0, 10, time.Second)
	var after int
	seq := NewSequentialAnimation(a, b).OnAfter(func() { after++ })

	seq.Start()
	seq.Update(at(0))
	if !a.Playing() || b.Playing() {
		t.Fatalf("first phase: a = %v, b = %v, want true, false", a.Playing(), b.Playing())
	}
	seq.Update(at(500))
	if r2.X() != 0 {
		t.Errorf("second child moved during first phase: %v", r2.X())
	}

	seq.Update(at(1000))
	if a.Playing() || !b.Playing() || seq.Index() != 1 {
		t.Fatalf("second phase: a = %v, b = %v, index = %d", a.Playing(), b.Playing(), seq.Index())
	}
	seq.Update(at(1000))
	seq.Update(at(2000))
	if seq.Playing() {
		t.Error("sequence still playing")
	}
	if r1.X() != 10 || r2.X() != 10 {
		t.Errorf("end values = %v, %v, want 10, 10", r1.X(), r2.X())
	}
	seq.Update(at(3000))
	if after != 1 {
		t.Errorf("after calls = %d, want 1", after)
	}
}

func TestParallelAnimation(t *testing.T) {
	r1, r2 := NewRect(), NewRect()
	short := MustPropertyAnimation(r1, "x", 0, 10, 500*time.Millisecond)
	long := MustPropertyAnimation(r2, "x", 0, 10, time.Second)
	var after int
	p := NewParallelAnimation(short, long).OnAfter(func() { after++ })

	p.Start()
	p.Update(at(0))
	p.Update(at(500))
	if short.Playing() || !long.Playing() || !p.Playing() {
		t.Fatalf("short = %v, long = %v, group = %v", short.Playing(), long.Playing(), p.Playing())
	}
	p.Update(at(1000))
	if p.Playing() || after != 1 {
		t.Errorf("playing = %v, after = %d, want false, 1", p.Playing(), after)
	}
}

func TestCallbackAnimation(t *testing.T) {
	var calls int
	c := NewCallbackAnimation(func(time.Time) { calls++ })
	c.Update(at(0))
	c.Start()
	c.Update(at(1))
	c.Update(at(2))
	c.Toggle()
	c.Update(at(3))
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
