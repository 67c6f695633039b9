package amino

import (
	"testing"
)

func TestCircleContainsBoundingSquare(t *testing.T) {
	c := NewCircle().Set(0, 0, 10)
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"centre", 0, 0, true},
		{"square corner", 9, 9, true},
		{"edge", 10, 0, true},
		{"outside", 11, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestGroupToChildCoords(t *testing.T) {
	g := NewGroup().SetPosition(30, -5)
	x, y := g.ToChildCoords(40, 5)
	if x != 10 || y != 10 {
		t.Errorf("ToChildCoords = (%v, %v), want (10, 10)", x, y)
	}
}

func TestFindNode(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 200, 100)
	back := NewRect().Set(0, 0, 50, 50).SetName("back")
	front := NewRect().Set(25, 25, 50, 50).SetName("front")
	hidden := NewRect().Set(0, 0, 200, 100).SetVisible(false)
	inGroup := NewRect().Set(0, 0, 10, 10).SetName("inGroup")
	s.Add(hidden, back, front, NewGroup(inGroup).SetPosition(150, 50))

	tests := []struct {
		name string
		x, y float64
		want Invalidator
	}{
		{"front wins overlap", 30, 30, front},
		{"back only", 10, 10, back},
		{"translated group child", 155, 55, inGroup},
		{"miss falls back to surface", 120, 10, s},
		{"invisible skipped", 190, 90, s},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.FindNode(tt.x, tt.y); got != tt.want {
				t.Errorf("FindNode(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFindNodeDescendsIntoEffects(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 100, 100)
	r := NewRect().Set(10, 10, 20, 20)
	s.Add(NewBlur(r))
	if got := s.FindNode(15, 15); got != Invalidator(r) {
		t.Errorf("FindNode = %v, want the blurred rect", got)
	}
}

func TestToLocal(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 100, 50)
	s.SetOffset(10, 5)
	s.SetClientWidth(200)
	if got := s.ToLocal(30, 25); got != (Point{X: 10, Y: 10}) {
		t.Errorf("ToLocal = %v, want {10 10}", got)
	}
}

func TestPointerEventOrder(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 100, 100)
	r := NewRect().Set(0, 0, 50, 50)
	s.Add(r)

	var got []EventType
	record := func(ev Event) { got = append(got, ev.Type) }
	for _, typ := range []EventType{EventPress, EventDrag, EventRelease, EventClick} {
		s.On(typ, r, record)
	}

	s.PointerMove(10, 10) // not pressed: ignored
	s.PointerDown(10, 10)
	if !s.Pressed() {
		t.Fatal("not pressed after PointerDown")
	}
	s.PointerMove(12, 10)
	s.PointerUp(12, 10)

	want := []EventType{EventPress, EventDrag, EventRelease, EventClick}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if s.Pressed() {
		t.Error("still pressed after PointerUp")
	}
}

func TestPointerCancel(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 100, 100)
	var drags int
	s.OnDrag(s, func(Event) { drags++ })
	s.PointerDown(10, 10)
	s.PointerCancel()
	s.PointerMove(20, 20)
	if drags != 0 {
		t.Errorf("drags after cancel = %d, want 0", drags)
	}
}

func TestDispatchEventFields(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 100, 100)
	r := NewRect().Set(0, 0, 50, 50)
	s.Add(r)

	var got Event
	s.OnDrag(r, func(ev Event) { got = ev })
	s.PointerDown(10, 10)
	s.PointerMove(14, 7)
	if got.Target != Invalidator(r) || got.Surface != s {
		t.Errorf("target = %v, surface = %v", got.Target, got.Surface)
	}
	if got.Point != (Point{X: 14, Y: 7}) || got.DX != 4 || got.DY != -3 {
		t.Errorf("event = %+v, want point {14 7} and velocity (4, -3)", got)
	}
}

func TestListenerTargetsMustMatch(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 100, 100)
	a := NewRect().Set(0, 0, 10, 10)
	b := NewRect().Set(50, 50, 10, 10)
	s.Add(a, b)

	var aClicks, surfaceClicks int
	s.OnClick(a, func(Event) { aClicks++ })
	s.OnClick(s, func(Event) { surfaceClicks++ })

	s.PointerDown(55, 55)
	s.PointerUp(55, 55)
	s.PointerDown(90, 90)
	s.PointerUp(90, 90)
	if aClicks != 0 || surfaceClicks != 1 {
		t.Errorf("clicks: a = %d, surface = %d, want 0, 1", aClicks, surfaceClicks)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 100, 100)

	var first, second, third int
	var h1, h2 CallbackHandle
	h1 = s.OnClick(s, func(Event) {
		first++
		h1.Remove()
		h2.Remove()
	})
	h2 = s.OnClick(s, func(Event) { second++ })
	s.OnClick(s, func(Event) { third++ })

	for i := 0; i < 2; i++ {
		s.PointerDown(1, 1)
		s.PointerUp(1, 1)
	}
	if first != 1 || second != 0 || third != 2 {
		t.Errorf("calls = %d, %d, %d, want 1, 0, 2", first, second, third)
	}
	h1.Remove() // second removal is a no-op
	CallbackHandle{}.Remove()
}

type recordingSink struct {
	events []Event
}

func (r *recordingSink) EmitEvent(e Event) { r.events = append(r.events, e) }

func TestEventSink(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 100, 100)
	sink := &recordingSink{}
	s.SetEventSink(sink)
	s.PointerDown(1, 1)
	s.PointerUp(1, 1)
	if len(sink.events) != 3 {
		t.Fatalf("sink events = %d, want 3", len(sink.events))
	}
	if sink.events[2].Type != EventClick || sink.events[2].Surface != s {
		t.Errorf("last event = %+v", sink.events[2])
	}
}

func TestMomentumDrag(t *testing.T) {
	e, sched, _ := newTestEngine(t, false)
	s := e.AddSurface("main", 200, 200)
	r := NewRect().Set(0, 0, 200, 200)
	s.Add(r)

	var speeds []float64
	s.OnMomentumDrag(r, func(ev Event) { speeds = append(speeds, ev.DX) })

	s.PointerDown(10, 10)
	s.PointerMove(20, 10)
	s.PointerUp(20, 10)
	for i := 0; i < 100 && sched.Pending() > 0; i++ {
		sched.RunFrame()
	}

	if len(speeds) < 3 {
		t.Fatalf("momentum events = %d, want several", len(speeds))
	}
	if speeds[0] != 10 {
		t.Errorf("drag velocity = %v, want 10", speeds[0])
	}
	for i := 1; i < len(speeds); i++ {
		if speeds[i] >= speeds[i-1] {
			t.Fatalf("speed did not decay at %d: %v", i, speeds)
		}
	}
	if last := speeds[len(speeds)-1]; last < momentumMinSpeed {
		t.Errorf("last speed = %v, want >= %v", last, momentumMinSpeed)
	}
	if len(e.Animations()) != 0 {
		t.Errorf("momentum animation not removed: %d left", len(e.Animations()))
	}
	if sched.Pending() != 0 {
		t.Error("frames still pending after momentum stopped")
	}
}
