package amino

import (
	"math"
	"time"
)

// EventType names a pointer event dispatched by a Surface.
type EventType string

const (
	EventPress        EventType = "press"
	EventRelease      EventType = "release"
	EventClick        EventType = "click"
	EventDrag         EventType = "drag"
	EventMomentumDrag EventType = "momentumdrag"
)

const (
	// momentumDecay is applied to the release velocity every frame.
	momentumDecay = 0.9
	// momentumMinSpeed is the speed, in surface units per event, below which
	// momentum stops.
	momentumMinSpeed = 0.5
)

// Event is delivered to listeners. Point is in surface coordinates, after
// the host offset and auto-scale are undone. Target is the node under the
// pointer, or the Surface when no node was hit. DX and DY carry the pointer
// velocity for drag and momentumdrag events.
type Event struct {
	Type    EventType
	Point   Point
	Target  Invalidator
	Surface *Surface
	DX, DY  float64
}

// EventSink receives every event a Surface dispatches, after its listeners.
type EventSink interface {
	EmitEvent(Event)
}

type listener struct {
	id      uint32
	typ     EventType
	target  Invalidator
	fn      func(Event)
	removed bool
}

type listenerTable struct {
	nextID uint32
	list   []*listener
}

// CallbackHandle identifies a registered listener.
type CallbackHandle struct {
	id    uint32
	table *listenerTable
}

// Remove unregisters the listener. It is safe to call from inside a
// listener, including the one being removed, and more than once.
func (h CallbackHandle) Remove() {
	if h.table == nil {
		return
	}
	l := h.table.list
	for i, e := range l {
		if e.id == h.id {
			e.removed = true
			copy(l[i:], l[i+1:])
			l[len(l)-1] = nil
			h.table.list = l[:len(l)-1]
			return
		}
	}
}

func (t *listenerTable) add(typ EventType, target Invalidator, fn func(Event)) CallbackHandle {
	t.nextID++
	t.list = append(t.list, &listener{id: t.nextID, typ: typ, target: target, fn: fn})
	return CallbackHandle{id: t.nextID, table: t}
}

// has reports whether any listener is registered for typ.
func (t *listenerTable) has(typ EventType) bool {
	for _, l := range t.list {
		if l.typ == typ {
			return true
		}
	}
	return false
}

// On registers fn for events of typ whose target is exactly target. Pass the
// Surface as target to receive events that hit no node.
func (s *Surface) On(typ EventType, target Invalidator, fn func(Event)) CallbackHandle {
	return s.listeners.add(typ, target, fn)
}

func (s *Surface) OnClick(target Invalidator, fn func(Event)) CallbackHandle {
	return s.On(EventClick, target, fn)
}

func (s *Surface) OnPress(target Invalidator, fn func(Event)) CallbackHandle {
	return s.On(EventPress, target, fn)
}

func (s *Surface) OnRelease(target Invalidator, fn func(Event)) CallbackHandle {
	return s.On(EventRelease, target, fn)
}

func (s *Surface) OnDrag(target Invalidator, fn func(Event)) CallbackHandle {
	return s.On(EventDrag, target, fn)
}

// OnMomentumDrag registers fn for momentumdrag events. They are sent to the
// node pressed at the start of a drag, while dragging and then with decaying
// velocity after release.
func (s *Surface) OnMomentumDrag(target Invalidator, fn func(Event)) CallbackHandle {
	return s.On(EventMomentumDrag, target, fn)
}

// Dispatch calls every listener registered for (e.Type, e.Target), then the
// event sink. Listeners added during dispatch are not called for e.
func (s *Surface) Dispatch(e Event) {
	e.Surface = s
	snapshot := append([]*listener(nil), s.listeners.list...)
	for _, l := range snapshot {
		if l.removed || l.typ != e.Type || l.target != e.Target {
			continue
		}
		l.fn(e)
	}
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}

// pointerState is the shared mouse and touch state machine.
type pointerState struct {
	pressed bool
	target  Invalidator
	last    Point
	vx, vy  float64
}

// ToLocal converts page coordinates to surface coordinates.
func (s *Surface) ToLocal(pageX, pageY float64) Point {
	x, y := pageX-s.offsetX, pageY-s.offsetY
	if s.autoScale {
		if k := s.sceneScale(); k != 0 {
			x, y = x/k, y/k
		}
	}
	return Point{X: x, Y: y}
}

// FindNode returns the topmost visible node containing the surface point
// (x, y), or the Surface itself when none does.
func (s *Surface) FindNode(x, y float64) Invalidator {
	if n := findNode(s.nodes.nodes, x, y); n != nil {
		return n
	}
	return s
}

func findNode(nodes []Node, x, y float64) Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n == nil || !n.Visible() {
			continue
		}
		if c, ok := n.(Container); ok {
			cx, cy := c.ToChildCoords(x, y)
			if hit := findNode(c.Children(), cx, cy); hit != nil {
				return hit
			}
			continue
		}
		if n.Contains(x, y) {
			return n
		}
	}
	return nil
}

// PointerDown handles a mouse button or touch start at page coordinates.
func (s *Surface) PointerDown(pageX, pageY float64) {
	p := s.ToLocal(pageX, pageY)
	target := s.FindNode(p.X, p.Y)
	s.stopMomentum()
	s.Dispatch(Event{Type: EventPress, Point: p, Target: target})
	s.pointer = pointerState{pressed: true, target: target, last: p}
}

// PointerMove handles pointer motion. Without a prior PointerDown it does
// nothing.
func (s *Surface) PointerMove(pageX, pageY float64) {
	if !s.pointer.pressed {
		return
	}
	p := s.ToLocal(pageX, pageY)
	s.pointer.vx = p.X - s.pointer.last.X
	s.pointer.vy = p.Y - s.pointer.last.Y
	s.pointer.last = p
	e := Event{Point: p, DX: s.pointer.vx, DY: s.pointer.vy}

	e.Type, e.Target = EventDrag, s.FindNode(p.X, p.Y)
	s.Dispatch(e)
	e.Type, e.Target = EventMomentumDrag, s.pointer.target
	s.Dispatch(e)
}

// PointerUp handles a button release or touch end: release, then click, to
// the node under the pointer.
func (s *Surface) PointerUp(pageX, pageY float64) {
	p := s.ToLocal(pageX, pageY)
	target := s.FindNode(p.X, p.Y)
	s.Dispatch(Event{Type: EventRelease, Point: p, Target: target})
	s.Dispatch(Event{Type: EventClick, Point: p, Target: target})

	st := s.pointer
	s.pointer = pointerState{last: p}
	if st.pressed && math.Hypot(st.vx, st.vy) >= momentumMinSpeed && s.listeners.has(EventMomentumDrag) {
		s.startMomentum(st.target, p, st.vx, st.vy)
	}
}

// PointerCancel drops the pressed state without dispatching.
func (s *Surface) PointerCancel() {
	s.pointer.pressed = false
	s.pointer.vx, s.pointer.vy = 0, 0
}

// Pressed reports whether a pointer is down.
func (s *Surface) Pressed() bool { return s.pointer.pressed }

func (s *Surface) startMomentum(target Invalidator, at Point, vx, vy float64) {
	if s.engine == nil || target == nil {
		return
	}
	s.stopMomentum()
	var anim *CallbackAnimation
	anim = NewCallbackAnimation(func(time.Time) {
		vx *= momentumDecay
		vy *= momentumDecay
		if math.Hypot(vx, vy) < momentumMinSpeed {
			s.stopMomentum()
			return
		}
		at.X += vx
		at.Y += vy
		s.Dispatch(Event{Type: EventMomentumDrag, Point: at, Target: target, DX: vx, DY: vy})
	})
	s.momentum = anim
	s.engine.AddAnimation(anim)
	anim.Start()
}

func (s *Surface) stopMomentum() {
	if s.momentum == nil {
		return
	}
	s.momentum.Stop()
	if s.engine != nil {
		s.engine.RemoveAnimation(s.momentum)
	}
	s.momentum = nil
}
