package amino

type pointerAction uint8

const (
	actionPress pointerAction = iota
	actionMove
	actionRelease
)

// syntheticPointerEvent is one queued injected pointer event. Coordinates
// are raster pixels, matching what a screenshot shows.
type syntheticPointerEvent struct {
	x, y   float64
	action pointerAction
}

func (s *Surface) inject(e syntheticPointerEvent) {
	s.injectQueue = append(s.injectQueue, e)
	s.requestFrame()
}

// InjectPress queues a press at raster coordinates (x, y). Injected events
// are consumed one per frame.
func (s *Surface) InjectPress(x, y float64) {
	s.inject(syntheticPointerEvent{x: x, y: y, action: actionPress})
}

// InjectMove queues a move with the pointer held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (s *Surface) InjectMove(x, y float64) {
	s.inject(syntheticPointerEvent{x: x, y: y, action: actionMove})
}

// InjectRelease queues a release at raster coordinates (x, y).
func (s *Surface) InjectRelease(x, y float64) {
	s.inject(syntheticPointerEvent{x: x, y: y, action: actionRelease})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Surface) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 evenly spaced moves
// and a release at (toX, toY). The sequence consumes frames frames; the
// minimum is 2.
func (s *Surface) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// processInjectedInput feeds the oldest queued event through the pointer
// state machine. Reports whether an event was consumed.
func (s *Surface) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	px, py := s.RasterToPage(evt.x, evt.y)
	switch evt.action {
	case actionPress:
		s.PointerDown(px, py)
	case actionMove:
		s.PointerMove(px, py)
	case actionRelease:
		s.PointerUp(px, py)
	}
	return true
}
