package ebitenhost

import "github.com/phanxgames/amino"

// pointerTracker turns polled button state into press, move and release
// calls on a surface. Positions are raster pixels.
type pointerTracker struct {
	down bool
	x, y float64
}

func (p *pointerTracker) update(s *amino.Surface, x, y float64, pressed bool) {
	px, py := s.RasterToPage(x, y)
	switch {
	case pressed && !p.down:
		s.PointerDown(px, py)
	case pressed && (x != p.x || y != p.y):
		s.PointerMove(px, py)
	case !pressed && p.down:
		s.PointerUp(px, py)
	}
	p.down = pressed
	p.x, p.y = x, y
}
