package amino

import "math"

// SegmentKind identifies a path command.
type SegmentKind uint8

const (
	SegmentMoveTo  SegmentKind = iota + 1 // start a new subpath at (X, Y)
	SegmentLineTo                         // straight line to (X, Y)
	SegmentCloseTo                        // straight line back to the first point
	SegmentCurveTo                        // cubic bezier through (CX1, CY1), (CX2, CY2) to (X, Y)
)

// Segment is a single path command. Control points are only meaningful for
// SegmentCurveTo. A SegmentCloseTo carries no coordinates.
type Segment struct {
	Kind     SegmentKind
	X, Y     float64
	CX1, CY1 float64
	CX2, CY2 float64
}

// Path is an immutable sequence of segments. Build one with NewPathBuilder.
type Path struct {
	segments []Segment
	closed   bool
}

// PathBuilder accumulates segments for a Path.
type PathBuilder struct {
	segments []Segment
	closed   bool
}

// NewPathBuilder returns an empty builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{}
}

// MoveTo starts a subpath.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.segments = append(b.segments, Segment{Kind: SegmentMoveTo, X: x, Y: y})
	return b
}

// LineTo appends a straight line.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.segments = append(b.segments, Segment{Kind: SegmentLineTo, X: x, Y: y})
	return b
}

// CurveTo appends a cubic bezier.
func (b *PathBuilder) CurveTo(cx1, cy1, cx2, cy2, x, y float64) *PathBuilder {
	b.segments = append(b.segments, Segment{
		Kind: SegmentCurveTo, X: x, Y: y,
		CX1: cx1, CY1: cy1, CX2: cx2, CY2: cy2,
	})
	return b
}

// CloseTo closes the path. Only closed paths are filled or stroked by a PathNode.
func (b *PathBuilder) CloseTo() *PathBuilder {
	b.segments = append(b.segments, Segment{Kind: SegmentCloseTo})
	b.closed = true
	return b
}

// Build returns the immutable path. The builder may keep being used; later
// additions do not affect paths already built.
func (b *PathBuilder) Build() *Path {
	segs := make([]Segment, len(b.segments))
	copy(segs, b.segments)
	return &Path{segments: segs, closed: b.closed}
}

// Closed reports whether a CloseTo segment was appended.
func (p *Path) Closed() bool {
	return p.closed
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.segments)
}

// Segments returns a copy of the segments.
func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Bounds returns the box around every point of the path, control points
// included.
func (p *Path) Bounds() Rect {
	if len(p.segments) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	for _, s := range p.segments {
		switch s.Kind {
		case SegmentCloseTo:
			continue
		case SegmentCurveTo:
			grow(s.CX1, s.CY1)
			grow(s.CX2, s.CY2)
		}
		grow(s.X, s.Y)
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// PointAt samples the path at fraction t of its segment count. Every segment
// after the first covers an equal share of [0, 1). Values outside [0, 1) and
// samples landing on a MoveTo return the origin.
func (p *Path) PointAt(t float64) Point {
	if t >= 1 || t < 0 || len(p.segments) < 2 {
		return Point{}
	}
	pos := t * float64(len(p.segments)-1)
	idx := int(math.Floor(pos))
	f := pos - float64(idx)
	prev, seg := p.segments[idx], p.segments[idx+1]
	switch seg.Kind {
	case SegmentLineTo:
		return lerpPoint(prev.X, prev.Y, seg.X, seg.Y, f)
	case SegmentCurveTo:
		return bezierPoint(prev.X, prev.Y, seg.CX1, seg.CY1, seg.CX2, seg.CY2, seg.X, seg.Y, f)
	case SegmentCloseTo:
		first := p.segments[0]
		return lerpPoint(prev.X, prev.Y, first.X, first.Y, f)
	}
	return Point{}
}

// replay emits the path into the canvas' current path.
func (p *Path) replay(c *Canvas) {
	for _, s := range p.segments {
		switch s.Kind {
		case SegmentMoveTo:
			c.MoveTo(s.X, s.Y)
		case SegmentLineTo:
			c.LineTo(s.X, s.Y)
		case SegmentCurveTo:
			c.CurveTo(s.CX1, s.CY1, s.CX2, s.CY2, s.X, s.Y)
		case SegmentCloseTo:
			c.ClosePath()
		}
	}
}

func lerpPoint(x1, y1, x2, y2, f float64) Point {
	return Point{X: x1 + (x2-x1)*f, Y: y1 + (y2-y1)*f}
}

func bezierPoint(x1, y1, cx1, cy1, cx2, cy2, x2, y2, t float64) Point {
	u := 1 - t
	b1 := t * t * t
	b2 := 3 * t * t * u
	b3 := 3 * t * u * u
	b4 := u * u * u
	return Point{
		X: x2*b1 + cx2*b2 + cx1*b3 + x1*b4,
		Y: y2*b1 + cy2*b2 + cy1*b3 + y1*b4,
	}
}
