package amino

import "math"

// Point is a 2D position in some node's coordinate space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Union returns the smallest rectangle containing both r and other.
// An empty operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Kind distinguishes the closed set of node variants.
type Kind uint8

const (
	KindRect                 Kind = iota // rectangle shape, optionally rounded
	KindCircle                           // circle shape
	KindEllipse                          // ellipse shape
	KindText                             // multi-line text shape
	KindPath                             // shape backed by a Path
	KindImage                            // image view
	KindGroup                            // ordered container with translation and opacity
	KindTransform                        // single-child affine container
	KindBuffer                           // cached child
	KindBlur                             // box blurred child
	KindShadow                           // child over a blurred silhouette
	KindSaturation                       // desaturated child
	KindBackgroundSaturation             // incrementally processed child
)

var kindNames = [...]string{
	KindRect:                 "rect",
	KindCircle:               "circle",
	KindEllipse:              "ellipse",
	KindText:                 "text",
	KindPath:                 "path",
	KindImage:                "image",
	KindGroup:                "group",
	KindTransform:            "transform",
	KindBuffer:               "buffer",
	KindBlur:                 "blur",
	KindShadow:               "shadow",
	KindSaturation:           "saturation",
	KindBackgroundSaturation: "backgroundsaturation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsShape reports whether nodes of this kind are drawn from fill and stroke paints.
func (k Kind) IsShape() bool {
	return k <= KindImage
}

// IsEffect reports whether nodes of this kind post-process a single child
// through pixel buffers.
func (k Kind) IsEffect() bool {
	return k >= KindBuffer
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
