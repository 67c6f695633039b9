package amino

// RectNode is an axis-aligned rectangle with an optional uniform corner radius.
type RectNode struct {
	shapeBase
	x, y, w, h float64
	corner     float64
}

// NewRect returns a 10x10 rectangle at the origin.
func NewRect() *RectNode {
	return &RectNode{shapeBase: newShapeBase(), w: 10, h: 10}
}

func (r *RectNode) Kind() Kind { return KindRect }

func (r *RectNode) X() float64      { return r.x }
func (r *RectNode) Y() float64      { return r.y }
func (r *RectNode) Width() float64  { return r.w }
func (r *RectNode) Height() float64 { return r.h }
func (r *RectNode) Corner() float64 { return r.corner }

// Set assigns position and size at once.
func (r *RectNode) Set(x, y, w, h float64) *RectNode {
	r.x, r.y, r.w, r.h = x, y, w, h
	r.SetDirty()
	return r
}

func (r *RectNode) SetX(x float64) *RectNode      { r.x = x; r.SetDirty(); return r }
func (r *RectNode) SetY(y float64) *RectNode      { r.y = y; r.SetDirty(); return r }
func (r *RectNode) SetWidth(w float64) *RectNode  { r.w = w; r.SetDirty(); return r }
func (r *RectNode) SetHeight(h float64) *RectNode { r.h = h; r.SetDirty(); return r }

// SetCorner sets the corner radius. Zero draws square corners.
func (r *RectNode) SetCorner(c float64) *RectNode { r.corner = c; r.SetDirty(); return r }

func (r *RectNode) SetFill(p Paint) *RectNode   { r.fill = p; r.SetDirty(); return r }
func (r *RectNode) SetStroke(p Paint) *RectNode { r.stroke = p; r.SetDirty(); return r }
func (r *RectNode) SetStrokeWidth(w float64) *RectNode {
	r.strokeWidth = max(w, 0)
	r.SetDirty()
	return r
}
func (r *RectNode) SetOpacity(o float64) *RectNode { r.opacity = o; r.SetDirty(); return r }
func (r *RectNode) SetVisible(v bool) *RectNode    { r.visible = v; r.SetDirty(); return r }
func (r *RectNode) SetName(name string) *RectNode  { r.name = name; return r }

// Contains is an edge-inclusive box test.
func (r *RectNode) Contains(x, y float64) bool {
	return r.Bounds().Contains(x, y)
}

func (r *RectNode) Bounds() Rect { return Rect{X: r.x, Y: r.y, Width: r.w, Height: r.h} }

func (r *RectNode) Paint(c *Canvas) {
	r.paintShape(c, func(c *Canvas) {
		r.outline(c)
		c.Fill()
	}, func(c *Canvas) {
		r.outline(c)
		c.Stroke()
	})
}

// outline traces the rectangle, rounding each corner with a cubic whose
// control points sit halfway along the radius.
func (r *RectNode) outline(c *Canvas) {
	x, y, w, h, k := r.x, r.y, r.w, r.h, r.corner
	if k <= 0 {
		c.Rect(x, y, w, h)
		return
	}
	c.MoveTo(x+k, y)
	c.LineTo(x+w-k, y)
	c.CurveTo(x+w-k/2, y, x+w, y+k/2, x+w, y+k)
	c.LineTo(x+w, y+h-k)
	c.CurveTo(x+w, y+h-k/2, x+w-k/2, y+h, x+w-k, y+h)
	c.LineTo(x+k, y+h)
	c.CurveTo(x+k/2, y+h, x, y+h-k/2, x, y+h-k)
	c.LineTo(x, y+k)
	c.CurveTo(x, y+k/2, x+k/2, y, x+k, y)
	c.ClosePath()
}

// Property exposes x, y, width, height, corner, opacity and strokeWidth.
func (r *RectNode) Property(name string) (Setter, bool) {
	switch name {
	case "x":
		return func(v float64) { r.SetX(v) }, true
	case "y":
		return func(v float64) { r.SetY(v) }, true
	case "width", "w":
		return func(v float64) { r.SetWidth(v) }, true
	case "height", "h":
		return func(v float64) { r.SetHeight(v) }, true
	case "corner":
		return func(v float64) { r.SetCorner(v) }, true
	}
	return r.shapeProperty(r, name)
}
