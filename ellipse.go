package amino

// kappa places cubic control points so four curves approximate a quarter
// ellipse each.
const kappa = 0.5522848

// EllipseNode is an ellipse centered on (x, y) with full width w and height h.
type EllipseNode struct {
	shapeBase
	x, y, w, h float64
}

// NewEllipse returns a 20x10 ellipse at the origin.
func NewEllipse() *EllipseNode {
	return &EllipseNode{shapeBase: newShapeBase(), w: 20, h: 10}
}

func (n *EllipseNode) Kind() Kind { return KindEllipse }

func (n *EllipseNode) X() float64      { return n.x }
func (n *EllipseNode) Y() float64      { return n.y }
func (n *EllipseNode) Width() float64  { return n.w }
func (n *EllipseNode) Height() float64 { return n.h }

// Set assigns center and size at once.
func (n *EllipseNode) Set(x, y, w, h float64) *EllipseNode {
	n.x, n.y, n.w, n.h = x, y, w, h
	n.SetDirty()
	return n
}

func (n *EllipseNode) SetX(x float64) *EllipseNode      { n.x = x; n.SetDirty(); return n }
func (n *EllipseNode) SetY(y float64) *EllipseNode      { n.y = y; n.SetDirty(); return n }
func (n *EllipseNode) SetWidth(w float64) *EllipseNode  { n.w = w; n.SetDirty(); return n }
func (n *EllipseNode) SetHeight(h float64) *EllipseNode { n.h = h; n.SetDirty(); return n }

func (n *EllipseNode) SetFill(p Paint) *EllipseNode   { n.fill = p; n.SetDirty(); return n }
func (n *EllipseNode) SetStroke(p Paint) *EllipseNode { n.stroke = p; n.SetDirty(); return n }
func (n *EllipseNode) SetStrokeWidth(w float64) *EllipseNode {
	n.strokeWidth = max(w, 0)
	n.SetDirty()
	return n
}
func (n *EllipseNode) SetOpacity(o float64) *EllipseNode { n.opacity = o; n.SetDirty(); return n }
func (n *EllipseNode) SetVisible(v bool) *EllipseNode    { n.visible = v; n.SetDirty(); return n }
func (n *EllipseNode) SetName(name string) *EllipseNode  { n.name = name; return n }

// Contains always reports false.
func (n *EllipseNode) Contains(x, y float64) bool { return false }

func (n *EllipseNode) Bounds() Rect {
	return Rect{X: n.x - n.w/2, Y: n.y - n.h/2, Width: n.w, Height: n.h}
}

func (n *EllipseNode) Paint(c *Canvas) {
	n.paintShape(c, func(c *Canvas) {
		n.outline(c)
		c.Fill()
	}, func(c *Canvas) {
		n.outline(c)
		c.Stroke()
	})
}

func (n *EllipseNode) outline(c *Canvas) {
	rx, ry := n.w/2, n.h/2
	ox, oy := rx*kappa, ry*kappa
	x0, y0 := n.x-rx, n.y-ry
	x1, y1 := n.x+rx, n.y+ry
	c.MoveTo(x0, n.y)
	c.CurveTo(x0, n.y-oy, n.x-ox, y0, n.x, y0)
	c.CurveTo(n.x+ox, y0, x1, n.y-oy, x1, n.y)
	c.CurveTo(x1, n.y+oy, n.x+ox, y1, n.x, y1)
	c.CurveTo(n.x-ox, y1, x0, n.y+oy, x0, n.y)
	c.ClosePath()
}

// Property exposes x, y, width, height, opacity and strokeWidth.
func (n *EllipseNode) Property(name string) (Setter, bool) {
	switch name {
	case "x":
		return func(v float64) { n.SetX(v) }, true
	case "y":
		return func(v float64) { n.SetY(v) }, true
	case "width", "w":
		return func(v float64) { n.SetWidth(v) }, true
	case "height", "h":
		return func(v float64) { n.SetHeight(v) }, true
	}
	return n.shapeProperty(n, name)
}
