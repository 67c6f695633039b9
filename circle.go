package amino

// CircleNode is a circle centered on (x, y).
type CircleNode struct {
	shapeBase
	x, y, radius float64
}

// NewCircle returns a circle of radius 10 at the origin.
func NewCircle() *CircleNode {
	return &CircleNode{shapeBase: newShapeBase(), radius: 10}
}

func (n *CircleNode) Kind() Kind { return KindCircle }

func (n *CircleNode) X() float64      { return n.x }
func (n *CircleNode) Y() float64      { return n.y }
func (n *CircleNode) Radius() float64 { return n.radius }

// Set assigns center and radius at once.
func (n *CircleNode) Set(x, y, radius float64) *CircleNode {
	n.x, n.y, n.radius = x, y, radius
	n.SetDirty()
	return n
}

func (n *CircleNode) SetX(x float64) *CircleNode      { n.x = x; n.SetDirty(); return n }
func (n *CircleNode) SetY(y float64) *CircleNode      { n.y = y; n.SetDirty(); return n }
func (n *CircleNode) SetRadius(r float64) *CircleNode { n.radius = r; n.SetDirty(); return n }

func (n *CircleNode) SetFill(p Paint) *CircleNode   { n.fill = p; n.SetDirty(); return n }
func (n *CircleNode) SetStroke(p Paint) *CircleNode { n.stroke = p; n.SetDirty(); return n }
func (n *CircleNode) SetStrokeWidth(w float64) *CircleNode {
	n.strokeWidth = max(w, 0)
	n.SetDirty()
	return n
}
func (n *CircleNode) SetOpacity(o float64) *CircleNode { n.opacity = o; n.SetDirty(); return n }
func (n *CircleNode) SetVisible(v bool) *CircleNode    { n.visible = v; n.SetDirty(); return n }
func (n *CircleNode) SetName(name string) *CircleNode  { n.name = name; return n }

// Contains tests the enclosing square, not the disc: corners of the square
// report true.
func (n *CircleNode) Contains(x, y float64) bool {
	return n.Bounds().Contains(x, y)
}

func (n *CircleNode) Bounds() Rect {
	return Rect{X: n.x - n.radius, Y: n.y - n.radius, Width: 2 * n.radius, Height: 2 * n.radius}
}

func (n *CircleNode) Paint(c *Canvas) {
	n.paintShape(c, func(c *Canvas) {
		c.Circle(n.x, n.y, n.radius)
		c.Fill()
	}, func(c *Canvas) {
		c.Circle(n.x, n.y, n.radius)
		c.Stroke()
	})
}

// Property exposes x, y, radius, opacity and strokeWidth.
func (n *CircleNode) Property(name string) (Setter, bool) {
	switch name {
	case "x":
		return func(v float64) { n.SetX(v) }, true
	case "y":
		return func(v float64) { n.SetY(v) }, true
	case "radius":
		return func(v float64) { n.SetRadius(v) }, true
	}
	return n.shapeProperty(n, name)
}
