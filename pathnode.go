package amino

// PathNode draws a Path. Open paths are neither filled nor stroked.
type PathNode struct {
	shapeBase
	path *Path
}

// NewPathNode wraps p, which may be nil until SetPath is called.
func NewPathNode(p *Path) *PathNode {
	return &PathNode{shapeBase: newShapeBase(), path: p}
}

func (n *PathNode) Kind() Kind  { return KindPath }
func (n *PathNode) Path() *Path { return n.path }

func (n *PathNode) SetPath(p *Path) *PathNode   { n.path = p; n.SetDirty(); return n }
func (n *PathNode) SetFill(p Paint) *PathNode   { n.fill = p; n.SetDirty(); return n }
func (n *PathNode) SetStroke(p Paint) *PathNode { n.stroke = p; n.SetDirty(); return n }
func (n *PathNode) SetStrokeWidth(w float64) *PathNode {
	n.strokeWidth = max(w, 0)
	n.SetDirty()
	return n
}
func (n *PathNode) SetOpacity(o float64) *PathNode { n.opacity = o; n.SetDirty(); return n }
func (n *PathNode) SetVisible(v bool) *PathNode    { n.visible = v; n.SetDirty(); return n }
func (n *PathNode) SetName(name string) *PathNode  { n.name = name; return n }

// Contains always reports false.
func (n *PathNode) Contains(x, y float64) bool { return false }

func (n *PathNode) Bounds() Rect {
	if n.path == nil {
		return Rect{}
	}
	b := n.path.Bounds()
	if n.strokeWidth > 0 {
		w := n.strokeWidth / 2
		b = Rect{X: b.X - w, Y: b.Y - w, Width: b.Width + 2*w, Height: b.Height + 2*w}
	}
	return b
}

func (n *PathNode) Paint(c *Canvas) {
	if n.path == nil || !n.path.Closed() {
		return
	}
	n.paintShape(c, func(c *Canvas) {
		n.path.replay(c)
		c.Fill()
	}, func(c *Canvas) {
		n.path.replay(c)
		c.Stroke()
	})
}

// Property exposes opacity and strokeWidth.
func (n *PathNode) Property(name string) (Setter, bool) {
	return n.shapeProperty(n, name)
}
