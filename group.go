package amino

// nodeList is an ordered, exclusively owned list of nodes. Index 0 paints
// first.
type nodeList struct {
	nodes []Node
}

func (l *nodeList) add(owner Invalidator, n Node) {
	attach(owner, n)
	l.nodes = append(l.nodes, n)
	if globalDebug {
		debugCheckChildCount(owner, len(l.nodes))
	}
}

func (l *nodeList) insert(owner Invalidator, n Node, index int) {
	if index < 0 || index > len(l.nodes) {
		panic("amino: child index out of range")
	}
	attach(owner, n)
	l.nodes = append(l.nodes, nil)
	copy(l.nodes[index+1:], l.nodes[index:])
	l.nodes[index] = n
}

func (l *nodeList) indexOf(n Node) int {
	for i, c := range l.nodes {
		if c == n {
			return i
		}
	}
	return -1
}

func (l *nodeList) remove(n Node) bool {
	i := l.indexOf(n)
	if i < 0 {
		return false
	}
	l.removeAt(i)
	return true
}

func (l *nodeList) removeAt(index int) Node {
	if index < 0 || index >= len(l.nodes) {
		panic("amino: child index out of range")
	}
	n := l.nodes[index]
	copy(l.nodes[index:], l.nodes[index+1:])
	l.nodes[len(l.nodes)-1] = nil
	l.nodes = l.nodes[:len(l.nodes)-1]
	detach(n)
	return n
}

func (l *nodeList) clear() {
	for _, n := range l.nodes {
		detach(n)
	}
	clear(l.nodes)
	l.nodes = l.nodes[:0]
}

func (l *nodeList) paint(c *Canvas) {
	for _, n := range l.nodes {
		if n.Visible() {
			n.Paint(c)
		}
	}
}

func (l *nodeList) bounds() Rect {
	var r Rect
	for _, n := range l.nodes {
		if n.Visible() {
			r = r.Union(n.Bounds())
		}
	}
	return r
}

// Group is an ordered container. Children are painted back to front,
// translated by (x, y) and faded by the group opacity.
type Group struct {
	nodeBase
	children nodeList
	x, y     float64
	opacity  float64
}

// NewGroup returns an empty group holding children.
func NewGroup(children ...Node) *Group {
	g := &Group{nodeBase: newNodeBase(), opacity: 1}
	for _, c := range children {
		g.children.add(g, c)
	}
	return g
}

func (g *Group) Kind() Kind { return KindGroup }

func (g *Group) X() float64       { return g.x }
func (g *Group) Y() float64       { return g.y }
func (g *Group) Opacity() float64 { return g.opacity }

func (g *Group) SetX(x float64) *Group           { g.x = x; g.SetDirty(); return g }
func (g *Group) SetY(y float64) *Group           { g.y = y; g.SetDirty(); return g }
func (g *Group) SetOpacity(o float64) *Group     { g.opacity = o; g.SetDirty(); return g }
func (g *Group) SetVisible(v bool) *Group        { g.visible = v; g.SetDirty(); return g }
func (g *Group) SetName(name string) *Group      { g.name = name; return g }
func (g *Group) SetPosition(x, y float64) *Group { g.x, g.y = x, y; g.SetDirty(); return g }

// Add appends nodes. Each must be detached; a node that already has a parent
// panics.
func (g *Group) Add(nodes ...Node) *Group {
	for _, n := range nodes {
		g.children.add(g, n)
	}
	g.SetDirty()
	return g
}

// AddAt inserts n at index.
func (g *Group) AddAt(n Node, index int) *Group {
	g.children.insert(g, n, index)
	g.SetDirty()
	return g
}

// Remove detaches n. Reports false if n is not a child.
func (g *Group) Remove(n Node) bool {
	if !g.children.remove(n) {
		return false
	}
	g.SetDirty()
	return true
}

// RemoveAt detaches and returns the child at index.
func (g *Group) RemoveAt(index int) Node {
	n := g.children.removeAt(index)
	g.SetDirty()
	return n
}

// Clear detaches every child.
func (g *Group) Clear() *Group {
	g.children.clear()
	g.SetDirty()
	return g
}

// Children returns the child list. The returned slice must not be modified.
func (g *Group) Children() []Node { return g.children.nodes }

// NumChildren returns the number of children.
func (g *Group) NumChildren() int { return len(g.children.nodes) }

// ChildAt returns the child at index.
func (g *Group) ChildAt(index int) Node { return g.children.nodes[index] }

// Find returns the first descendant named name, or nil.
func (g *Group) Find(name string) Node { return findIn(g.children.nodes, name) }

// Contains always reports false; hit testing descends into the children.
func (g *Group) Contains(x, y float64) bool { return false }

// ToChildCoords undoes the group translation.
func (g *Group) ToChildCoords(x, y float64) (float64, float64) {
	return x - g.x, y - g.y
}

// Bounds is the union of the visible children's bounds, translated.
func (g *Group) Bounds() Rect {
	return g.children.bounds().Translate(g.x, g.y)
}

func (g *Group) Paint(c *Canvas) {
	if !g.visible {
		return
	}
	c.Save()
	defer c.Restore()
	c.SetAlpha(c.Alpha() * g.opacity)
	c.Translate(g.x, g.y)
	g.children.paint(c)
}

// Property exposes x, y and opacity.
func (g *Group) Property(name string) (Setter, bool) {
	switch name {
	case "x":
		return func(v float64) { g.SetX(v) }, true
	case "y":
		return func(v float64) { g.SetY(v) }, true
	case "opacity":
		return func(v float64) { g.SetOpacity(v) }, true
	}
	return nil, false
}
