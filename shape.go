package amino

// Default shape paints.
var (
	defaultFill   Paint = Color{0.5, 0.5, 0.5, 1}
	defaultStroke Paint = Black
)

// shapeBase holds the fill and stroke state shared by every shape.
type shapeBase struct {
	nodeBase
	fill        Paint
	stroke      Paint
	strokeWidth float64
	opacity     float64
}

func newShapeBase() shapeBase {
	return shapeBase{
		nodeBase: newNodeBase(),
		fill:     defaultFill,
		stroke:   defaultStroke,
		opacity:  1,
	}
}

// Fill returns the fill paint.
func (s *shapeBase) Fill() Paint { return s.fill }

// Stroke returns the stroke paint.
func (s *shapeBase) Stroke() Paint { return s.stroke }

// StrokeWidth returns the stroke width. Zero disables stroking.
func (s *shapeBase) StrokeWidth() float64 { return s.strokeWidth }

// Opacity returns the fill opacity.
func (s *shapeBase) Opacity() float64 { return s.opacity }

// paintShape runs the common shape sequence: fill with opacity scoped to
// the fill, then stroke when the width is positive.
func (s *shapeBase) paintShape(c *Canvas, fill, stroke func(c *Canvas)) {
	if !s.visible {
		return
	}
	c.Save()
	defer c.Restore()

	c.SetFill(s.fill)
	if s.opacity < 1 {
		a := c.Alpha()
		c.SetAlpha(a * s.opacity)
		fill(c)
		c.SetAlpha(a)
	} else {
		fill(c)
	}
	if s.strokeWidth > 0 {
		c.SetStroke(s.stroke)
		c.SetLineWidth(s.strokeWidth)
		stroke(c)
	}
}

// shapeProperty resolves the properties every shape shares.
func (s *shapeBase) shapeProperty(self Invalidator, name string) (Setter, bool) {
	switch name {
	case "opacity":
		return func(v float64) { s.opacity = v; self.SetDirty() }, true
	case "strokeWidth":
		return func(v float64) { s.strokeWidth = max(v, 0); self.SetDirty() }, true
	}
	return nil, false
}
