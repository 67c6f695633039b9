package amino

import "math"

// TransformNode applies translate, rotate and scale to a single child.
// Rotation and scale pivot around the anchor point. Angles are in degrees.
type TransformNode struct {
	nodeBase
	child            Node
	tx, ty           float64
	anchorX, anchorY float64
	rotation         float64
	scaleX, scaleY   float64
}

// NewTransform wraps child.
func NewTransform(child Node) *TransformNode {
	t := &TransformNode{nodeBase: newNodeBase(), scaleX: 1, scaleY: 1}
	t.SetChild(child)
	return t
}

func (t *TransformNode) Kind() Kind { return KindTransform }

func (t *TransformNode) Child() Node         { return t.child }
func (t *TransformNode) TranslateX() float64 { return t.tx }
func (t *TransformNode) TranslateY() float64 { return t.ty }
func (t *TransformNode) AnchorX() float64    { return t.anchorX }
func (t *TransformNode) AnchorY() float64    { return t.anchorY }
func (t *TransformNode) Rotate() float64     { return t.rotation }
func (t *TransformNode) ScaleX() float64     { return t.scaleX }
func (t *TransformNode) ScaleY() float64     { return t.scaleY }

// Children returns the child, or nil once it has been removed.
func (t *TransformNode) Children() []Node {
	if t.child == nil {
		return nil
	}
	return []Node{t.child}
}

// SetChild replaces the child. The previous child is detached.
func (t *TransformNode) SetChild(child Node) *TransformNode {
	if child == nil {
		panic("amino: cannot add nil child")
	}
	if t.child != nil {
		detach(t.child)
	}
	attach(t, child)
	t.child = child
	t.SetDirty()
	return t
}

// Remove detaches child when it is the current child. A transform without a
// child paints nothing until SetChild is called again.
func (t *TransformNode) Remove(child Node) bool {
	if t.child == nil || t.child != child {
		return false
	}
	detach(child)
	t.child = nil
	t.SetDirty()
	return true
}

func (t *TransformNode) SetTranslateX(v float64) *TransformNode { t.tx = v; t.SetDirty(); return t }
func (t *TransformNode) SetTranslateY(v float64) *TransformNode { t.ty = v; t.SetDirty(); return t }
func (t *TransformNode) SetAnchorX(v float64) *TransformNode    { t.anchorX = v; t.SetDirty(); return t }
func (t *TransformNode) SetAnchorY(v float64) *TransformNode    { t.anchorY = v; t.SetDirty(); return t }
func (t *TransformNode) SetScaleX(v float64) *TransformNode     { t.scaleX = v; t.SetDirty(); return t }
func (t *TransformNode) SetScaleY(v float64) *TransformNode     { t.scaleY = v; t.SetDirty(); return t }
func (t *TransformNode) SetVisible(v bool) *TransformNode       { t.visible = v; t.SetDirty(); return t }
func (t *TransformNode) SetName(name string) *TransformNode     { t.name = name; return t }

// SetRotate sets the rotation in degrees, normalized to [0, 360).
func (t *TransformNode) SetRotate(deg float64) *TransformNode {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	t.rotation = deg
	t.SetDirty()
	return t
}

// Contains always reports false; hit testing descends into the child.
func (t *TransformNode) Contains(x, y float64) bool { return false }

// ToChildCoords subtracts the translation only. Rotation and scale are not
// undone; use ToLocal for the exact inverse.
func (t *TransformNode) ToChildCoords(x, y float64) (float64, float64) {
	return x - t.tx, y - t.ty
}

// ToLocal maps a point in the transform's parent space to child space
// through the full inverse matrix.
func (t *TransformNode) ToLocal(x, y float64) (float64, float64) {
	return transformPoint(invertAffine(t.matrix()), x, y)
}

// matrix returns T(translate) * T(anchor) * R * S * T(-anchor) as
// [a, b, c, d, tx, ty].
func (t *TransformNode) matrix() [6]float64 {
	sin, cos := math.Sincos(t.rotation * math.Pi / 180)
	a := cos * t.scaleX
	b := sin * t.scaleX
	c := -sin * t.scaleY
	d := cos * t.scaleY
	ex := t.tx + t.anchorX - (a*t.anchorX + c*t.anchorY)
	ey := t.ty + t.anchorY - (b*t.anchorX + d*t.anchorY)
	return [6]float64{a, b, c, d, ex, ey}
}

// Bounds is the axis-aligned box around the transformed child bounds.
func (t *TransformNode) Bounds() Rect {
	if t.child == nil {
		return Rect{}
	}
	cb := t.child.Bounds()
	if cb.Empty() {
		return Rect{}
	}
	m := t.matrix()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{
		{cb.X, cb.Y}, {cb.X + cb.Width, cb.Y},
		{cb.X, cb.Y + cb.Height}, {cb.X + cb.Width, cb.Y + cb.Height},
	} {
		x, y := transformPoint(m, p[0], p[1])
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (t *TransformNode) Paint(c *Canvas) {
	if !t.visible || t.child == nil {
		return
	}
	c.Save()
	defer c.Restore()
	c.Translate(t.tx, t.ty)
	c.Translate(t.anchorX, t.anchorY)
	c.Rotate(t.rotation * math.Pi / 180)
	c.Scale(t.scaleX, t.scaleY)
	c.Translate(-t.anchorX, -t.anchorY)
	if t.child.Visible() {
		t.child.Paint(c)
	}
}

// Property exposes translateX, translateY, anchorX, anchorY, rotate, scaleX
// and scaleY.
func (t *TransformNode) Property(name string) (Setter, bool) {
	switch name {
	case "translateX", "x":
		return func(v float64) { t.SetTranslateX(v) }, true
	case "translateY", "y":
		return func(v float64) { t.SetTranslateY(v) }, true
	case "anchorX":
		return func(v float64) { t.SetAnchorX(v) }, true
	case "anchorY":
		return func(v float64) { t.SetAnchorY(v) }, true
	case "rotate":
		return func(v float64) { t.SetRotate(v) }, true
	case "scaleX":
		return func(v float64) { t.SetScaleX(v) }, true
	case "scaleY":
		return func(v float64) { t.SetScaleY(v) }, true
	}
	return nil, false
}

// transformPoint applies an affine matrix [a, b, c, d, tx, ty] to (x, y).
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// invertAffine computes the inverse of an affine matrix. Singular matrices
// yield the identity.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	inv := 1.0 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return [6]float64{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}
