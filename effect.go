package amino

import "math"

// effectBase is the single-child offscreen pipeline shared by every effect
// node. The child is rendered into src, processed into dst and dst is
// composited so the child keeps its on-screen position.
type effectBase struct {
	nodeBase
	child Node
	dirty bool
	src   *PixelBuffer
	dst   *PixelBuffer
}

func newEffectBase() effectBase {
	return effectBase{nodeBase: newNodeBase(), dirty: true}
}

// effectLayout places the child bounds inside an effect buffer.
type effectLayout struct {
	bx, by int // child bounds origin, floored
	px, py int // child bounds origin within the buffer
	w, h   int // buffer size
}

func (e *effectBase) setChild(self Invalidator, child Node) {
	attach(self, child)
	e.child = child
}

// Child returns the wrapped node, or nil after Remove.
func (e *effectBase) Child() Node { return e.child }

// Children returns the wrapped node as a one-element list.
func (e *effectBase) Children() []Node {
	if e.child == nil {
		return nil
	}
	return []Node{e.child}
}

// Remove detaches child. Reports false if it is not the wrapped node.
func (e *effectBase) Remove(child Node) bool {
	if child == nil || child != e.child {
		return false
	}
	detach(child)
	e.child = nil
	e.SetDirty()
	return true
}

// SetDirty marks the cached result stale and forwards to the parent.
func (e *effectBase) SetDirty() {
	e.dirty = true
	e.nodeBase.SetDirty()
}

// Dirty reports whether the next paint re-renders the child.
func (e *effectBase) Dirty() bool { return e.dirty }

// Contains always reports false; hit testing descends into the child.
func (e *effectBase) Contains(x, y float64) bool { return false }

// ToChildCoords is the identity: effects do not move their child.
func (e *effectBase) ToChildCoords(x, y float64) (float64, float64) { return x, y }

// Dispose releases the offscreen buffers. They are recreated by the next paint.
func (e *effectBase) Dispose() {
	if e.src != nil {
		e.src.Dispose()
		e.src = nil
	}
	if e.dst != nil {
		e.dst.Dispose()
		e.dst = nil
	}
	e.dirty = true
}

// boundsWith is the child bounds grown by pad on every side and extended
// towards (ox, oy).
func (e *effectBase) boundsWith(pad, ox, oy float64) Rect {
	if e.child == nil {
		return Rect{}
	}
	b := e.child.Bounds()
	if b.Empty() {
		return b
	}
	return Rect{
		X:      b.X - pad - max(0, -ox),
		Y:      b.Y - pad - max(0, -oy),
		Width:  b.Width + 2*pad + math.Abs(ox),
		Height: b.Height + 2*pad + math.Abs(oy),
	}
}

// prepare sizes the buffers for the current child bounds. A reallocation
// marks the effect dirty. Reports false when there is nothing to draw.
func (e *effectBase) prepare(pad, ox, oy int, needSrc bool) (effectLayout, bool) {
	if e.child == nil || !e.child.Visible() {
		return effectLayout{}, false
	}
	b := e.child.Bounds()
	if b.Empty() {
		return effectLayout{}, false
	}
	bx, by := int(math.Floor(b.X)), int(math.Floor(b.Y))
	bw := int(math.Ceil(b.X+b.Width)) - bx
	bh := int(math.Ceil(b.Y+b.Height)) - by
	l := effectLayout{
		bx: bx, by: by,
		px: pad + max(0, -ox), py: pad + max(0, -oy),
		w: bw + 2*pad + abs(ox), h: bh + 2*pad + abs(oy),
	}
	if needSrc {
		e.src = e.ensure(e.src, l.w, l.h)
	}
	e.dst = e.ensure(e.dst, l.w, l.h)
	return l, true
}

func (e *effectBase) ensure(b *PixelBuffer, w, h int) *PixelBuffer {
	if b == nil {
		e.dirty = true
		return NewPixelBuffer(w, h)
	}
	if b.Resize(w, h) {
		e.dirty = true
	}
	return b
}

// renderChild paints the child into buf with its bounds origin at the layout
// position plus (dx, dy).
func (e *effectBase) renderChild(c *Canvas, buf *PixelBuffer, l effectLayout, dx, dy int, clear bool) {
	if clear {
		buf.Clear()
	}
	bc := buf.Canvas(c)
	bc.Translate(float64(l.px-l.bx+dx), float64(l.py-l.by+dy))
	e.child.Paint(bc)
}

// composite draws dst so the child bounds land at their own position,
// shifted by (dx, dy).
func (e *effectBase) composite(c *Canvas, l effectLayout, dx, dy float64) {
	c.DrawImage(e.dst.Image(), float64(l.bx-l.px)+dx, float64(l.by-l.py)+dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// BufferNode caches its child in an offscreen buffer and re-renders it only
// when the child changes.
type BufferNode struct {
	effectBase
}

// NewBuffer wraps child in a cache.
func NewBuffer(child Node) *BufferNode {
	n := &BufferNode{effectBase: newEffectBase()}
	n.setChild(n, child)
	return n
}

func (n *BufferNode) Kind() Kind { return KindBuffer }

func (n *BufferNode) SetVisible(v bool) *BufferNode   { n.visible = v; n.SetDirty(); return n }
func (n *BufferNode) SetName(name string) *BufferNode { n.name = name; return n }

// Bounds is the child's bounds.
func (n *BufferNode) Bounds() Rect { return n.boundsWith(0, 0, 0) }

func (n *BufferNode) Paint(c *Canvas) {
	if !n.visible {
		return
	}
	l, ok := n.prepare(0, 0, 0, false)
	if !ok {
		return
	}
	if n.dirty {
		n.renderChild(c, n.dst, l, 0, 0, true)
		n.dirty = false
	}
	n.composite(c, l, 0, 0)
}

// DefaultBlurRadius is the radius of new blur and shadow nodes.
const DefaultBlurRadius = 3

// BlurNode box-blurs its child. The buffer carries a margin of twice the
// radius so the blur can spread past the child's edges.
type BlurNode struct {
	effectBase
	radius int
}

// NewBlur wraps child with a blur of DefaultBlurRadius.
func NewBlur(child Node) *BlurNode {
	n := &BlurNode{effectBase: newEffectBase(), radius: DefaultBlurRadius}
	n.setChild(n, child)
	return n
}

func (n *BlurNode) Kind() Kind { return KindBlur }

// Radius returns the blur radius in pixels.
func (n *BlurNode) Radius() int { return n.radius }

// SetRadius sets the blur radius. Negative values are treated as zero.
func (n *BlurNode) SetRadius(r int) *BlurNode { n.radius = max(r, 0); n.SetDirty(); return n }

func (n *BlurNode) SetVisible(v bool) *BlurNode   { n.visible = v; n.SetDirty(); return n }
func (n *BlurNode) SetName(name string) *BlurNode { n.name = name; return n }

// Bounds is the child's bounds grown by the blur margin.
func (n *BlurNode) Bounds() Rect { return n.boundsWith(float64(2*n.radius), 0, 0) }

func (n *BlurNode) Paint(c *Canvas) {
	if !n.visible {
		return
	}
	l, ok := n.prepare(2*n.radius, 0, 0, true)
	if !ok {
		return
	}
	if n.dirty {
		n.renderChild(c, n.src, l, 0, 0, true)
		n.dst.Commit(boxBlur(n.src.Snapshot(), n.radius))
		n.dirty = false
	}
	n.composite(c, l, 0, 0)
}

// Property exposes radius.
func (n *BlurNode) Property(name string) (Setter, bool) {
	if name == "radius" {
		return func(v float64) { n.SetRadius(int(math.Round(v))) }, true
	}
	return nil, false
}

// boxBlur averages over a (2r+1)² window. Alpha is the plain mean; colour
// is weighted by alpha so transparent neighbours do not darken edges.
// Pixels closer than r to the edge keep their source value.
func boxBlur(src *PixelData, r int) *PixelData {
	out := src.Clone()
	if r <= 0 {
		return out
	}
	div := uint32((2*r + 1) * (2*r + 1))
	for y := r; y < src.Height-r; y++ {
		for x := r; x < src.Width-r; x++ {
			var sr, sg, sb, sa uint32
			for iy := y - r; iy <= y+r; iy++ {
				i := src.offset(x-r, iy)
				for ix := 0; ix <= 2*r; ix++ {
					a := uint32(src.Pix[i+3])
					sr += uint32(src.Pix[i]) * a
					sg += uint32(src.Pix[i+1]) * a
					sb += uint32(src.Pix[i+2]) * a
					sa += a
					i += 4
				}
			}
			if sa == 0 {
				out.SetRGBA(x, y, 0, 0, 0, 0)
				continue
			}
			out.SetRGBA(x, y,
				uint8((sr+sa/2)/sa), uint8((sg+sa/2)/sa), uint8((sb+sa/2)/sa),
				uint8(sa/div))
		}
	}
	return out
}

// DefaultShadowOpacity is the silhouette opacity of new shadow nodes.
const DefaultShadowOpacity = 0.8

// ShadowNode draws a blurred black silhouette of its child, offset by
// (offsetX, offsetY), underneath the crisp child.
type ShadowNode struct {
	effectBase
	radius  int
	offsetX int
	offsetY int
	opacity float64
}

// NewShadow wraps child with an unshifted shadow.
func NewShadow(child Node) *ShadowNode {
	n := &ShadowNode{
		effectBase: newEffectBase(),
		radius:     DefaultBlurRadius,
		opacity:    DefaultShadowOpacity,
	}
	n.setChild(n, child)
	return n
}

func (n *ShadowNode) Kind() Kind { return KindShadow }

func (n *ShadowNode) Radius() int          { return n.radius }
func (n *ShadowNode) OffsetX() int         { return n.offsetX }
func (n *ShadowNode) OffsetY() int         { return n.offsetY }
func (n *ShadowNode) BlurOpacity() float64 { return n.opacity }
func (n *ShadowNode) SetRadius(r int) *ShadowNode {
	n.radius = max(r, 0)
	n.SetDirty()
	return n
}
func (n *ShadowNode) SetOffset(dx, dy int) *ShadowNode {
	n.offsetX, n.offsetY = dx, dy
	n.SetDirty()
	return n
}
func (n *ShadowNode) SetOffsetX(dx int) *ShadowNode { n.offsetX = dx; n.SetDirty(); return n }
func (n *ShadowNode) SetOffsetY(dy int) *ShadowNode { n.offsetY = dy; n.SetDirty(); return n }

// SetBlurOpacity sets the silhouette opacity, clamped to [0, 1].
func (n *ShadowNode) SetBlurOpacity(o float64) *ShadowNode {
	n.opacity = clamp(o, 0, 1)
	n.SetDirty()
	return n
}

func (n *ShadowNode) SetVisible(v bool) *ShadowNode   { n.visible = v; n.SetDirty(); return n }
func (n *ShadowNode) SetName(name string) *ShadowNode { n.name = name; return n }

// Bounds covers the child, the shadow offset and the blur margin.
func (n *ShadowNode) Bounds() Rect {
	return n.boundsWith(float64(2*n.radius), float64(n.offsetX), float64(n.offsetY))
}

func (n *ShadowNode) Paint(c *Canvas) {
	if !n.visible {
		return
	}
	l, ok := n.prepare(2*n.radius, n.offsetX, n.offsetY, true)
	if !ok {
		return
	}
	if n.dirty {
		n.renderChild(c, n.src, l, n.offsetX, n.offsetY, true)
		n.dst.Commit(silhouette(boxBlur(n.src.Snapshot(), n.radius), n.opacity))
		n.renderChild(c, n.dst, l, 0, 0, false)
		n.dirty = false
	}
	n.composite(c, l, 0, 0)
}

// Property exposes radius, offsetX, offsetY and opacity.
func (n *ShadowNode) Property(name string) (Setter, bool) {
	switch name {
	case "radius":
		return func(v float64) { n.SetRadius(int(math.Round(v))) }, true
	case "offsetX":
		return func(v float64) { n.SetOffsetX(int(math.Round(v))) }, true
	case "offsetY":
		return func(v float64) { n.SetOffsetY(int(math.Round(v))) }, true
	case "opacity", "blurOpacity":
		return func(v float64) { n.SetBlurOpacity(v) }, true
	}
	return nil, false
}

// silhouette discards colour and scales alpha by opacity, in place.
func silhouette(d *PixelData, opacity float64) *PixelData {
	for i := 0; i < len(d.Pix); i += 4 {
		d.Pix[i], d.Pix[i+1], d.Pix[i+2] = 0, 0, 0
		d.Pix[i+3] = uint8(float64(d.Pix[i+3]) * opacity)
	}
	return d
}

// DefaultSaturation is the saturation of new saturation nodes.
const DefaultSaturation = 0.5

// SaturationNode scales the colour saturation of its child. Zero is
// greyscale, one leaves the child unchanged.
type SaturationNode struct {
	effectBase
	saturation float64
}

// NewSaturation wraps child at DefaultSaturation.
func NewSaturation(child Node) *SaturationNode {
	n := &SaturationNode{effectBase: newEffectBase(), saturation: DefaultSaturation}
	n.setChild(n, child)
	return n
}

func (n *SaturationNode) Kind() Kind { return KindSaturation }

// Saturation returns the saturation factor.
func (n *SaturationNode) Saturation() float64 { return n.saturation }

// SetSaturation sets the saturation factor.
func (n *SaturationNode) SetSaturation(s float64) *SaturationNode {
	n.saturation = s
	n.SetDirty()
	return n
}

func (n *SaturationNode) SetVisible(v bool) *SaturationNode   { n.visible = v; n.SetDirty(); return n }
func (n *SaturationNode) SetName(name string) *SaturationNode { n.name = name; return n }

// Bounds is the child's bounds.
func (n *SaturationNode) Bounds() Rect { return n.boundsWith(0, 0, 0) }

func (n *SaturationNode) Paint(c *Canvas) {
	if !n.visible {
		return
	}
	l, ok := n.prepare(0, 0, 0, true)
	if !ok {
		return
	}
	if n.dirty {
		n.renderChild(c, n.src, l, 0, 0, true)
		d := n.src.Snapshot()
		desaturate(d, n.saturation)
		n.dst.Commit(d)
		n.dirty = false
	}
	n.composite(c, l, 0, 0)
}

// Property exposes saturation.
func (n *SaturationNode) Property(name string) (Setter, bool) {
	if name == "saturation" {
		return func(v float64) { n.SetSaturation(v) }, true
	}
	return nil, false
}

// luma weights used by the saturation effects.
func luma(r, g, b float64) float64 { return r*0.21 + g*0.71 + b*0.07 }

// desaturate blends every pixel towards its luma, in place.
func desaturate(d *PixelData, saturation float64) {
	scale := 1 - saturation
	for i := 0; i < len(d.Pix); i += 4 {
		r, g, b := float64(d.Pix[i]), float64(d.Pix[i+1]), float64(d.Pix[i+2])
		v := luma(r, g, b) * scale
		d.Pix[i] = channel(r*(1-scale) + v)
		d.Pix[i+1] = channel(g*(1-scale) + v)
		d.Pix[i+2] = channel(b*(1-scale) + v)
	}
}

// channel clamps v to a byte.
func channel(v float64) uint8 {
	return uint8(clamp(v, 0, 255))
}
