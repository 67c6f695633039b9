package amino

// ImageView draws an Image with its top-left corner at (x, y). Until the
// image has loaded it paints a 100x100 red placeholder and hit tests as
// 10x10; once loaded it takes the image's natural size and redraws.
type ImageView struct {
	shapeBase
	x, y  float64
	w, h  float64
	image *Image
}

// NewImageView wraps img. A nil image behaves like one that never loads.
func NewImageView(img *Image) *ImageView {
	v := &ImageView{shapeBase: newShapeBase(), w: 10, h: 10}
	v.SetImage(img)
	return v
}

func (v *ImageView) Kind() Kind      { return KindImage }
func (v *ImageView) X() float64      { return v.x }
func (v *ImageView) Y() float64      { return v.y }
func (v *ImageView) Width() float64  { return v.w }
func (v *ImageView) Height() float64 { return v.h }
func (v *ImageView) Image() *Image   { return v.image }

// Loaded reports whether the image is available.
func (v *ImageView) Loaded() bool { return v.image != nil && v.image.Loaded() }

// SetImage replaces the image. If it has not loaded yet, the view redraws
// once when it does.
func (v *ImageView) SetImage(img *Image) *ImageView {
	v.image = img
	v.w, v.h = 10, 10
	if img != nil {
		img.whenLoaded(func() {
			if v.image != img {
				return
			}
			w, h := img.Size()
			v.w, v.h = float64(w), float64(h)
			v.SetDirty()
		})
	}
	v.SetDirty()
	return v
}

func (v *ImageView) SetX(x float64) *ImageView       { v.x = x; v.SetDirty(); return v }
func (v *ImageView) SetY(y float64) *ImageView       { v.y = y; v.SetDirty(); return v }
func (v *ImageView) SetOpacity(o float64) *ImageView { v.opacity = o; v.SetDirty(); return v }
func (v *ImageView) SetVisible(b bool) *ImageView    { v.visible = b; v.SetDirty(); return v }
func (v *ImageView) SetName(name string) *ImageView  { v.name = name; return v }

// Contains is an edge-inclusive box test over the natural size.
func (v *ImageView) Contains(x, y float64) bool {
	return Rect{X: v.x, Y: v.y, Width: v.w, Height: v.h}.Contains(x, y)
}

func (v *ImageView) Bounds() Rect {
	if !v.Loaded() {
		return Rect{X: v.x, Y: v.y, Width: 100, Height: 100}
	}
	return Rect{X: v.x, Y: v.y, Width: v.w, Height: v.h}
}

func (v *ImageView) Paint(c *Canvas) {
	if !v.visible {
		return
	}
	c.Save()
	defer c.Restore()
	if v.opacity < 1 {
		c.SetAlpha(c.Alpha() * v.opacity)
	}
	if !v.Loaded() {
		c.SetFill(Red)
		c.Rect(v.x, v.y, 100, 100)
		c.Fill()
		return
	}
	c.DrawImage(v.image.pixels(), v.x, v.y)
}

// Property exposes x, y and opacity.
func (v *ImageView) Property(name string) (Setter, bool) {
	switch name {
	case "x":
		return func(f float64) { v.SetX(f) }, true
	case "y":
		return func(f float64) { v.SetY(f) }, true
	case "opacity":
		return func(f float64) { v.SetOpacity(f) }, true
	}
	return nil, false
}
