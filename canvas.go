package amino

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Canvas is the immediate-mode drawing context nodes paint into. It wraps a
// gg.Context and adds the state gg does not save on Push/Pop: global alpha,
// fill and stroke paints, line width and font.
//
// Paths are given in the current local space. Save and Restore must be
// balanced by every Paint implementation.
type Canvas struct {
	ctx   *gg.Context
	state canvasState
	stack []canvasState
	notes *paintNotes
}

type canvasState struct {
	alpha     float64
	fill      gg.Brush
	stroke    gg.Brush
	lineWidth float64
	font      Font
}

// paintNotes collects side results of one paint pass. Offscreen canvases
// created by effects share the notes of the canvas they were created from.
type paintNotes struct {
	owner    Invalidator
	followUp bool
	err      error
}

func newCanvas(ctx *gg.Context, owner Invalidator) *Canvas {
	return &Canvas{
		ctx:   ctx,
		state: defaultCanvasState(),
		notes: &paintNotes{owner: owner},
	}
}

func defaultCanvasState() canvasState {
	f, _ := ParseFont(DefaultFont)
	return canvasState{
		alpha:     1,
		fill:      gg.Solid(gg.Black),
		stroke:    gg.Solid(gg.Black),
		lineWidth: 1,
		font:      f,
	}
}

// offscreen returns a canvas over ctx that reports into the same notes as c.
func (c *Canvas) offscreen(ctx *gg.Context) *Canvas {
	return &Canvas{ctx: ctx, state: defaultCanvasState(), notes: c.notes}
}

// Width returns the raster width in device pixels.
func (c *Canvas) Width() int { return c.ctx.Width() }

// Height returns the raster height in device pixels.
func (c *Canvas) Height() int { return c.ctx.Height() }

// Err returns the first raster error of the current paint pass.
func (c *Canvas) Err() error { return c.notes.err }

func (c *Canvas) record(op string, err error) {
	if err != nil && c.notes.err == nil {
		c.notes.err = fmt.Errorf("%s: %w", op, err)
	}
}

// RequestFollowUp asks the engine for another frame after this one, used by
// effects whose work is spread over several paints.
func (c *Canvas) RequestFollowUp() { c.notes.followUp = true }

func (c *Canvas) redrawOnLoad(img *Image) {
	if c.notes.owner != nil {
		img.invalidateOnLoad(c.notes.owner)
	}
}

// Save pushes the transform and paint state.
func (c *Canvas) Save() {
	c.ctx.Push()
	c.stack = append(c.stack, c.state)
}

// Restore pops the state pushed by the matching Save.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		panic("amino: Canvas.Restore without Save")
	}
	c.ctx.Pop()
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate moves the origin.
func (c *Canvas) Translate(x, y float64) { c.ctx.Translate(x, y) }

// Rotate rotates by radians.
func (c *Canvas) Rotate(radians float64) { c.ctx.Rotate(radians) }

// Scale scales the axes.
func (c *Canvas) Scale(sx, sy float64) { c.ctx.Scale(sx, sy) }

// Matrix returns the current local-to-device transform.
func (c *Canvas) Matrix() gg.Matrix { return c.ctx.GetTransform() }

// ToDevice maps a local point to device pixels.
func (c *Canvas) ToDevice(x, y float64) (float64, float64) { return c.ctx.TransformPoint(x, y) }

// Alpha returns the global alpha.
func (c *Canvas) Alpha() float64 { return c.state.alpha }

// SetAlpha sets the global alpha applied to every subsequent draw.
func (c *Canvas) SetAlpha(a float64) { c.state.alpha = clamp(a, 0, 1) }

// SetFill resolves p for subsequent fills.
func (c *Canvas) SetFill(p Paint) {
	if p == nil {
		c.state.fill = nil
		return
	}
	c.state.fill = p.Generate(c)
}

// SetStroke resolves p for subsequent strokes.
func (c *Canvas) SetStroke(p Paint) {
	if p == nil {
		c.state.stroke = nil
		return
	}
	c.state.stroke = p.Generate(c)
}

// SetLineWidth sets the stroke width in local units.
func (c *Canvas) SetLineWidth(w float64) { c.state.lineWidth = w }

// SetFont sets the font for FillText.
func (c *Canvas) SetFont(f Font) { c.state.font = f }

// MoveTo starts a subpath.
func (c *Canvas) MoveTo(x, y float64) { c.ctx.MoveTo(x, y) }

// LineTo adds a line.
func (c *Canvas) LineTo(x, y float64) { c.ctx.LineTo(x, y) }

// CurveTo adds a cubic bezier.
func (c *Canvas) CurveTo(cx1, cy1, cx2, cy2, x, y float64) { c.ctx.CubicTo(cx1, cy1, cx2, cy2, x, y) }

// ClosePath closes the current subpath.
func (c *Canvas) ClosePath() { c.ctx.ClosePath() }

// Rect adds a closed rectangle.
func (c *Canvas) Rect(x, y, w, h float64) { c.ctx.DrawRectangle(x, y, w, h) }

// Circle adds a closed circle.
func (c *Canvas) Circle(cx, cy, r float64) { c.ctx.DrawCircle(cx, cy, r) }

// Fill fills and clears the current path.
func (c *Canvas) Fill() {
	if c.state.fill == nil {
		c.ctx.ClearPath()
		return
	}
	c.ctx.SetFillBrush(c.deviceBrush(c.state.fill))
	c.record("fill", c.ctx.Fill())
}

// Stroke strokes and clears the current path.
func (c *Canvas) Stroke() {
	if c.state.stroke == nil || c.state.lineWidth <= 0 {
		c.ctx.ClearPath()
		return
	}
	c.ctx.SetStrokeBrush(c.deviceBrush(c.state.stroke))
	c.ctx.SetLineWidth(c.state.lineWidth * c.scaleFactor())
	c.record("stroke", c.ctx.Stroke())
}

// deviceBrush maps a local-space brush to device space and applies alpha.
func (c *Canvas) deviceBrush(b gg.Brush) gg.Brush {
	alpha := c.state.alpha
	if s, ok := b.(gg.SolidBrush); ok {
		col := s.Color
		col.A *= alpha
		return gg.Solid(col)
	}
	inv := c.ctx.GetTransform().Invert()
	return gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		p := inv.TransformPoint(gg.Pt(x, y))
		col := b.ColorAt(p.X, p.Y)
		col.A *= alpha
		return col
	})
}

// scaleFactor is the uniform scale of the current transform.
func (c *Canvas) scaleFactor() float64 {
	m := c.ctx.GetTransform()
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

// MeasureText returns the advance width of s in the current font, in local units.
func (c *Canvas) MeasureText(s string) float64 {
	return MeasureText(c.state.font, s)
}

// FillText draws s with its baseline starting at (x, y). Glyphs follow the
// translation and uniform scale of the transform; rotation is not applied to
// glyph outlines.
func (c *Canvas) FillText(s string, x, y float64) {
	if c.state.fill == nil || s == "" {
		return
	}
	face, err := c.state.font.face(c.scaleFactor())
	if err != nil {
		c.record("fill text", err)
		return
	}
	dx, dy := c.ctx.TransformPoint(x, y)
	col := c.deviceBrush(c.state.fill).ColorAt(dx, dy)
	text.Draw(c.pixels(), s, face, dx, dy, col.Color())
}

// DrawImage composites img with its top-left corner at local (x, y), honoring
// the full transform and the global alpha.
func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	if img == nil || c.state.alpha <= 0 {
		return
	}
	_ = c.ctx.FlushGPU()
	m := c.ctx.GetTransform()
	aff := f64.Aff3{
		m.A, m.B, m.A*x + m.B*y + m.C,
		m.D, m.E, m.D*x + m.E*y + m.F,
	}
	var opts *draw.Options
	if c.state.alpha < 1 {
		a := uint16(c.state.alpha * 0xffff)
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha16{A: a})}
	}
	var interp draw.Transformer = draw.ApproxBiLinear
	if isIntegerTranslation(aff) {
		interp = draw.NearestNeighbor
	}
	interp.Transform(c.pixels(), aff, img, img.Bounds(), draw.Over, opts)
}

func isIntegerTranslation(m f64.Aff3) bool {
	return m[0] == 1 && m[1] == 0 && m[3] == 0 && m[4] == 1 &&
		m[2] == math.Trunc(m[2]) && m[5] == math.Trunc(m[5])
}

// Clear makes every pixel transparent, ignoring the transform.
func (c *Canvas) Clear() { c.ctx.Clear() }

// ClearColor fills every pixel with col, ignoring the transform.
func (c *Canvas) ClearColor(col Color) { c.ctx.ClearWithColor(col.rgba().Premultiply()) }

// pixels returns a view sharing memory with the raster. gg keeps its
// raster premultiplied, which is the layout image.RGBA describes.
func (c *Canvas) pixels() *image.RGBA {
	return pixmapView(c.ctx.ResizeTarget())
}

// At returns the device pixel at (x, y).
func (c *Canvas) At(x, y int) Color {
	return fromRGBA(c.ctx.ResizeTarget().GetPixel(x, y).Unpremultiply())
}

func pixmapView(pm *gg.Pixmap) *image.RGBA {
	w, h := pm.Width(), pm.Height()
	return &image.RGBA{Pix: pm.Data(), Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
}
