package amino

import (
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
)

// DefaultScreenshotDir is where Screenshot writes unless ScreenshotDir is set.
const DefaultScreenshotDir = "screenshots"

// Surface is a drawable area registered with an Engine. It owns the
// top-level nodes, the raster they paint into and the input listeners.
//
// The logical size is the authored size, possibly changed by auto-sizing to
// the host's client width. The raster is the logical size times the pixel
// ratio.
type Surface struct {
	engine *Engine
	id     string
	ctx    *gg.Context
	nodes  nodeList

	dirty    bool
	painting bool
	frame    uint64

	bg          Color
	transparent bool

	autoSize      bool
	autoScale     bool
	ratio         float64
	originalWidth int
	width, height int
	clientWidth   int
	pixelRatio    float64
	offsetX       float64
	offsetY       float64

	listeners listenerTable
	pointer   pointerState
	momentum  *CallbackAnimation
	sink      EventSink

	injectQueue     []syntheticPointerEvent
	screenshotQueue []string
	testRunner      *TestRunner

	// ScreenshotDir is the directory Screenshot writes PNG files into.
	ScreenshotDir string
}

func newSurface(e *Engine, id string, w, h int) *Surface {
	w, h = max(w, 1), max(h, 1)
	return &Surface{
		engine:        e,
		id:            id,
		ctx:           gg.NewContext(w, h),
		bg:            White,
		autoSize:      true,
		autoScale:     true,
		ratio:         float64(w) / float64(h),
		originalWidth: w,
		width:         w,
		height:        h,
		pixelRatio:    1,
		ScreenshotDir: DefaultScreenshotDir,
	}
}

// ID returns the id the surface was registered under.
func (s *Surface) ID() string { return s.id }

// Engine returns the owning engine.
func (s *Surface) Engine() *Engine { return s.engine }

// Width returns the logical width.
func (s *Surface) Width() int { return s.width }

// Height returns the logical height.
func (s *Surface) Height() int { return s.height }

// Frame returns the number of completed repaints.
func (s *Surface) Frame() uint64 { return s.frame }

// Dirty reports whether a change is waiting to be painted.
func (s *Surface) Dirty() bool { return s.dirty }

// Add appends top-level nodes; the last added paints on top.
func (s *Surface) Add(nodes ...Node) *Surface {
	for _, n := range nodes {
		s.nodes.add(s, n)
	}
	s.SetDirty()
	return s
}

// Remove detaches a top-level node.
func (s *Surface) Remove(n Node) bool {
	if !s.nodes.remove(n) {
		return false
	}
	s.SetDirty()
	return true
}

// Clear detaches every top-level node.
func (s *Surface) Clear() *Surface {
	s.nodes.clear()
	s.SetDirty()
	return s
}

// Children returns the top-level nodes in paint order. The returned slice
// must not be modified.
func (s *Surface) Children() []Node { return s.nodes.nodes }

// Find returns the first node named name, searching depth-first.
func (s *Surface) Find(name string) Node { return findIn(s.nodes.nodes, name) }

// SetBackground sets the colour filled behind the nodes.
func (s *Surface) SetBackground(c Color) *Surface {
	s.bg = c
	s.SetDirty()
	return s
}

// SetTransparent clears to transparent instead of filling the background.
func (s *Surface) SetTransparent(v bool) *Surface {
	s.transparent = v
	s.SetDirty()
	return s
}

// SetAutoSize makes the surface follow the host's client width, keeping the
// authored aspect ratio.
func (s *Surface) SetAutoSize(v bool) *Surface {
	s.autoSize = v
	s.SetDirty()
	return s
}

// SetAutoScale scales the scene by the ratio of current to authored width.
func (s *Surface) SetAutoScale(v bool) *Surface {
	s.autoScale = v
	s.SetDirty()
	return s
}

// SetClientWidth reports the width the host gives the surface, in logical
// pixels. Zero means unknown.
func (s *Surface) SetClientWidth(w int) *Surface {
	s.clientWidth = max(w, 0)
	s.SetDirty()
	return s
}

// SetPixelRatio sets the raster pixels per logical pixel.
func (s *Surface) SetPixelRatio(r float64) *Surface {
	if r <= 0 {
		r = 1
	}
	s.pixelRatio = r
	s.SetDirty()
	return s
}

// SetOffset sets the surface position within the host page, subtracted from
// page coordinates of pointer events.
func (s *Surface) SetOffset(x, y float64) *Surface {
	s.offsetX, s.offsetY = x, y
	return s
}

// RasterToPage converts raster pixel coordinates, as reported by a host
// window, to the page coordinates the pointer methods take.
func (s *Surface) RasterToPage(x, y float64) (float64, float64) {
	return x/s.pixelRatio + s.offsetX, y/s.pixelRatio + s.offsetY
}

// SetEventSink forwards every dispatched event to sink after the listeners.
func (s *Surface) SetEventSink(sink EventSink) { s.sink = sink }

// Scale returns the uniform scale applied to the scene, in raster pixels per
// authored unit.
func (s *Surface) Scale() float64 {
	scale := s.pixelRatio
	if s.autoScale {
		scale *= s.sceneScale()
	}
	return scale
}

func (s *Surface) sceneScale() float64 {
	return float64(s.width) / float64(s.originalWidth)
}

// SetDirty records a change. The first mark after a paint repaints at once
// unless a frame will paint the surface anyway.
func (s *Surface) SetDirty() {
	if s.dirty || s.painting {
		return
	}
	s.dirty = true
	if s.engine != nil && s.engine.inFrame() {
		return
	}
	s.Repaint()
}

// Repaint paints the surface now.
func (s *Surface) Repaint() {
	if s.painting {
		return
	}
	if s.repaint() && s.engine != nil {
		s.engine.RequestFrame()
	}
}

// repaint paints every visible top-level node and reports whether a node
// asked for a follow-up frame.
func (s *Surface) repaint() bool {
	s.painting = true
	defer func() { s.painting = false }()

	s.resolveSize()
	s.ctx.Identity()
	c := newCanvas(s.ctx, s)
	if s.transparent {
		c.Clear()
	} else {
		c.ClearColor(s.bg)
	}

	c.Save()
	if scale := s.Scale(); scale != 1 {
		c.Scale(scale, scale)
	}
	s.nodes.paint(c)
	c.Restore()

	s.dirty = false
	s.frame++
	if err := c.Err(); err != nil {
		Logger().Debug("surface paint error", slog.String("surface", s.id), slog.Any("err", err))
	}
	s.flushScreenshots()
	return c.notes.followUp
}

// resolveSize applies auto-sizing and resizes the raster when needed.
func (s *Surface) resolveSize() {
	if s.autoSize && s.clientWidth > 0 && s.clientWidth != s.width {
		s.width = s.clientWidth
		s.height = max(int(math.Round(float64(s.width)/s.ratio)), 1)
	}
	w := max(int(math.Ceil(float64(s.width)*s.pixelRatio)), 1)
	h := max(int(math.Ceil(float64(s.height)*s.pixelRatio)), 1)
	if w != s.ctx.Width() || h != s.ctx.Height() {
		if err := s.ctx.Resize(w, h); err != nil {
			Logger().Warn("surface resize failed", slog.String("surface", s.id), slog.Any("err", err))
		}
	}
}

// beginFrame runs the per-frame test runner step and one injected pointer
// event. Reports whether more frames are needed for pending work.
func (s *Surface) beginFrame() bool {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()
	return len(s.injectQueue) > 0 || len(s.screenshotQueue) > 0 ||
		(s.testRunner != nil && !s.testRunner.Done())
}

// Image returns a copy of the raster with premultiplied alpha.
func (s *Surface) Image() *image.RGBA {
	_ = s.ctx.FlushGPU()
	v := pixmapView(s.ctx.ResizeTarget())
	img := image.NewRGBA(v.Rect)
	copy(img.Pix, v.Pix)
	return img
}

// EncodePNG writes the raster as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.ctx.EncodePNG(w)
}

// At returns the raster pixel at (x, y).
func (s *Surface) At(x, y int) Color {
	_ = s.ctx.FlushGPU()
	return fromRGBA(s.ctx.ResizeTarget().GetPixel(x, y).Unpremultiply())
}

// RasterSize returns the raster dimensions in device pixels.
func (s *Surface) RasterSize() (w, h int) { return s.ctx.Width(), s.ctx.Height() }

func (s *Surface) countNodes() int {
	n := 0
	for _, top := range s.nodes.nodes {
		Walk(top, func(Node) bool { n++; return true })
	}
	return n
}

func (s *Surface) requestFrame() {
	if s.engine != nil {
		s.engine.RequestFrame()
	}
}

func (s *Surface) close() {
	s.stopMomentum()
	s.nodes.clear()
	if s.ctx != nil {
		_ = s.ctx.Close()
	}
}
