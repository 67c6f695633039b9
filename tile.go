package amino

import (
	"math"
	"time"
)

const (
	// TileSize is the edge length of the square tiles a TileWorker processes.
	TileSize = 32
	// DefaultTileBudget is the time a TileWorker may spend per paint.
	DefaultTileBudget = time.Second / 40
)

// TileWorker applies a per-tile pixel function from one buffer into another,
// a bounded amount of work at a time. Tiles are visited row by row; the
// cursor only moves forward until Reset.
type TileWorker struct {
	src, dst *PixelBuffer
	apply    func(tile *PixelData)
	clock    Clock

	cursorX, cursorY int
	inProgress       bool
	tiles            int
}

// NewTileWorker returns an idle worker. A nil clock uses the wall clock.
func NewTileWorker(apply func(tile *PixelData), clock Clock) *TileWorker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TileWorker{apply: apply, clock: clock}
}

// Reset discards any pending work and restarts from the top-left tile of src.
func (w *TileWorker) Reset(src, dst *PixelBuffer) {
	w.src, w.dst = src, dst
	w.cursorX, w.cursorY = 0, 0
	w.tiles = 0
	w.inProgress = src != nil && dst != nil
}

// Cursor returns the top-left corner of the next tile.
func (w *TileWorker) Cursor() (x, y int) { return w.cursorX, w.cursorY }

// InProgress reports whether tiles remain.
func (w *TileWorker) InProgress() bool { return w.inProgress }

// Processed returns the number of tiles done since the last Reset.
func (w *TileWorker) Processed() int { return w.tiles }

// Step processes the tile under the cursor and advances. Reports whether
// tiles remain.
func (w *TileWorker) Step() bool {
	if !w.inProgress {
		return false
	}
	tile := w.src.SnapshotRect(w.cursorX, w.cursorY, TileSize, TileSize)
	w.apply(tile)
	w.dst.Commit(tile)
	w.tiles++

	if w.cursorX+TileSize >= w.src.Width() {
		w.cursorX = 0
		w.cursorY += TileSize
	} else {
		w.cursorX += TileSize
	}
	if w.cursorY >= w.src.Height() {
		w.inProgress = false
	}
	return w.inProgress
}

// RunFor processes tiles until the budget is spent or the work is complete.
// At least one tile is processed per call. Reports whether tiles remain.
func (w *TileWorker) RunFor(budget time.Duration) bool {
	if !w.inProgress {
		return false
	}
	start := w.clock.Now()
	for w.Step() {
		if w.clock.Now().Sub(start) >= budget {
			break
		}
	}
	return w.inProgress
}

// BackgroundSaturationNode adjusts saturation, brightness and contrast of its
// child. The pixel pass is spread over several paints by a TileWorker; the
// canvas requests follow-up frames until it completes. Output is opaque.
type BackgroundSaturationNode struct {
	effectBase
	x, y       float64
	saturation float64
	brightness float64
	contrast   float64
	budget     time.Duration
	worker     *TileWorker
}

// NewBackgroundSaturation wraps child with saturation 0.5, brightness 0 and
// contrast 1.
func NewBackgroundSaturation(child Node) *BackgroundSaturationNode {
	n := &BackgroundSaturationNode{
		effectBase: newEffectBase(),
		saturation: DefaultSaturation,
		contrast:   1,
		budget:     DefaultTileBudget,
	}
	n.worker = NewTileWorker(n.applyTile, nil)
	n.setChild(n, child)
	return n
}

func (n *BackgroundSaturationNode) Kind() Kind { return KindBackgroundSaturation }

func (n *BackgroundSaturationNode) X() float64          { return n.x }
func (n *BackgroundSaturationNode) Y() float64          { return n.y }
func (n *BackgroundSaturationNode) Saturation() float64 { return n.saturation }
func (n *BackgroundSaturationNode) Brightness() float64 { return n.brightness }
func (n *BackgroundSaturationNode) Contrast() float64   { return n.contrast }

// Worker exposes the tile worker driving the pixel pass.
func (n *BackgroundSaturationNode) Worker() *TileWorker { return n.worker }

// SetX moves the composited result horizontally. The cached pixels stay valid.
func (n *BackgroundSaturationNode) SetX(x float64) *BackgroundSaturationNode {
	n.x = x
	n.nodeBase.SetDirty()
	return n
}

// SetY moves the composited result vertically.
func (n *BackgroundSaturationNode) SetY(y float64) *BackgroundSaturationNode {
	n.y = y
	n.nodeBase.SetDirty()
	return n
}

// SetSaturation sets the saturation, clamped to [0, 1].
func (n *BackgroundSaturationNode) SetSaturation(s float64) *BackgroundSaturationNode {
	n.saturation = clamp(s, 0, 1)
	n.SetDirty()
	return n
}

// SetBrightness sets the brightness offset, clamped to [-1, 1].
func (n *BackgroundSaturationNode) SetBrightness(b float64) *BackgroundSaturationNode {
	n.brightness = clamp(b, -1, 1)
	n.SetDirty()
	return n
}

// SetContrast sets the contrast factor, clamped to [0, 10].
func (n *BackgroundSaturationNode) SetContrast(c float64) *BackgroundSaturationNode {
	n.contrast = clamp(c, 0, 10)
	n.SetDirty()
	return n
}

// SetClock replaces the clock used to measure the tile budget.
func (n *BackgroundSaturationNode) SetClock(c Clock) *BackgroundSaturationNode {
	if c == nil {
		c = SystemClock{}
	}
	n.worker.clock = c
	return n
}

// SetBudget sets the time spent on tiles per paint.
func (n *BackgroundSaturationNode) SetBudget(d time.Duration) *BackgroundSaturationNode {
	n.budget = d
	return n
}

func (n *BackgroundSaturationNode) SetVisible(v bool) *BackgroundSaturationNode {
	n.visible = v
	n.nodeBase.SetDirty()
	return n
}

func (n *BackgroundSaturationNode) SetName(name string) *BackgroundSaturationNode {
	n.name = name
	return n
}

// ToChildCoords undoes the (x, y) offset.
func (n *BackgroundSaturationNode) ToChildCoords(x, y float64) (float64, float64) {
	return x - n.x, y - n.y
}

// Bounds is the child's bounds offset by (x, y).
func (n *BackgroundSaturationNode) Bounds() Rect {
	return n.boundsWith(0, 0, 0).Translate(n.x, n.y)
}

func (n *BackgroundSaturationNode) Paint(c *Canvas) {
	if !n.visible {
		return
	}
	l, ok := n.prepare(0, 0, 0, true)
	if !ok {
		return
	}
	if n.dirty {
		n.renderChild(c, n.src, l, 0, 0, true)
		n.dst.Clear()
		n.worker.Reset(n.src, n.dst)
		n.dirty = false
	}
	if n.worker.InProgress() && n.worker.RunFor(n.budget) {
		c.RequestFollowUp()
	}
	n.composite(c, l, n.x, n.y)
}

// Property exposes x, y, saturation, brightness and contrast.
func (n *BackgroundSaturationNode) Property(name string) (Setter, bool) {
	switch name {
	case "x":
		return func(v float64) { n.SetX(v) }, true
	case "y":
		return func(v float64) { n.SetY(v) }, true
	case "saturation":
		return func(v float64) { n.SetSaturation(v) }, true
	case "brightness":
		return func(v float64) { n.SetBrightness(v) }, true
	case "contrast":
		return func(v float64) { n.SetContrast(v) }, true
	}
	return nil, false
}

func (n *BackgroundSaturationNode) applyTile(tile *PixelData) {
	adjustTile(tile, n.saturation, n.brightness, n.contrast)
}

// adjustTile applies saturation, brightness and contrast in place and forces
// every pixel opaque.
func adjustTile(d *PixelData, saturation, brightness, contrast float64) {
	scale := 1 - saturation
	keep := 1 - scale
	bright := brightness * 256
	for i := 0; i < len(d.Pix); i += 4 {
		r, g, b := float64(d.Pix[i]), float64(d.Pix[i+1]), float64(d.Pix[i+2])
		vs := luma(r, g, b) * scale
		r = (r*keep+vs+bright-0x7f)*contrast + 0x7f
		g = (g*keep+vs+bright-0x7f)*contrast + 0x7f
		b = (b*keep+vs+bright-0x7f)*contrast + 0x7f
		d.Pix[i] = channel(math.Round(r))
		d.Pix[i+1] = channel(math.Round(g))
		d.Pix[i+2] = channel(math.Round(b))
		d.Pix[i+3] = 0xff
	}
}
