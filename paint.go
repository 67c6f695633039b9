package amino

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Paint describes how a shape is filled or stroked. Generate is evaluated on
// every paint and returns a brush in the node's local coordinate space; the
// Canvas maps it to device space and applies the current alpha.
type Paint interface {
	Generate(c *Canvas) gg.Brush
}

// Stop is a gradient color stop. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  Color
}

// LinearGradient shades along the axis from (X, Y) to (W, H), following the
// argument order of the canvas createLinearGradient call.
type LinearGradient struct {
	X, Y, W, H float64
	Stops      []Stop
}

// NewLinearGradient returns a gradient with no stops.
func NewLinearGradient(x, y, w, h float64) *LinearGradient {
	return &LinearGradient{X: x, Y: y, W: w, H: h}
}

// AddStop appends a color stop.
func (g *LinearGradient) AddStop(offset float64, c Color) *LinearGradient {
	g.Stops = append(g.Stops, Stop{Offset: clamp(offset, 0, 1), Color: c})
	return g
}

// Generate implements Paint.
func (g *LinearGradient) Generate(*Canvas) gg.Brush {
	b := gg.NewLinearGradientBrush(g.X, g.Y, g.W, g.H)
	for _, s := range g.Stops {
		b.AddColorStop(s.Offset, s.Color.rgba())
	}
	return b
}

// RadialGradient shades outward from (X, Y) to Radius.
type RadialGradient struct {
	X, Y, Radius float64
	Stops        []Stop
}

// NewRadialGradient returns a gradient with no stops.
func NewRadialGradient(x, y, radius float64) *RadialGradient {
	return &RadialGradient{X: x, Y: y, Radius: radius}
}

// AddStop appends a color stop.
func (g *RadialGradient) AddStop(offset float64, c Color) *RadialGradient {
	g.Stops = append(g.Stops, Stop{Offset: clamp(offset, 0, 1), Color: c})
	return g
}

// Generate implements Paint.
func (g *RadialGradient) Generate(*Canvas) gg.Brush {
	b := gg.NewRadialGradientBrush(g.X, g.Y, 0, g.Radius)
	for _, s := range g.Stops {
		b.AddColorStop(s.Offset, s.Color.rgba())
	}
	return b
}

// Repeat selects how a PatternFill tiles its image.
type Repeat uint8

const (
	RepeatBoth Repeat = iota // "repeat"
	RepeatX                  // "repeat-x"
	RepeatY                  // "repeat-y"
	RepeatNone               // "no-repeat"
)

// ParseRepeat maps the CSS repetition keywords. Unknown values repeat in both
// directions.
func ParseRepeat(s string) Repeat {
	switch s {
	case "repeat-x":
		return RepeatX
	case "repeat-y":
		return RepeatY
	case "no-repeat":
		return RepeatNone
	}
	return RepeatBoth
}

// PatternFill tiles an image anchored at the local origin. Until the image
// has loaded it paints solid red and schedules one redraw of the surface
// being painted.
type PatternFill struct {
	Image  *Image
	Repeat Repeat
}

// NewPatternFill returns a pattern over img.
func NewPatternFill(img *Image, repeat Repeat) *PatternFill {
	return &PatternFill{Image: img, Repeat: repeat}
}

// Generate implements Paint.
func (p *PatternFill) Generate(c *Canvas) gg.Brush {
	if p.Image == nil || !p.Image.Loaded() {
		if p.Image != nil && c != nil {
			c.redrawOnLoad(p.Image)
		}
		return gg.Solid(Red.rgba())
	}
	src := p.Image.pixels()
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return gg.Solid(gg.Transparent)
	}
	repeat := p.Repeat
	return gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		ix, iy := int(math.Floor(x)), int(math.Floor(y))
		if repeat == RepeatBoth || repeat == RepeatX {
			ix = wrap(ix, w)
		}
		if repeat == RepeatBoth || repeat == RepeatY {
			iy = wrap(iy, h)
		}
		if ix < 0 || iy < 0 || ix >= w || iy >= h {
			return gg.Transparent
		}
		return nrgbaAt(src, b.Min.X+ix, b.Min.Y+iy)
	}).WithName("pattern")
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func nrgbaAt(img *image.NRGBA, x, y int) gg.RGBA {
	i := img.PixOffset(x, y)
	return gg.RGBA{
		R: float64(img.Pix[i]) / 255,
		G: float64(img.Pix[i+1]) / 255,
		B: float64(img.Pix[i+2]) / 255,
		A: float64(img.Pix[i+3]) / 255,
	}
}
