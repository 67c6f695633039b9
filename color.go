package amino

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// Color is a solid paint with straight (non-premultiplied) components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Transparent = Color{}
)

// ErrBadColor is returned by ParseColor for strings it cannot interpret.
var ErrBadColor = errors.New("amino: unrecognized color")

// RGB returns an opaque color from 0-255 channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// ColorOf converts any image/color value.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(n.R, n.G, n.B).WithAlpha(float64(n.A) / 255)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ParseColor interprets a CSS color string: a named color, "transparent",
// #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r, g, b) or rgba(r, g, b, a).
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		switch len(s) {
		case 4, 5, 7, 9:
		default:
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return fromRGBA(gg.Hex(s)), nil
	case strings.HasPrefix(s, "rgb"):
		return parseFunctional(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return ColorOf(c), nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

// MustParseColor is like ParseColor but panics on malformed input.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err.Error())
	}
	return c
}

func parseFunctional(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	fn := s[:open]
	parts := strings.Split(s[open+1:len(s)-1], ",")
	want := 3
	if fn == "rgba" {
		want = 4
	} else if fn != "rgb" {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		if i < 3 {
			f = clamp(f, 0, 255) / 255
		} else {
			f = clamp(f, 0, 1)
		}
		v[i] = f
	}
	return Color{v[0], v[1], v[2], v[3]}, nil
}

func fromRGBA(c gg.RGBA) Color {
	return Color{c.R, c.G, c.B, c.A}
}

func (c Color) rgba() gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Generate implements Paint.
func (c Color) Generate(*Canvas) gg.Brush {
	return gg.Solid(c.rgba())
}

// String formats the color as a CSS rgba() string.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)",
		int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5), c.A)
}
