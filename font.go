package amino

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFont is the font a new Text node starts with.
const DefaultFont = "12pt sans-serif"

// Font is a parsed CSS font shorthand. Size is in pixels.
type Font struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// ParseFont reads a CSS font shorthand such as "12pt sans-serif" or
// "bold italic 16px monospace". Sizes in pt are converted at 96 dpi.
// Families map onto the Go fonts: monospace families use Go Mono, everything
// else uses Go Regular.
func ParseFont(desc string) (Font, error) {
	f := Font{Family: "sans-serif"}
	sized := false
	fields := strings.Fields(desc)
	for i, field := range fields {
		lower := strings.ToLower(field)
		switch lower {
		case "bold", "bolder", "600", "700", "800", "900":
			f.Bold = true
			continue
		case "italic", "oblique":
			f.Italic = true
			continue
		case "normal", "lighter", "small-caps":
			continue
		}
		if size, ok := parseFontSize(lower); ok {
			f.Size = size
			sized = true
			if i+1 < len(fields) {
				f.Family = strings.Trim(strings.Join(fields[i+1:], " "), `"'`)
			}
			break
		}
	}
	if !sized {
		return Font{}, fmt.Errorf("parse font %q: missing size", desc)
	}
	return f, nil
}

func parseFontSize(s string) (float64, bool) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i] // drop line-height
	}
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "pt"):
		s = strings.TrimSuffix(s, "pt")
		scale = 96.0 / 72.0
	case strings.HasSuffix(s, "em"):
		s = strings.TrimSuffix(s, "em")
		scale = 16
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}

// String formats the font back into shorthand with a pixel size.
func (f Font) String() string {
	var b strings.Builder
	if f.Italic {
		b.WriteString("italic ")
	}
	if f.Bold {
		b.WriteString("bold ")
	}
	fmt.Fprintf(&b, "%gpx %s", f.Size, f.Family)
	return b.String()
}

func (f Font) monospace() bool {
	fam := strings.ToLower(f.Family)
	return strings.Contains(fam, "mono") || strings.Contains(fam, "courier")
}

type fontKey struct {
	mono, bold, italic bool
}

type faceKey struct {
	fontKey
	size float64
}

var fonts struct {
	mu      sync.Mutex
	sources map[fontKey]*text.FontSource
	faces   map[faceKey]text.Face
}

// face returns the face for f scaled by scale. Faces are shared across
// canvases.
func (f Font) face(scale float64) (text.Face, error) {
	k := fontKey{mono: f.monospace(), bold: f.Bold, italic: f.Italic}
	fk := faceKey{fontKey: k, size: f.Size * scale}

	fonts.mu.Lock()
	defer fonts.mu.Unlock()
	if face, ok := fonts.faces[fk]; ok {
		return face, nil
	}
	src, ok := fonts.sources[k]
	if !ok {
		var err error
		src, err = text.NewFontSource(fontData(k))
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", f, err)
		}
		if fonts.sources == nil {
			fonts.sources = make(map[fontKey]*text.FontSource)
			fonts.faces = make(map[faceKey]text.Face)
		}
		fonts.sources[k] = src
	}
	face := src.Face(fk.size)
	fonts.faces[fk] = face
	return face, nil
}

func fontData(k fontKey) []byte {
	switch {
	case k.mono:
		return gomono.TTF
	case k.bold && k.italic:
		return gobolditalic.TTF
	case k.bold:
		return gobold.TTF
	case k.italic:
		return goitalic.TTF
	}
	return goregular.TTF
}

// MeasureText returns the advance width of s in font f.
func MeasureText(f Font, s string) float64 {
	face, err := f.face(1)
	if err != nil {
		Logger().Debug("measure text", "font", f.String(), "error", err)
		return 0
	}
	return face.Advance(s)
}
