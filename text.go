package amino

import (
	"math"
	"strings"
)

// TextAlign selects horizontal alignment inside a fixed text box.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // lines start at x
	TextAlignCenter                  // lines are centered on x + width/2
	TextAlignRight                   // lines end at x + width
)

// TextNode draws one or more lines of text. (x, y) is the baseline of the
// first line. The line height is the advance width of "m" in the node's
// font.
//
// With autoSize the lines start at x and the box follows the text. Otherwise
// each line is aligned within the fixed width.
type TextNode struct {
	shapeBase
	x, y     float64
	text     string
	fontDesc string
	font     Font
	autoSize bool
	width    float64
	height   float64
	align    TextAlign
}

// NewText returns a text node showing "random text" in the default font.
func NewText() *TextNode {
	f, _ := ParseFont(DefaultFont)
	return &TextNode{
		shapeBase: newShapeBase(),
		text:      "random text",
		fontDesc:  DefaultFont,
		font:      f,
		autoSize:  true,
		width:     100,
		height:    100,
	}
}

func (n *TextNode) Kind() Kind { return KindText }

func (n *TextNode) X() float64          { return n.x }
func (n *TextNode) Y() float64          { return n.y }
func (n *TextNode) Text() string        { return n.text }
func (n *TextNode) Font() string        { return n.fontDesc }
func (n *TextNode) AutoSize() bool      { return n.autoSize }
func (n *TextNode) Width() float64      { return n.width }
func (n *TextNode) Height() float64     { return n.height }
func (n *TextNode) HAlign() TextAlign   { return n.align }
func (n *TextNode) FontSpec() Font      { return n.font }
func (n *TextNode) lines() []string     { return strings.Split(n.text, "\n") }
func (n *TextNode) lineHeight() float64 { return MeasureText(n.font, "m") }

// Set assigns text and baseline position at once.
func (n *TextNode) Set(text string, x, y float64) *TextNode {
	n.text, n.x, n.y = text, x, y
	n.SetDirty()
	return n
}

func (n *TextNode) SetX(x float64) *TextNode        { n.x = x; n.SetDirty(); return n }
func (n *TextNode) SetY(y float64) *TextNode        { n.y = y; n.SetDirty(); return n }
func (n *TextNode) SetText(s string) *TextNode      { n.text = s; n.SetDirty(); return n }
func (n *TextNode) SetAutoSize(v bool) *TextNode    { n.autoSize = v; n.SetDirty(); return n }
func (n *TextNode) SetWidth(w float64) *TextNode    { n.width = w; n.SetDirty(); return n }
func (n *TextNode) SetHeight(h float64) *TextNode   { n.height = h; n.SetDirty(); return n }
func (n *TextNode) SetHAlign(a TextAlign) *TextNode { n.align = a; n.SetDirty(); return n }
func (n *TextNode) SetFill(p Paint) *TextNode       { n.fill = p; n.SetDirty(); return n }
func (n *TextNode) SetOpacity(o float64) *TextNode  { n.opacity = o; n.SetDirty(); return n }
func (n *TextNode) SetVisible(v bool) *TextNode     { n.visible = v; n.SetDirty(); return n }
func (n *TextNode) SetName(name string) *TextNode   { n.name = name; return n }

// SetFont parses a CSS font shorthand. A malformed descriptor is logged and
// leaves the font unchanged.
func (n *TextNode) SetFont(desc string) *TextNode {
	f, err := ParseFont(desc)
	if err != nil {
		Logger().Warn("text font", "node", describe(n), "error", err)
		return n
	}
	n.fontDesc, n.font = desc, f
	n.SetDirty()
	return n
}

// Contains always reports false; text is not a hit target.
func (n *TextNode) Contains(x, y float64) bool { return false }

// Bounds covers every line from the ascent of the first to the descent of
// the last.
func (n *TextNode) Bounds() Rect {
	lines := n.lines()
	h := n.lineHeight()
	w := n.width
	if n.autoSize {
		w = 0
		for _, l := range lines {
			w = math.Max(w, MeasureText(n.font, l))
		}
	}
	return Rect{
		X:      n.x,
		Y:      n.y - h,
		Width:  w,
		Height: float64(len(lines))*h + h/3,
	}
}

// Paint fills the text. Text has no stroke.
func (n *TextNode) Paint(c *Canvas) {
	n.paintShape(c, n.fillText, func(*Canvas) {})
}

func (n *TextNode) fillText(c *Canvas) {
	c.SetFont(n.font)
	h := c.MeasureText("m")
	y := n.y
	for _, line := range n.lines() {
		x := n.x
		if !n.autoSize {
			switch n.align {
			case TextAlignRight:
				x = n.x + n.width - c.MeasureText(line)
			case TextAlignCenter:
				x = n.x + n.width/2 - c.MeasureText(line)/2
			}
		}
		c.FillText(line, x, y)
		y += h
	}
}

// Property exposes x, y, width, height and opacity.
func (n *TextNode) Property(name string) (Setter, bool) {
	switch name {
	case "x":
		return func(v float64) { n.SetX(v) }, true
	case "y":
		return func(v float64) { n.SetY(v) }, true
	case "width":
		return func(v float64) { n.SetWidth(v) }, true
	case "height":
		return func(v float64) { n.SetHeight(v) }, true
	case "opacity":
		return func(v float64) { n.SetOpacity(v) }, true
	}
	return nil, false
}
