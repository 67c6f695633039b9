package amino

import (
	"image"

	"github.com/gogpu/gg"
)

// PixelBuffer is an offscreen raster owned by a single effect node. Draw into
// it through Canvas, read and write pixels through Snapshot and Commit.
type PixelBuffer struct {
	ctx *gg.Context
	w   int
	h   int
}

// NewPixelBuffer creates a transparent buffer. Sizes below one pixel are
// raised to one.
func NewPixelBuffer(w, h int) *PixelBuffer {
	w, h = max(w, 1), max(h, 1)
	return &PixelBuffer{ctx: gg.NewContext(w, h), w: w, h: h}
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int { return b.w }

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int { return b.h }

// SizeMatches reports whether the buffer already has the given size.
func (b *PixelBuffer) SizeMatches(w, h int) bool {
	return b != nil && b.w == max(w, 1) && b.h == max(h, 1)
}

// Clear fills the buffer with transparent black.
func (b *PixelBuffer) Clear() { b.ctx.Clear() }

// Fill fills the entire buffer with c.
func (b *PixelBuffer) Fill(c Color) { b.ctx.ClearWithColor(c.rgba().Premultiply()) }

// Canvas returns a canvas over the buffer with an identity transform. It
// shares follow-up requests and errors with parent.
func (b *PixelBuffer) Canvas(parent *Canvas) *Canvas {
	b.ctx.Identity()
	if parent == nil {
		return newCanvas(b.ctx, nil)
	}
	return parent.offscreen(b.ctx)
}

// Image returns a premultiplied view sharing memory with the buffer. It is
// invalidated by Dispose.
func (b *PixelBuffer) Image() *image.RGBA {
	_ = b.ctx.FlushGPU()
	return pixmapView(b.ctx.ResizeTarget())
}

// CopyFrom overwrites b with the pixels of src. Both must have the same size.
func (b *PixelBuffer) CopyFrom(src *PixelBuffer) {
	if !b.SizeMatches(src.w, src.h) {
		panic("amino: PixelBuffer.CopyFrom size mismatch")
	}
	copy(b.ctx.ResizeTarget().Data(), src.ctx.ResizeTarget().Data())
}

// Snapshot copies the whole buffer.
func (b *PixelBuffer) Snapshot() *PixelData {
	return b.SnapshotRect(0, 0, b.w, b.h)
}

// SnapshotRect copies the intersection of the buffer with the given region.
func (b *PixelBuffer) SnapshotRect(x, y, w, h int) *PixelData {
	_ = b.ctx.FlushGPU()
	r := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, b.w, b.h))
	d := &PixelData{
		X: r.Min.X, Y: r.Min.Y,
		Width: r.Dx(), Height: r.Dy(),
		Pix: make([]uint8, 4*r.Dx()*r.Dy()),
	}
	src := b.ctx.ResizeTarget().Data()
	for row := 0; row < d.Height; row++ {
		si := ((d.Y+row)*b.w + d.X) * 4
		line := d.Pix[row*d.Width*4 : (row+1)*d.Width*4]
		copy(line, src[si:si+d.Width*4])
		unpremultiply(line)
	}
	return d
}

// Commit writes d back at the position it was taken from.
func (b *PixelBuffer) Commit(d *PixelData) {
	dst := b.ctx.ResizeTarget().Data()
	for row := 0; row < d.Height; row++ {
		y := d.Y + row
		if y < 0 || y >= b.h {
			continue
		}
		di := (y*b.w + d.X) * 4
		n := min(d.Width, b.w-d.X) * 4
		line := dst[di : di+n]
		copy(line, d.Pix[row*d.Width*4:row*d.Width*4+n])
		premultiply(line)
	}
}

// unpremultiply converts RGBA bytes from the raster layout to straight
// alpha, in place.
func unpremultiply(pix []uint8) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint32(pix[i+3])
		switch a {
		case 0xff:
		case 0:
			pix[i], pix[i+1], pix[i+2] = 0, 0, 0
		default:
			for c := i; c < i+3; c++ {
				pix[c] = uint8(min((uint32(pix[c])*0xff+a/2)/a, 0xff))
			}
		}
	}
}

// premultiply converts straight-alpha RGBA bytes to the raster layout, in
// place.
func premultiply(pix []uint8) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint32(pix[i+3])
		if a == 0xff {
			continue
		}
		for c := i; c < i+3; c++ {
			pix[c] = uint8((uint32(pix[c])*a + 0x7f) / 0xff)
		}
	}
}

// Resize reallocates the buffer when the size differs. Contents are lost.
// Reports whether a reallocation happened.
func (b *PixelBuffer) Resize(w, h int) bool {
	if b.SizeMatches(w, h) {
		return false
	}
	_ = b.ctx.Close()
	b.w, b.h = max(w, 1), max(h, 1)
	b.ctx = gg.NewContext(b.w, b.h)
	return true
}

// Dispose releases the raster. The buffer must not be used afterwards.
func (b *PixelBuffer) Dispose() {
	if b.ctx != nil {
		_ = b.ctx.Close()
		b.ctx = nil
	}
}

// PixelData is a copy of a rectangular region of a PixelBuffer in straight
// (non-premultiplied) RGBA order. Coordinates passed to its accessors are relative to the region.
type PixelData struct {
	X, Y          int
	Width, Height int
	Pix           []uint8
}

func (d *PixelData) offset(x, y int) int { return (y*d.Width + x) * 4 }

// R returns the red channel at (x, y).
func (d *PixelData) R(x, y int) uint8 { return d.Pix[d.offset(x, y)] }

// G returns the green channel at (x, y).
func (d *PixelData) G(x, y int) uint8 { return d.Pix[d.offset(x, y)+1] }

// B returns the blue channel at (x, y).
func (d *PixelData) B(x, y int) uint8 { return d.Pix[d.offset(x, y)+2] }

// A returns the alpha channel at (x, y).
func (d *PixelData) A(x, y int) uint8 { return d.Pix[d.offset(x, y)+3] }

// RGBA returns all four channels at (x, y).
func (d *PixelData) RGBA(x, y int) (r, g, b, a uint8) {
	i := d.offset(x, y)
	return d.Pix[i], d.Pix[i+1], d.Pix[i+2], d.Pix[i+3]
}

// SetRGBA writes all four channels at (x, y).
func (d *PixelData) SetRGBA(x, y int, r, g, b, a uint8) {
	i := d.offset(x, y)
	d.Pix[i], d.Pix[i+1], d.Pix[i+2], d.Pix[i+3] = r, g, b, a
}

// Clone returns an independent copy.
func (d *PixelData) Clone() *PixelData {
	c := *d
	c.Pix = append([]uint8(nil), d.Pix...)
	return &c
}
