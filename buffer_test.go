package amino

import "testing"

func TestNewPixelBufferMinimumSize(t *testing.T) {
	b := NewPixelBuffer(0, -3)
	defer b.Dispose()
	if b.Width() != 1 || b.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", b.Width(), b.Height())
	}
}

func TestPixelBufferSnapshotCommit(t *testing.T) {
	b := NewPixelBuffer(4, 3)
	defer b.Dispose()

	d := b.Snapshot()
	if d.Width != 4 || d.Height != 3 || len(d.Pix) != 4*4*3 {
		t.Fatalf("snapshot = %dx%d len %d", d.Width, d.Height, len(d.Pix))
	}
	d.SetRGBA(2, 1, 10, 20, 30, 255)

	// Not visible until committed.
	if got := b.Snapshot().A(2, 1); got != 0 {
		t.Errorf("alpha before commit = %d, want 0", got)
	}
	b.Commit(d)
	r, g, bl, a := b.Snapshot().RGBA(2, 1)
	if r != 10 || g != 20 || bl != 30 || a != 255 {
		t.Errorf("RGBA after commit = %d,%d,%d,%d, want 10,20,30,255", r, g, bl, a)
	}
}

func TestPixelBufferSnapshotRect(t *testing.T) {
	b := NewPixelBuffer(8, 8)
	defer b.Dispose()

	full := b.Snapshot()
	full.SetRGBA(5, 6, 1, 2, 3, 255)
	b.Commit(full)

	region := b.SnapshotRect(4, 4, 32, 32)
	if region.X != 4 || region.Y != 4 || region.Width != 4 || region.Height != 4 {
		t.Fatalf("region = %+v, want clipped to 4,4 4x4", region)
	}
	if got := region.B(1, 2); got != 3 {
		t.Errorf("region.B(1, 2) = %d, want 3", got)
	}
	region.SetRGBA(0, 0, 9, 9, 9, 255)
	b.Commit(region)
	if got := b.Snapshot().R(4, 4); got != 9 {
		t.Errorf("R(4, 4) after region commit = %d, want 9", got)
	}
}

func TestPixelBufferResize(t *testing.T) {
	b := NewPixelBuffer(10, 10)
	defer b.Dispose()
	if b.Resize(10, 10) {
		t.Error("Resize to same size reallocated")
	}
	if !b.Resize(12, 10) {
		t.Error("Resize to new size did not reallocate")
	}
	if !b.SizeMatches(12, 10) {
		t.Errorf("size = %dx%d, want 12x10", b.Width(), b.Height())
	}
}

func TestPixelBufferFillAndCopy(t *testing.T) {
	a := NewPixelBuffer(3, 3)
	defer a.Dispose()
	a.Fill(Red)
	c := NewPixelBuffer(3, 3)
	defer c.Dispose()
	c.CopyFrom(a)
	r, _, _, al := c.Snapshot().RGBA(1, 1)
	if r != 255 || al != 255 {
		t.Errorf("copied pixel = r%d a%d, want r255 a255", r, al)
	}
}

func TestPixelBufferStraightAlpha(t *testing.T) {
	b := NewPixelBuffer(2, 1)
	defer b.Dispose()

	d := b.Snapshot()
	d.SetRGBA(0, 0, 255, 0, 0, 128)
	b.Commit(d)

	// The raster holds premultiplied values; snapshots are straight.
	if got := b.Image().RGBAAt(0, 0); got.R != 128 || got.A != 128 {
		t.Errorf("raster = %v, want R 128 A 128", got)
	}
	r, g, bl, a := b.Snapshot().RGBA(0, 0)
	if r != 255 || g != 0 || bl != 0 || a != 128 {
		t.Errorf("snapshot = %d,%d,%d,%d, want 255,0,0,128", r, g, bl, a)
	}
	if r, _, _, a := b.Snapshot().RGBA(1, 0); r != 0 || a != 0 {
		t.Errorf("transparent pixel = r%d a%d, want 0, 0", r, a)
	}
}

func TestPixelDataClone(t *testing.T) {
	d := &PixelData{Width: 1, Height: 1, Pix: []uint8{1, 2, 3, 4}}
	c := d.Clone()
	c.SetRGBA(0, 0, 0, 0, 0, 0)
	if d.R(0, 0) != 1 {
		t.Error("Clone shares memory")
	}
}
