package amino

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Image is a raster resource that may still be loading. Shapes and paints
// that use an unloaded Image draw a red placeholder and redraw once it
// arrives.
type Image struct {
	src     string
	img     *image.NRGBA
	loaded  bool
	err     error
	waiters []func()
	notify  map[Invalidator]struct{}
}

// NewImage wraps an already decoded image. The result is loaded.
func NewImage(img image.Image) *Image {
	i := &Image{src: "memory"}
	i.complete(img, nil)
	return i
}

// newPendingImage returns an unloaded image for src.
func newPendingImage(src string) *Image {
	return &Image{src: src}
}

// Source returns the path or URL the image was requested from.
func (i *Image) Source() string { return i.src }

// Loaded reports whether pixel data is available.
func (i *Image) Loaded() bool { return i.loaded }

// Err returns the load failure, if any. A failed image never becomes loaded.
func (i *Image) Err() error { return i.err }

// Size returns the natural size, or zero before loading.
func (i *Image) Size() (w, h int) {
	if !i.loaded {
		return 0, 0
	}
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

func (i *Image) pixels() *image.NRGBA { return i.img }

// whenLoaded calls fn once the image has loaded. Callbacks registered after
// loading run immediately.
func (i *Image) whenLoaded(fn func()) {
	if i.loaded {
		fn()
		return
	}
	i.waiters = append(i.waiters, fn)
}

// invalidateOnLoad marks inv dirty once the image loads. Repeated calls with
// the same target register a single notification.
func (i *Image) invalidateOnLoad(inv Invalidator) {
	if i.loaded {
		inv.SetDirty()
		return
	}
	if _, ok := i.notify[inv]; ok {
		return
	}
	if i.notify == nil {
		i.notify = make(map[Invalidator]struct{})
	}
	i.notify[inv] = struct{}{}
	i.waiters = append(i.waiters, inv.SetDirty)
}

// complete stores the decoded image and releases waiters. Must run on the
// goroutine that owns the scene graph.
func (i *Image) complete(img image.Image, err error) {
	if err != nil {
		i.err = err
		i.waiters = nil
		i.notify = nil
		return
	}
	i.img = toNRGBA(img)
	i.loaded = true
	waiters := i.waiters
	i.waiters = nil
	i.notify = nil
	for _, fn := range waiters {
		fn()
	}
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, img, b.Min, draw.Src)
	return n
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// decodeImage reads and decodes src, which is either a file path or an
// http(s) URL.
func decodeImage(ctx context.Context, src string) (image.Image, error) {
	var r io.ReadCloser
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("load image %s: %w", src, err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("load image %s: %w", src, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("load image %s: status %s", src, resp.Status)
		}
		r = resp.Body
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("load image %s: %w", src, err)
		}
		r = f
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", src, err)
	}
	return img, nil
}
