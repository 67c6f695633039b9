package amino

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// FrameID identifies a frame request made through a Scheduler.
type FrameID uint64

// Scheduler runs callbacks on the loop goroutine at the next frame. It is the
// only part of the engine that may be called from other goroutines.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// ManualScheduler queues frame callbacks until RunFrame is called. Tests call
// RunFrame directly; hosts call it from their own frame loop or use Run.
type ManualScheduler struct {
	mu    sync.Mutex
	next  FrameID
	queue []scheduledFrame
}

type scheduledFrame struct {
	id FrameID
	fn func()
}

// NewManualScheduler returns an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) RequestFrame(fn func()) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.queue = append(s.queue, scheduledFrame{id: s.next, fn: fn})
	return s.next
}

func (s *ManualScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.queue {
		if s.queue[i].id == id {
			copy(s.queue[i:], s.queue[i+1:])
			s.queue[len(s.queue)-1] = scheduledFrame{}
			s.queue = s.queue[:len(s.queue)-1]
			return
		}
	}
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// RunFrame runs the callbacks queued before the call, in request order.
// Callbacks requested while running wait for the next RunFrame. Returns the
// number of callbacks run.
func (s *ManualScheduler) RunFrame() int {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()
	for _, f := range batch {
		f.fn()
	}
	return len(batch)
}

// Run calls RunFrame every interval until ctx is done.
func (s *ManualScheduler) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.RunFrame()
		}
	}
}

// ErrNoSurface is returned by Engine.Surface for an unknown id.
var ErrNoSurface = errors.New("amino: no such surface")

// Options configures an Engine. Zero values select a ManualScheduler and the
// system clock.
type Options struct {
	Scheduler Scheduler
	Clock     Clock
	// AutoPaint repaints every frame once started instead of only when
	// something changes.
	AutoPaint bool
}

// Engine drives animations and repaints its surfaces. All methods must be
// called from the goroutine that runs scheduler callbacks.
type Engine struct {
	sched     Scheduler
	clock     Clock
	autoPaint bool

	surfaces []*Surface
	byID     map[string]*Surface
	anims    []Animation

	running      bool
	inRepaint    bool
	frame        FrameID
	framePending bool

	debug  bool
	frames int
	fpsAt  time.Time
	fps    float64
}

// NewEngine returns a stopped engine.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		sched:     opts.Scheduler,
		clock:     opts.Clock,
		autoPaint: opts.AutoPaint,
		byID:      make(map[string]*Surface),
	}
	if e.sched == nil {
		e.sched = NewManualScheduler()
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	return e
}

func (e *Engine) Scheduler() Scheduler { return e.sched }
func (e *Engine) Clock() Clock         { return e.clock }
func (e *Engine) AutoPaint() bool      { return e.autoPaint }
func (e *Engine) Running() bool        { return e.running }

// AddSurface creates and registers a w×h surface under id. A duplicate id
// panics.
func (e *Engine) AddSurface(id string, w, h int) *Surface {
	if _, ok := e.byID[id]; ok {
		panic(fmt.Sprintf("amino: surface %q already registered", id))
	}
	s := newSurface(e, id, w, h)
	e.surfaces = append(e.surfaces, s)
	e.byID[id] = s
	return s
}

// Surface looks up a surface by id.
func (e *Engine) Surface(id string) (*Surface, error) {
	s, ok := e.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSurface, id)
	}
	return s, nil
}

// Surfaces returns the registered surfaces in registration order. The
// returned slice must not be modified.
func (e *Engine) Surfaces() []*Surface { return e.surfaces }

// RemoveSurface unregisters and closes the surface with id.
func (e *Engine) RemoveSurface(id string) bool {
	s, ok := e.byID[id]
	if !ok {
		return false
	}
	delete(e.byID, id)
	for i, c := range e.surfaces {
		if c == s {
			copy(e.surfaces[i:], e.surfaces[i+1:])
			e.surfaces[len(e.surfaces)-1] = nil
			e.surfaces = e.surfaces[:len(e.surfaces)-1]
			break
		}
	}
	s.close()
	return true
}

// AddAnimation registers a. It still has to be started.
func (e *Engine) AddAnimation(a Animation) *Engine {
	if l, ok := a.(interface{ setEngine(*Engine) }); ok {
		l.setEngine(e)
	}
	e.anims = append(e.anims, a)
	return e
}

// RemoveAnimation unregisters a. Safe to call from inside an update.
func (e *Engine) RemoveAnimation(a Animation) bool {
	for i, c := range e.anims {
		if c == a {
			copy(e.anims[i:], e.anims[i+1:])
			e.anims[len(e.anims)-1] = nil
			e.anims = e.anims[:len(e.anims)-1]
			if l, ok := a.(interface{ setEngine(*Engine) }); ok {
				l.setEngine(nil)
			}
			return true
		}
	}
	return false
}

// Animations returns the registered animations. The returned slice must not
// be modified.
func (e *Engine) Animations() []Animation { return e.anims }

// AnimationChanged is called by animations when they start or toggle.
func (e *Engine) AnimationChanged() { e.Repaint() }

// Start paints once, or begins the continuous frame loop in auto-paint mode.
func (e *Engine) Start() {
	e.running = true
	e.Repaint()
}

// Stop ends the frame loop and cancels any pending frame.
func (e *Engine) Stop() {
	e.running = false
	if e.framePending {
		e.sched.CancelFrame(e.frame)
		e.framePending = false
	}
}

// RequestFrame schedules a repaint for the next frame. Requests are merged
// until the frame runs.
func (e *Engine) RequestFrame() {
	if e.framePending {
		return
	}
	e.framePending = true
	e.frame = e.sched.RequestFrame(func() {
		e.framePending = false
		e.Repaint()
	})
}

// Repaint runs one frame: pending synthetic input and test steps, every
// animation, then every surface. A call made while a frame is in progress
// becomes a frame request.
func (e *Engine) Repaint() {
	if e.inRepaint {
		e.RequestFrame()
		return
	}
	e.inRepaint = true
	defer func() { e.inRepaint = false }()

	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	more := false
	for _, s := range e.snapshotSurfaces() {
		if s.beginFrame() {
			more = true
		}
	}

	now := e.clock.Now()
	playing := false
	anims := append([]Animation(nil), e.anims...)
	for _, a := range anims {
		a.Update(now)
		if a.Playing() {
			playing = true
		}
	}
	if e.debug {
		stats.animTime = time.Since(t0)
		stats.animCount = len(anims)
		t0 = time.Now()
	}

	for _, s := range e.snapshotSurfaces() {
		if s.repaint() {
			more = true
		}
		if e.debug {
			stats.nodeCount += s.countNodes()
		}
	}
	e.countFrame(now)
	if e.debug {
		stats.paintTime = time.Since(t0)
		stats.surfaceCount = len(e.surfaces)
		debugLog(stats)
	}

	if (e.autoPaint && e.running) || (playing && !e.autoPaint) || more {
		e.RequestFrame()
	}
}

func (e *Engine) snapshotSurfaces() []*Surface {
	return append([]*Surface(nil), e.surfaces...)
}

// inFrame reports whether surfaces will be painted by the frame in progress
// or by the continuous loop, so a dirty mark need not repaint on its own.
func (e *Engine) inFrame() bool {
	return e.inRepaint || (e.autoPaint && e.running)
}

func (e *Engine) countFrame(now time.Time) {
	if e.fpsAt.IsZero() {
		e.fpsAt = now
		return
	}
	e.frames++
	if d := now.Sub(e.fpsAt); d >= fpsWindow {
		e.fps = float64(e.frames) / d.Seconds()
		e.frames = 0
		e.fpsAt = now
	}
}

// FPS returns the frame rate measured over the last half second of engine
// clock time.
func (e *Engine) FPS() float64 { return e.fps }

// SetDebugMode enables per-frame timing logs and tree shape warnings.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	globalDebug = enabled
}

// LoadImage starts decoding src, a file path or http(s) URL, in the
// background. The returned image renders as a placeholder until the decoded
// pixels are delivered on a scheduler frame.
func (e *Engine) LoadImage(ctx context.Context, src string) *Image {
	img := newPendingImage(src)
	go func() {
		decoded, err := decodeImage(ctx, src)
		e.sched.RequestFrame(func() {
			if err != nil {
				Logger().Warn("image load failed", slog.String("src", src), slog.Any("err", err))
			}
			img.complete(decoded, err)
		})
	}()
	return img
}
