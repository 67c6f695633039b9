package amino

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation is driven by the Engine once per frame. Update receives the
// engine clock's current time; an animation that is not playing ignores it.
type Animation interface {
	Start()
	Stop()
	Toggle()
	Update(now time.Time)
	Playing() bool
}

// StyleTarget receives animated values as CSS-like pixel strings ("12.5px"),
// for hosts that expose styled elements rather than nodes.
type StyleTarget interface {
	SetStyle(name, value string)
}

// ErrNilTarget is returned when an animation is built without a target.
var ErrNilTarget = errors.New("amino: nil animation target")

// engineLink notifies the owning engine when playback state changes.
type engineLink struct {
	engine *Engine
}

func (l *engineLink) setEngine(e *Engine) { l.engine = e }

func (l *engineLink) changed() {
	if l.engine != nil {
		l.engine.AnimationChanged()
	}
}

// easings maps the names accepted by Easing to gween functions.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"outBack":      ease.OutBack,
	"outBounce":    ease.OutBounce,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// Easing looks up an easing function by name ("linear", "outQuad", ...).
func Easing(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// PropertyAnimation interpolates one numeric property of a target from a
// start value to an end value over a duration.
//
// Each completed cycle applies the exact end value for its direction, calls
// the after callback and then applies the loop rules: a loop count of 0 stops,
// -1 repeats forever and N > 0 plays N more cycles. With auto-reverse every
// completion flips the direction.
type PropertyAnimation struct {
	engineLink
	set      Setter
	property string
	from, to float64
	duration time.Duration
	easing   ease.TweenFunc
	progress *gween.Tween

	playing     bool
	started     bool
	forward     bool
	loop        int
	loopCount   int
	autoReverse bool
	startTime   time.Time
	value       float64

	before func()
	after  func()
}

// NewPropertyAnimation animates property of target. The target is either an
// Animatable node, whose property must exist, or a StyleTarget.
func NewPropertyAnimation(target any, property string, from, to float64, duration time.Duration) (*PropertyAnimation, error) {
	var set Setter
	switch t := target.(type) {
	case nil:
		return nil, ErrNilTarget
	case Animatable:
		s, ok := t.Property(property)
		if !ok {
			return nil, fmt.Errorf("%w %q on %T", ErrUnknownProperty, property, target)
		}
		set = s
	case StyleTarget:
		set = func(v float64) {
			t.SetStyle(property, strconv.FormatFloat(v, 'f', -1, 64)+"px")
		}
	default:
		return nil, fmt.Errorf("amino: %T cannot be animated", target)
	}
	a := &PropertyAnimation{
		set:      set,
		property: property,
		from:     from,
		to:       to,
		duration: max(duration, 0),
		forward:  true,
		value:    from,
	}
	a.SetEasing(ease.Linear)
	return a, nil
}

// MustPropertyAnimation is like NewPropertyAnimation but panics on error.
func MustPropertyAnimation(target any, property string, from, to float64, duration time.Duration) *PropertyAnimation {
	a, err := NewPropertyAnimation(target, property, from, to, duration)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// SetEasing replaces the linear interpolation with fn.
func (a *PropertyAnimation) SetEasing(fn ease.TweenFunc) *PropertyAnimation {
	if fn == nil {
		fn = ease.Linear
	}
	a.easing = fn
	a.progress = gween.New(0, 1, float32(a.duration.Seconds()), fn)
	return a
}

// SetLoop sets the number of extra cycles: 0 plays once, -1 loops forever.
func (a *PropertyAnimation) SetLoop(n int) *PropertyAnimation {
	a.loop = n
	a.loopCount = n
	return a
}

// SetAutoReverse makes every completed cycle flip the direction.
func (a *PropertyAnimation) SetAutoReverse(v bool) *PropertyAnimation {
	a.autoReverse = v
	return a
}

// OnBefore sets a callback run when a cycle begins.
func (a *PropertyAnimation) OnBefore(fn func()) *PropertyAnimation {
	a.before = fn
	return a
}

// OnAfter sets a callback run when a cycle completes.
func (a *PropertyAnimation) OnAfter(fn func()) *PropertyAnimation {
	a.after = fn
	return a
}

func (a *PropertyAnimation) Property() string        { return a.property }
func (a *PropertyAnimation) Duration() time.Duration { return a.duration }
func (a *PropertyAnimation) Playing() bool           { return a.playing }

// Forward reports whether the current cycle runs from start to end.
func (a *PropertyAnimation) Forward() bool { return a.forward }

// Value returns the last value applied to the target.
func (a *PropertyAnimation) Value() float64 { return a.value }

// Start begins playback. The start time is taken on the next Update.
func (a *PropertyAnimation) Start() {
	if !a.playing {
		a.loopCount = a.loop
	}
	a.playing = true
	a.changed()
}

// Stop halts playback; a later Start begins a fresh cycle.
func (a *PropertyAnimation) Stop() {
	a.playing = false
	a.started = false
}

// Toggle starts a stopped animation and stops a playing one.
func (a *PropertyAnimation) Toggle() {
	if a.playing {
		a.playing = false
	} else {
		a.loopCount = a.loop
		a.playing = true
	}
	a.changed()
}

func (a *PropertyAnimation) Update(now time.Time) {
	if !a.playing {
		return
	}
	if !a.started {
		a.started = true
		a.startTime = now
		if a.before != nil {
			a.before()
		}
	}
	elapsed := now.Sub(a.startTime)
	if elapsed >= a.duration {
		a.complete()
		return
	}
	if !a.forward {
		elapsed = a.duration - elapsed
	}
	p, _ := a.progress.Set(float32(elapsed.Seconds()))
	a.apply(a.from + float64(p)*(a.to-a.from))
}

func (a *PropertyAnimation) complete() {
	a.started = false
	if a.forward {
		a.apply(a.to)
	} else {
		a.apply(a.from)
	}
	if a.after != nil {
		a.after()
	}
	if a.loop == 0 || a.loopCount == 0 {
		a.playing = false
	} else if a.loop > 0 {
		a.loopCount--
	}
	if a.autoReverse {
		a.forward = !a.forward
	}
}

func (a *PropertyAnimation) apply(v float64) {
	a.value = v
	a.set(v)
}

// SequentialAnimation plays its children one after another. Exactly one child
// plays at a time.
type SequentialAnimation struct {
	engineLink
	anims   []Animation
	index   int
	playing bool
	after   func()
}

// NewSequentialAnimation returns a sequence of anims.
func NewSequentialAnimation(anims ...Animation) *SequentialAnimation {
	return &SequentialAnimation{anims: anims}
}

// Add appends a child.
func (s *SequentialAnimation) Add(a Animation) *SequentialAnimation {
	s.anims = append(s.anims, a)
	return s
}

// OnAfter sets a callback run once when the last child finishes.
func (s *SequentialAnimation) OnAfter(fn func()) *SequentialAnimation {
	s.after = fn
	return s
}

func (s *SequentialAnimation) Playing() bool { return s.playing }

// Index returns the position of the active child.
func (s *SequentialAnimation) Index() int { return s.index }

func (s *SequentialAnimation) Start() {
	if len(s.anims) == 0 {
		return
	}
	s.playing = true
	s.index = 0
	s.anims[0].Start()
	s.changed()
}

func (s *SequentialAnimation) Stop() {
	if s.playing && s.index < len(s.anims) {
		s.anims[s.index].Stop()
	}
	s.playing = false
}

func (s *SequentialAnimation) Toggle() {
	if s.playing {
		s.Stop()
		s.changed()
		return
	}
	s.Start()
}

func (s *SequentialAnimation) Update(now time.Time) {
	if !s.playing {
		return
	}
	cur := s.anims[s.index]
	cur.Update(now)
	if cur.Playing() {
		return
	}
	s.index++
	if s.index >= len(s.anims) {
		s.playing = false
		if s.after != nil {
			s.after()
		}
		return
	}
	s.anims[s.index].Start()
}

// ParallelAnimation plays its children together and is playing while any
// child is.
type ParallelAnimation struct {
	engineLink
	anims   []Animation
	playing bool
	after   func()
}

// NewParallelAnimation returns a group of anims played together.
func NewParallelAnimation(anims ...Animation) *ParallelAnimation {
	return &ParallelAnimation{anims: anims}
}

// Add appends a child.
func (p *ParallelAnimation) Add(a Animation) *ParallelAnimation {
	p.anims = append(p.anims, a)
	return p
}

// OnAfter sets a callback run once when every child has finished.
func (p *ParallelAnimation) OnAfter(fn func()) *ParallelAnimation {
	p.after = fn
	return p
}

func (p *ParallelAnimation) Playing() bool { return p.playing }

func (p *ParallelAnimation) Start() {
	p.playing = true
	for _, a := range p.anims {
		a.Start()
	}
	p.changed()
}

func (p *ParallelAnimation) Stop() {
	for _, a := range p.anims {
		a.Stop()
	}
	p.playing = false
}

func (p *ParallelAnimation) Toggle() {
	if p.playing {
		p.Stop()
		p.changed()
		return
	}
	p.Start()
}

func (p *ParallelAnimation) Update(now time.Time) {
	if !p.playing {
		return
	}
	still := false
	for _, a := range p.anims {
		a.Update(now)
		if a.Playing() {
			still = true
		}
	}
	if !still {
		p.playing = false
		if p.after != nil {
			p.after()
		}
	}
}

// CallbackAnimation calls fn on every update while playing. It never
// completes by itself.
type CallbackAnimation struct {
	engineLink
	fn      func(now time.Time)
	playing bool
}

// NewCallbackAnimation returns a stopped callback animation.
func NewCallbackAnimation(fn func(now time.Time)) *CallbackAnimation {
	return &CallbackAnimation{fn: fn}
}

func (c *CallbackAnimation) Playing() bool { return c.playing }

func (c *CallbackAnimation) Start() {
	c.playing = true
	c.changed()
}

func (c *CallbackAnimation) Stop() { c.playing = false }

func (c *CallbackAnimation) Toggle() {
	c.playing = !c.playing
	c.changed()
}

func (c *CallbackAnimation) Update(now time.Time) {
	if c.playing && c.fn != nil {
		c.fn(now)
	}
}
