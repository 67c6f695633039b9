package amino

import (
	"fmt"
	"time"
)

// fpsWindow is how often the engine recomputes its frame rate.
const fpsWindow = 500 * time.Millisecond

// NewFPSWidget returns a text node showing e's frame rate, refreshed every
// half second by a callback animation registered with e. Add the node to a
// surface; remove the returned animation from e to stop updating it.
func NewFPSWidget(e *Engine) (*TextNode, *CallbackAnimation) {
	t := NewText().Set("FPS: --", 4, 14).SetFont("12px sans-serif").SetFill(Black).SetName("fps_widget")
	var last time.Time
	anim := NewCallbackAnimation(func(now time.Time) {
		if !last.IsZero() && now.Sub(last) < fpsWindow {
			return
		}
		last = now
		t.SetText(fmt.Sprintf("FPS: %.1f", e.FPS()))
	})
	e.AddAnimation(anim)
	anim.Start()
	return t, anim
}
