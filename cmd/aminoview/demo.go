package main

import (
	"time"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/amino"
)

// buildDemo fills surface with a few animated shapes and effects. Clicking
// the bouncing circle toggles its animation; the card can be dragged.
func buildDemo(engine *amino.Engine, surface *amino.Surface) {
	surface.SetBackground(amino.MustParseColor("#f4f1ea"))

	sky := amino.NewLinearGradient(0, 0, 0, 120).
		AddStop(0, amino.MustParseColor("#2b5876")).
		AddStop(1, amino.MustParseColor("#4e4376"))
	banner := amino.NewRect().Set(0, 0, float64(surface.Width()), 120).SetFill(sky)

	title := amino.NewText().Set("amino", 24, 70).
		SetFont("bold 40px sans-serif").
		SetFill(amino.White)

	ball := amino.NewCircle().Set(80, 200, 30).
		SetFill(amino.MustParseColor("tomato")).
		SetName("ball")

	card := amino.NewRect().Set(0, 0, 160, 90).
		SetCorner(12).
		SetFill(amino.White).
		SetStroke(amino.MustParseColor("#999")).
		SetStrokeWidth(2).
		SetName("card")
	cardGroup := amino.NewGroup(card).SetPosition(240, 170)
	shadow := amino.NewShadow(cardGroup).SetOffset(4, 6).SetRadius(6)

	glow := amino.NewRadialGradient(0, 0, 40).
		AddStop(0, amino.MustParseColor("gold")).
		AddStop(1, amino.MustParseColor("gold").WithAlpha(0))
	orb := amino.NewCircle().Set(520, 220, 40).SetFill(glow)
	fade := amino.NewSaturation(amino.NewGroup(orb))

	fps, _ := amino.NewFPSWidget(engine)
	surface.Add(banner, title, ball, shadow, fade, fps)

	bounce := amino.MustPropertyAnimation(ball, "y", 200, 380, 900*time.Millisecond).
		SetEasing(ease.OutBounce).
		SetLoop(-1).
		SetAutoReverse(true)
	drift := amino.MustPropertyAnimation(fade, "saturation", 1, 0, 2*time.Second).
		SetLoop(-1).
		SetAutoReverse(true)
	engine.AddAnimation(bounce).AddAnimation(drift)
	bounce.Start()
	drift.Start()

	surface.OnClick(ball, func(amino.Event) { bounce.Toggle() })
	surface.OnDrag(card, func(ev amino.Event) {
		cardGroup.SetPosition(cardGroup.X()+ev.DX, cardGroup.Y()+ev.DY)
	})
}
