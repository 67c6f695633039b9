package ecs

import (
	"testing"

	"github.com/phanxgames/amino"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	if NewDonburiSink(donburi.NewWorld()) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []amino.Event
	PointerEventType.Subscribe(world, func(w donburi.World, e amino.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(amino.Event{Type: amino.EventPress, Point: amino.Point{X: 100, Y: 200}})
	sink.EmitEvent(amino.Event{Type: amino.EventDrag, DX: 2, DY: -1})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	PointerEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("received %d events, want 2", len(received))
	}
	if e := received[0]; e.Type != amino.EventPress || e.Point.X != 100 || e.Point.Y != 200 {
		t.Errorf("event 0 = %+v", e)
	}
	if e := received[1]; e.Type != amino.EventDrag || e.DX != 2 || e.DY != -1 {
		t.Errorf("event 1 = %+v", e)
	}
}

func TestDonburiSink_FromSurface(t *testing.T) {
	world := donburi.NewWorld()
	eng := amino.NewEngine(amino.Options{})
	s := eng.AddSurface("main", 50, 50)
	r := amino.NewRect().Set(0, 0, 20, 20)
	s.Add(r)
	s.SetEventSink(NewDonburiSink(world))

	var clicks []amino.Event
	PointerEventType.Subscribe(world, func(w donburi.World, e amino.Event) {
		if e.Type == amino.EventClick {
			clicks = append(clicks, e)
		}
	})

	s.PointerDown(5, 5)
	s.PointerUp(5, 5)
	PointerEventType.ProcessEvents(world)

	if len(clicks) != 1 {
		t.Fatalf("clicks = %d, want 1", len(clicks))
	}
	if clicks[0].Target != amino.Invalidator(r) || clicks[0].Surface != s {
		t.Errorf("click = %+v", clicks[0])
	}
}
