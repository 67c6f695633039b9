// Package ecs provides ECS adapters for amino.
package ecs

import (
	"github.com/phanxgames/amino"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PointerEventType is the Donburi event type for amino pointer events.
// Subscribe to it in your ECS systems to receive press, drag, release, click
// and momentumdrag events.
var PointerEventType = events.NewEventType[amino.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to PointerEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) amino.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event amino.Event) {
	PointerEventType.Publish(s.world, event)
}
