// Package ecs bridges amino pointer events into an entity component system.
//
// [NewDonburiSink] publishes every event a Surface dispatches into a
// [Donburi] world as a typed event. Subscribe to [PointerEventType] in your
// ECS systems to receive them:
//
//	surface.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.PointerEventType.Subscribe(world, onPointer)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
