// Package ecs provides ECS adapters for arbor's layout event stream.
//
// The primary adapter is [NewDonburiSink], which bridges arbor layout
// events (panel created, pruned, docked, undocked, move, resize and split
// drags) into a [Donburi] world as typed events. Subscribe to
// [LayoutEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	ctx.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
