// Package ecs provides ECS adapters for arbor.
package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LayoutEventType is the Donburi event type for arbor layout events.
// Subscribe to this in your ECS systems to react to panels being created,
// pruned, docked, undocked, moved or resized.
var LayoutEventType = events.NewEventType[arbor.LayoutEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Layout events are published to LayoutEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) arbor.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event arbor.LayoutEvent) {
	LayoutEventType.Publish(s.world, event)
}
