package event

import "github.com/resonance/engine/internal/core/ecs"

// TriggerEntered fires the frame after a body starts overlapping a trigger volume.
type TriggerEntered struct {
	Trigger ecs.EntityID
	Other   ecs.EntityID
}

// TriggerExited fires the frame after a body stops overlapping a trigger volume.
type TriggerExited struct {
	Trigger ecs.EntityID
	Other   ecs.EntityID
}

// SceneLoaded is emitted into a scene's bus when it becomes current.
type SceneLoaded struct {
	Name string
}

// WindowResized is emitted into the current scene's bus after a resize.
type WindowResized struct {
	OldWidth, OldHeight int
	NewWidth, NewHeight int
}

// Interacted is emitted when a player uses an interactable object.
type Interacted struct {
	Object  ecs.EntityID
	Player  ecs.EntityID
	Granted int // key index handed to the player, or -1
}
