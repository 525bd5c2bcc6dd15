package components

import "github.com/resonance/engine/internal/gameplay"

// RegisterAll adds every built-in component to reg. Components whose zero
// value is not a useful default register a constructor instead.
func RegisterAll(reg *gameplay.Registry) {
	reg.Register("Camera", func() gameplay.Component { return NewCamera() })
	reg.Register("RigidBody", func() gameplay.Component { return NewRigidBody() })
	reg.Register("SimpleCameraControl", func() gameplay.Component { return NewSimpleCameraControl() })
	reg.Register("InventorySystem", func() gameplay.Component { return NewInventorySystem() })
	reg.Register("InteractSystem", func() gameplay.Component { return NewInteractSystem() })
	reg.Register("JumpBehaviour", func() gameplay.Component { return &JumpBehaviour{Impulse: 5} })

	gameplay.RegisterType[RenderComponent](reg)
	gameplay.RegisterType[TriggerVolume](reg)
	gameplay.RegisterType[TriggerVolumeEnterBehaviour](reg)
	gameplay.RegisterType[RotatingBehaviour](reg)
	gameplay.RegisterType[SoundEmitter](reg)
	gameplay.RegisterType[ScriptBehaviour](reg)
	gameplay.RegisterType[RectTransform](reg)
	gameplay.RegisterType[GuiPanel](reg)
	gameplay.RegisterType[GuiText](reg)
}
