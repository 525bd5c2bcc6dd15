package components

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/resonance/engine/internal/core/event"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/ui"
)

// InventorySystem holds the keys a player has collected.
type InventorySystem struct {
	gameplay.ComponentBase
	Keys []bool `json:"keys"`
}

func NewInventorySystem() *InventorySystem {
	return &InventorySystem{Keys: make([]bool, 3)}
}

func (*InventorySystem) TypeName() string { return "InventorySystem" }

func (inv *InventorySystem) GetKeysAmount() int { return len(inv.Keys) }

// GetKey reports whether key i is held; out-of-range indices are false.
func (inv *InventorySystem) GetKey(i int) bool {
	return i >= 0 && i < len(inv.Keys) && inv.Keys[i]
}

func (inv *InventorySystem) SetKey(i int, held bool) error {
	if i < 0 || i >= len(inv.Keys) {
		return fmt.Errorf("key index %d out of range [0,%d)", i, len(inv.Keys))
	}
	inv.Keys[i] = held
	return nil
}

func (inv *InventorySystem) RenderImGui(ctx *ui.Context) {
	for i := range inv.Keys {
		ctx.Checkbox(fmt.Sprintf("key %d", i), &inv.Keys[i])
	}
}

// InteractSystem lets the named player use its owner by pressing the
// interact action within InteractDistance. A locked object needs
// RequiredKey in the player's inventory. On success GrantKey (if not -1)
// is handed over and the object is destroyed.
type InteractSystem struct {
	gameplay.ComponentBase
	Player           string  `json:"player"`
	InteractDistance float64 `json:"interact_distance"`
	RequiresKey      bool    `json:"requires_key"`
	RequiredKey      int     `json:"required_key"`
	GrantKey         int     `json:"grant_key"`
	Message          string  `json:"message"`

	player  *gameplay.GameObject
	inRange bool
}

func NewInteractSystem() *InteractSystem {
	return &InteractSystem{
		Player:           "Player",
		InteractDistance: 2,
		GrantKey:         -1,
	}
}

func (*InteractSystem) TypeName() string { return "InteractSystem" }

func (s *InteractSystem) Awake() {
	s.player = s.Scene().FindObjectByName(s.Player)
	if s.player == nil {
		s.Services().Log.Warn("interact target has no player",
			zap.String("object", s.GameObject().Name()),
			zap.String("player", s.Player))
	}
}

func (s *InteractSystem) Update(float32) {
	g := s.GameObject()
	if s.player == nil || !s.player.Alive() {
		s.inRange = false
		return
	}
	s.inRange = g.Transform.Position.Dist(s.player.Transform.Position) <= s.InteractDistance
	if !s.inRange {
		return
	}
	if in := s.Services().Input; in != nil && in.ActionPressed("interact") {
		s.Interact()
	}
}

// InRange reports whether the player was within reach on the last update.
func (s *InteractSystem) InRange() bool { return s.inRange }

// Interact performs the interaction. It reports false when the object is
// locked and the player lacks the key.
func (s *InteractSystem) Interact() bool {
	g := s.GameObject()
	if g == nil || s.player == nil {
		return false
	}
	log := s.Services().Log
	inv, _ := gameplay.Get[*InventorySystem](s.player)
	if s.RequiresKey && (inv == nil || !inv.GetKey(s.RequiredKey)) {
		log.Info("locked", zap.String("object", g.Name()), zap.Int("required_key", s.RequiredKey))
		return false
	}
	granted := -1
	if s.GrantKey >= 0 && inv != nil {
		if err := inv.SetKey(s.GrantKey, true); err != nil {
			log.Warn("grant key", zap.String("object", g.Name()), zap.Error(err))
		} else {
			granted = s.GrantKey
		}
	}
	if s.Message != "" {
		log.Info(s.Message, zap.String("object", g.Name()))
	}
	event.Emit(s.Scene().Events(), event.Interacted{
		Object:  g.ID(),
		Player:  s.player.ID(),
		Granted: granted,
	})
	g.Destroy()
	return true
}

func (s *InteractSystem) RenderImGui(ctx *ui.Context) {
	ctx.Checkbox("in range", &s.inRange)
	if s.RequiresKey {
		ctx.Value("requires key", s.RequiredKey)
	}
}
