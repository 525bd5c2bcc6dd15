package components

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/resource"
	"github.com/resonance/engine/internal/ui"
)

// SoundEmitter plays a Sound resource on awake, on demand, or repeatedly
// every Interval seconds while the scene plays.
type SoundEmitter struct {
	gameplay.ComponentBase
	Sound       uuid.UUID `json:"sound"`
	PlayOnAwake bool      `json:"play_on_awake"`
	Interval    float32   `json:"interval"`

	sound   *resource.Sound
	elapsed float32
	plays   int
}

func (*SoundEmitter) TypeName() string { return "SoundEmitter" }

func (e *SoundEmitter) Awake() {
	if svc := e.Services(); svc != nil && svc.Resources != nil {
		e.sound, _ = resource.Get[*resource.Sound](svc.Resources, e.Sound)
	}
	if e.sound == nil {
		e.Services().Log.Debug("sound emitter has no sound", zap.Stringer("sound", e.Sound))
	}
	if e.PlayOnAwake {
		e.Play()
	}
}

func (e *SoundEmitter) Update(dt float32) {
	if e.Interval <= 0 {
		return
	}
	e.elapsed += dt
	if e.elapsed >= e.Interval {
		e.elapsed -= e.Interval
		e.Play()
	}
}

// Play starts the sound. Without a mixer or a resolved sound it only counts.
func (e *SoundEmitter) Play() {
	e.plays++
	svc := e.Services()
	if svc == nil || svc.Audio == nil || e.sound == nil {
		return
	}
	if _, err := svc.Audio.PlayTone(e.sound.Frequency, e.sound.Duration(), e.sound.Volume); err != nil {
		svc.Log.Warn("sound emitter", zap.Error(err))
	}
}

func (e *SoundEmitter) Plays() int { return e.plays }

func (e *SoundEmitter) RenderImGui(ctx *ui.Context) {
	ctx.Value("plays", e.plays)
}
