package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Options configure the output device.
type Options struct {
	Enabled    bool
	SampleRate int
	Buffer     time.Duration
}

// Voice is one playing sound.
type Voice struct {
	ctrl *beep.Ctrl
	n    int
}

// Samples is the voice length in sample frames.
func (v *Voice) Samples() int { return v.n }

// Mixer routes tones to the speaker. When audio is disabled or the device
// cannot be opened the mixer runs silent: voices are built but never played.
type Mixer struct {
	mu     sync.Mutex
	log    *zap.Logger
	opts   Options
	rate   beep.SampleRate
	mixer  *beep.Mixer
	voices []*Voice
	live   bool
	played int
}

func NewMixer(opts Options, log *zap.Logger) *Mixer {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 100 * time.Millisecond
	}
	return &Mixer{
		log:   log,
		opts:  opts,
		rate:  beep.SampleRate(opts.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker. A device failure is returned but leaves the mixer
// usable in silent mode.
func (m *Mixer) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live || !m.opts.Enabled {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(m.opts.Buffer)); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	speaker.Play(m.mixer)
	m.live = true
	m.log.Info("audio device opened",
		zap.Int("sample_rate", m.opts.SampleRate),
		zap.Duration("buffer", m.opts.Buffer))
	return nil
}

func (m *Mixer) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// Played counts the voices started since creation, silent ones included.
func (m *Mixer) Played() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played
}

// PlayTone plays a sine tone. Volume is linear in [0, 1].
func (m *Mixer) PlayTone(freq float64, duration time.Duration, volume float64) (*Voice, error) {
	sine, err := generators.SineTone(m.rate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.1fHz: %w", freq, err)
	}
	n := m.rate.N(duration)
	v := &Voice{
		ctrl: &beep.Ctrl{Streamer: withVolume(beep.Take(n, sine), volume)},
		n:    n,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.played++
	if !m.live {
		return v, nil
	}
	speaker.Lock()
	m.mixer.Add(v.ctrl)
	speaker.Unlock()
	m.voices = append(m.voices, v)
	return v, nil
}

// withVolume converts linear volume to beep's log2 scale; zero is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}

// Stop silences every playing voice.
func (m *Mixer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.live {
		return
	}
	speaker.Lock()
	for _, v := range m.voices {
		v.ctrl.Paused = true
	}
	m.mixer.Clear()
	speaker.Unlock()
	m.voices = nil
}

// Close stops playback and releases the device.
func (m *Mixer) Close() {
	m.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live {
		speaker.Close()
		m.live = false
	}
}
