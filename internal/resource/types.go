package resource

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resonance/engine/internal/graphics"
)

// Resource is anything loaded from a manifest and shared by GUID.
type Resource interface {
	GUID() uuid.UUID
	TypeName() string
}

// Base carries the identity fields every resource has.
type Base struct {
	ID   uuid.UUID `json:"guid"`
	Name string    `json:"name,omitempty"`
}

func (b *Base) GUID() uuid.UUID { return b.ID }

// Material is a glyph and its colours.
type Material struct {
	Base
	Glyph string `json:"glyph"`
	Color string `json:"color"`
	Bg    string `json:"background,omitempty"`

	fg, bg graphics.Color
}

func (*Material) TypeName() string { return "Material" }

func (m *Material) validate() error {
	if m.Glyph == "" {
		m.Glyph = "#"
	}
	var err error
	if m.Color != "" {
		if m.fg, err = graphics.ParseColor(m.Color); err != nil {
			return err
		}
	} else {
		m.fg = graphics.RGB(255, 255, 255)
	}
	if m.Bg != "" {
		if m.bg, err = graphics.ParseColor(m.Bg); err != nil {
			return err
		}
	}
	return nil
}

func (m *Material) Rune() rune {
	for _, r := range m.Glyph {
		return r
	}
	return '#'
}

func (m *Material) Fg() graphics.Color      { return m.fg }
func (m *Material) BgColor() graphics.Color { return m.bg }

// Mesh is a glyph footprint: rows of characters centred on the owner's
// position. Spaces are transparent.
type Mesh struct {
	Base
	Rows []string `json:"rows"`
}

func (*Mesh) TypeName() string { return "Mesh" }

func (m *Mesh) validate() error {
	if len(m.Rows) == 0 {
		return fmt.Errorf("mesh %s: no rows", m.ID)
	}
	return nil
}

// Size is the footprint in cells.
func (m *Mesh) Size() (w, h int) {
	for _, r := range m.Rows {
		w = max(w, len([]rune(r)))
	}
	return w, len(m.Rows)
}

// Sound is a synthesised tone.
type Sound struct {
	Base
	Frequency  float64 `json:"frequency"`
	DurationMs int     `json:"duration_ms"`
	Volume     float64 `json:"volume"`
}

func (*Sound) TypeName() string { return "Sound" }

func (s *Sound) validate() error {
	if s.Frequency <= 0 {
		return fmt.Errorf("sound %s: frequency must be positive", s.ID)
	}
	if s.DurationMs <= 0 {
		s.DurationMs = 100
	}
	if s.Volume <= 0 {
		s.Volume = 1
	}
	return nil
}

func (s *Sound) Duration() time.Duration { return time.Duration(s.DurationMs) * time.Millisecond }

// Script names a Lua behaviour defined in the scripts directory.
type Script struct {
	Base
	Behaviour string `json:"behaviour"`
}

func (*Script) TypeName() string { return "Script" }

func (s *Script) validate() error {
	if s.Behaviour == "" {
		return fmt.Errorf("script %s: behaviour is required", s.ID)
	}
	return nil
}
