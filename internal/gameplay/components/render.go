package components

import (
	"github.com/google/uuid"

	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/resource"
)

// RenderComponent draws its owner as a mesh footprint in a material. Both
// resources are optional; without them a single glyph is drawn.
type RenderComponent struct {
	gameplay.ComponentBase
	Mesh     uuid.UUID `json:"mesh"`
	Material uuid.UUID `json:"material"`
	Glyph    string    `json:"glyph,omitempty"`
	Color    string    `json:"color,omitempty"`

	mesh     *resource.Mesh
	material *resource.Material
	fg       graphics.Color
}

func (*RenderComponent) TypeName() string { return "RenderComponent" }

// Awake resolves resource references. Unknown GUIDs fall back to the glyph.
func (r *RenderComponent) Awake() {
	r.fg = graphics.RGB(255, 255, 255)
	if c, err := graphics.ParseColor(r.Color); err == nil {
		r.fg = c
	}
	svc := r.Services()
	if svc == nil || svc.Resources == nil {
		return
	}
	if m, ok := resource.Get[*resource.Mesh](svc.Resources, r.Mesh); ok {
		r.mesh = m
	}
	if m, ok := resource.Get[*resource.Material](svc.Resources, r.Material); ok {
		r.material = m
	}
}

// Footprint returns the rows to draw, centred on the projected position.
func (r *RenderComponent) Footprint() []string {
	if r.mesh != nil {
		return r.mesh.Rows
	}
	return []string{string(r.rune())}
}

func (r *RenderComponent) rune() rune {
	if r.material != nil {
		return r.material.Rune()
	}
	for _, g := range r.Glyph {
		return g
	}
	return '#'
}

// Style is the cell used for every non-space footprint glyph.
func (r *RenderComponent) Style() (fg, bg graphics.Color) {
	if r.material != nil {
		return r.material.Fg(), r.material.BgColor()
	}
	return r.fg, graphics.Color{}
}
