package components

import (
	"math"

	"github.com/resonance/engine/internal/core/vmath"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/ui"
)

// CellAspect is the height of a terminal cell over its width.
const CellAspect = 2.0

// Camera projects world positions into a cell grid. It looks down -Z of its
// owner, turned by the owner's yaw.
type Camera struct {
	gameplay.ComponentBase
	FOV  float64 `json:"fov"`
	Near float64 `json:"near"`
	Far  float64 `json:"far"`
}

func NewCamera() *Camera { return &Camera{FOV: 60, Near: 0.1, Far: 100} }

func (*Camera) TypeName() string { return "Camera" }

// Project maps p to cell coordinates in a width x height target. ok is false
// when p is behind the camera or outside the near/far range.
func (c *Camera) Project(p vmath.Vec3, width, height int) (x, y int, depth float64, ok bool) {
	g := c.GameObject()
	if g == nil {
		return 0, 0, 0, false
	}
	rel := p.Sub(g.Transform.Position).RotateY(-g.Transform.Rotation.Y)
	depth = -rel.Z
	if depth < c.Near || (c.Far > 0 && depth > c.Far) {
		return 0, 0, 0, false
	}
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 60
	}
	f := float64(height) / 2 / math.Tan(fov*math.Pi/360)
	x = width/2 + int(math.Round(rel.X/depth*f*CellAspect))
	y = height/2 - int(math.Round(rel.Y/depth*f))
	return x, y, depth, true
}

func (c *Camera) RenderImGui(ctx *ui.Context) {
	ctx.Value("fov", c.FOV)
}
