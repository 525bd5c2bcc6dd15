package vmath

import (
	"encoding/json"
	"fmt"
	"math"
)

// Vec3 is a float64 3D vector. It encodes to JSON as [x, y, z].
type Vec3 struct {
	X, Y, Z float64
}

var (
	Zero = Vec3{}
	One  = Vec3{1, 1, 1}
	Up   = Vec3{0, 1, 0}
)

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) LenSq() float64       { return v.Dot(v) }
func (v Vec3) Len() float64         { return math.Sqrt(v.LenSq()) }
func (v Vec3) Abs() Vec3            { return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)} }
func (v Vec3) Dist(o Vec3) float64  { return v.Sub(o).Len() }
func (v Vec3) String() string       { return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z) }
func (v Vec3) ApproxEq(o Vec3) bool { return v.Sub(o).LenSq() < 1e-12 }
func (v Vec3) WithY(y float64) Vec3 { return Vec3{v.X, y, v.Z} }
func (v Vec3) Neg() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) IsZero() bool         { return v == Zero }
func (v Vec3) Min(o Vec3) Vec3      { return Vec3{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z)} }
func (v Vec3) Max(o Vec3) Vec3      { return Vec3{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z)} }

func (v Vec3) Lerp(o Vec3, t float64) Vec3 { return v.Add(o.Sub(v).Scale(t)) }

// Normalize returns the unit vector, or zero for a zero vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// RotateY rotates v about the Y axis by deg degrees.
func (v Vec3) RotateY(deg float64) Vec3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

func (v *Vec3) UnmarshalJSON(data []byte) error {
	var a [3]float64
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("vec3: %w", err)
	}
	v.X, v.Y, v.Z = a[0], a[1], a[2]
	return nil
}
