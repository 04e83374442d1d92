// Package geo holds the small amount of geometry shared by the synthesis
// packages: a scene-space vector and helpers over geographic routes.
package geo

import "math"

// Vec3 is a point or direction in scene space. X runs along the route,
// Y is up and Z is the lateral offset from the centerline, all in metres.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// V is a shorthand constructor for Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Slope returns the rise over the horizontal run from v to w. Zero when the
// two points share the same ground position.
func (v Vec3) Slope(w Vec3) float64 {
	run := math.Hypot(w.X-v.X, w.Z-v.Z)
	if run < 1e-12 {
		return 0
	}
	return (w.Y - v.Y) / run
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
