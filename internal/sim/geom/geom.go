// Package geom provides the small fixed-size vector and pose types used by
// the simulation core. Positions are in millimeters and velocities in
// millimeters per second unless a caller states otherwise; the engine
// adapters own the meter conversion.
package geom

import "math"

// Angle is a rotation in radians.
type Angle float64

// Normalize maps the angle into the canonical range (-π, π].
func (a Angle) Normalize() Angle {
	x := math.Remainder(float64(a), 2*math.Pi)
	if x <= -math.Pi {
		x += 2 * math.Pi
	}
	return Angle(x)
}

// Vector2 is a point or direction in the horizontal plane.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + w.
func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vector2) Sub(w Vector2) Vector2 {
	return Vector2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Norm returns the Euclidean length of v.
func (v Vector2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rotate returns v rotated in-plane by a.
func (v Vector2) Rotate(a Angle) Vector2 {
	sin, cos := math.Sincos(float64(a))
	return Vector2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// IsZero reports whether both components are exactly zero. The ball model's
// motion-state transitions are defined on exact zeroes, so no epsilon here.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Angle returns the direction of v.
func (v Vector2) Angle() Angle {
	return Angle(math.Atan2(v.Y, v.X))
}

// Vector3 is a point or direction in space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// XY returns the horizontal components of v.
func (v Vector3) XY() Vector2 {
	return Vector2{v.X, v.Y}
}

// WithXY replaces the horizontal components of v, keeping Z.
func (v Vector3) WithXY(w Vector2) Vector3 {
	return Vector3{w.X, w.Y, v.Z}
}

// Pose2 is a position plus heading in the horizontal plane.
type Pose2 struct {
	Translation Vector2 `json:"translation"`
	Rotation    Angle   `json:"rotation"`
}

// Compose returns the pose q expressed in p's frame: q's translation is
// rotated by p's rotation and offset by p's translation, and the rotations
// add (normalized).
func (p Pose2) Compose(q Pose2) Pose2 {
	return Pose2{
		Translation: p.Translation.Add(q.Translation.Rotate(p.Rotation)),
		Rotation:    (p.Rotation + q.Rotation).Normalize(),
	}
}
