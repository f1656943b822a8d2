// Package engine abstracts the physics backend behind one interface with
// two implementations: a volumetric (3D) variant and a planar (2D) variant.
// The variant is selected once per simulation run; nothing outside this
// package branches on it after construction.
//
// All engine-facing quantities are in meters and meters per second. The sim
// core converts to millimeters at its accessor boundary.
package engine

import (
	"fmt"
	"time"

	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

// Variant identifies which physics backend is active for a run.
type Variant int

const (
	// Volumetric is the full 3D backend.
	Volumetric Variant = iota
	// Planar is the 2D backend; bodies have no height and are always upright.
	Planar
)

func (v Variant) String() string {
	switch v {
	case Volumetric:
		return "volumetric"
	case Planar:
		return "planar"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant maps a flag/config string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "volumetric", "3d":
		return Volumetric, nil
	case "planar", "2d":
		return Planar, nil
	default:
		return 0, fmt.Errorf("unknown engine variant %q (want planar or volumetric)", s)
	}
}

// Body is an opaque handle to a rigid body owned by the physics backend.
// Handles are borrowed: the simulation core never frees them.
type Body interface {
	// Position returns the body's position in meters. Planar bodies report
	// Z == 0.
	Position() geom.Vector3

	// Pose returns the body's horizontal pose in meters plus whether the
	// body is upright. Planar bodies are always upright.
	Pose() (geom.Pose2, bool)

	// Velocity returns the body's linear velocity in m/s.
	Velocity() geom.Vector3

	// SetVelocity replaces the body's linear velocity. Planar bodies ignore
	// the Z component.
	SetVelocity(geom.Vector3)

	// Move places the body at pos (meters). When changeRotation is true the
	// body's orientation is set from rot (Euler angles; planar bodies use
	// only rot.Z).
	Move(pos geom.Vector3, rot geom.Vector3, changeRotation bool)

	// ResetDynamics zeroes the body's velocity.
	ResetDynamics()
}

// Engine steps a set of bodies forward in simulated time.
type Engine interface {
	Variant() Variant

	// StepLength is the fixed duration of one Step call.
	StepLength() time.Duration

	// Now is the monotonic simulation clock. It never decreases; repeated
	// reads within a tick return the same value.
	Now() time.Duration

	// NewBody registers a body at the given spawn state.
	NewBody(spawn BodySpawn) Body

	// Step advances every body by StepLength.
	Step()
}

// BodySpawn is the initial state for a new body.
type BodySpawn struct {
	Position geom.Vector3 // meters
	Yaw      geom.Angle
	// TiltFromVertical marks a volumetric body as fallen over when it
	// exceeds UprightTiltLimit. Ignored by the planar variant.
	TiltFromVertical geom.Angle
}

// UprightTiltLimit is the tilt from vertical beyond which a volumetric body
// is reported as not upright.
const UprightTiltLimit geom.Angle = 0.785398163397448 // 45°
