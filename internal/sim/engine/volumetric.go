package engine

import (
	"math"
	"time"

	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

// VolumetricEngine is the 3D backend. Bodies carry full 3D position and
// velocity plus a tilt from vertical; a body tilted past UprightTiltLimit is
// reported as fallen.
type VolumetricEngine struct {
	stepLength time.Duration
	now        time.Duration
	bodies     []*volumetricBody
}

// NewVolumetric creates a volumetric engine with the given fixed step length.
func NewVolumetric(stepLength time.Duration) *VolumetricEngine {
	return &VolumetricEngine{stepLength: stepLength}
}

func (e *VolumetricEngine) Variant() Variant          { return Volumetric }
func (e *VolumetricEngine) StepLength() time.Duration { return e.stepLength }
func (e *VolumetricEngine) Now() time.Duration        { return e.now }

func (e *VolumetricEngine) NewBody(spawn BodySpawn) Body {
	b := &volumetricBody{
		pos:  spawn.Position,
		yaw:  spawn.Yaw.Normalize(),
		tilt: spawn.TiltFromVertical,
	}
	e.bodies = append(e.bodies, b)
	return b
}

func (e *VolumetricEngine) Step() {
	dt := e.stepLength.Seconds()
	for _, b := range e.bodies {
		b.pos = b.pos.Add(b.vel.Scale(dt))
		if b.pos.Z < 0 {
			// The floor is rigid; bodies do not sink below it.
			b.pos.Z = 0
			if b.vel.Z < 0 {
				b.vel.Z = 0
			}
		}
	}
	e.now += e.stepLength
}

type volumetricBody struct {
	pos  geom.Vector3 // meters
	yaw  geom.Angle
	tilt geom.Angle // from vertical
	vel  geom.Vector3
}

func (b *volumetricBody) Position() geom.Vector3 { return b.pos }

func (b *volumetricBody) Pose() (geom.Pose2, bool) {
	upright := math.Abs(float64(b.tilt)) < float64(UprightTiltLimit)
	return geom.Pose2{Translation: b.pos.XY(), Rotation: b.yaw}, upright
}

func (b *volumetricBody) Velocity() geom.Vector3 { return b.vel }

func (b *volumetricBody) SetVelocity(v geom.Vector3) { b.vel = v }

func (b *volumetricBody) Move(pos geom.Vector3, rot geom.Vector3, changeRotation bool) {
	b.pos = pos
	if changeRotation {
		b.yaw = geom.Angle(rot.Z).Normalize()
		// rot.X/rot.Y collapse into the single tilt the body tracks.
		b.tilt = geom.Angle(math.Hypot(rot.X, rot.Y))
	}
}

func (b *volumetricBody) ResetDynamics() {
	b.vel = geom.Vector3{}
}

var _ Engine = (*VolumetricEngine)(nil)
