package engine

import (
	"time"

	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

// PlanarEngine is the 2D backend: bodies live in the horizontal plane,
// integrate position from velocity each step, and are always upright.
type PlanarEngine struct {
	stepLength time.Duration
	now        time.Duration
	bodies     []*planarBody
}

// NewPlanar creates a planar engine with the given fixed step length.
func NewPlanar(stepLength time.Duration) *PlanarEngine {
	return &PlanarEngine{stepLength: stepLength}
}

func (e *PlanarEngine) Variant() Variant          { return Planar }
func (e *PlanarEngine) StepLength() time.Duration { return e.stepLength }
func (e *PlanarEngine) Now() time.Duration        { return e.now }

func (e *PlanarEngine) NewBody(spawn BodySpawn) Body {
	b := &planarBody{
		pos: spawn.Position.XY(),
		yaw: spawn.Yaw.Normalize(),
	}
	e.bodies = append(e.bodies, b)
	return b
}

func (e *PlanarEngine) Step() {
	dt := e.stepLength.Seconds()
	for _, b := range e.bodies {
		b.pos = b.pos.Add(b.vel.Scale(dt))
	}
	e.now += e.stepLength
}

type planarBody struct {
	pos geom.Vector2 // meters
	yaw geom.Angle
	vel geom.Vector2 // m/s
}

func (b *planarBody) Position() geom.Vector3 {
	return geom.Vector3{X: b.pos.X, Y: b.pos.Y}
}

func (b *planarBody) Pose() (geom.Pose2, bool) {
	return geom.Pose2{Translation: b.pos, Rotation: b.yaw}, true
}

func (b *planarBody) Velocity() geom.Vector3 {
	return geom.Vector3{X: b.vel.X, Y: b.vel.Y}
}

func (b *planarBody) SetVelocity(v geom.Vector3) {
	b.vel = v.XY()
}

func (b *planarBody) Move(pos geom.Vector3, rot geom.Vector3, changeRotation bool) {
	b.pos = pos.XY()
	if changeRotation {
		b.yaw = geom.Angle(rot.Z).Normalize()
	}
}

func (b *planarBody) ResetDynamics() {
	b.vel = geom.Vector2{}
}

var _ Engine = (*PlanarEngine)(nil)
