package sim

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/pitchsim/internal/sim/engine"
	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

// DefaultCurveSigmaScale is the standard deviation of the curve-angle draw
// per second of elapsed sample time, in radians.
const DefaultCurveSigmaScale = 0.015

// PlanarBallHeight is the synthesized ball height in millimeters under the
// planar backend, which has no height axis of its own.
const PlanarBallHeight = 50.0

// BallModel estimates ball velocity from consecutive position samples and,
// under the planar backend, overlays a randomized curve on the ball's native
// velocity. It keeps no history beyond the previous sample.
//
// The model is private to one robot instance and must only be touched from
// the single simulation thread.
type BallModel struct {
	variant         engine.Variant
	curveSigmaScale float64
	src             rand.Source

	hasSample    bool
	lastPosition geom.Vector3 // mm, canonical frame
	lastTime     time.Duration
	lastVelocity geom.Vector3 // mm/s
	hadMotion    bool
	curve        geom.Angle
}

// NewBallModel creates a ball model for the given backend variant. src seeds
// the curve-angle draws; a nil src falls back to the global source, so tests
// should always pass one.
func NewBallModel(variant engine.Variant, curveSigmaScale float64, src rand.Source) *BallModel {
	if curveSigmaScale <= 0 {
		curveSigmaScale = DefaultCurveSigmaScale
	}
	return &BallModel{
		variant:         variant,
		curveSigmaScale: curveSigmaScale,
		src:             src,
	}
}

// Sample records one ball position observation (millimeters, canonical
// frame) at the given monotonic timestamp and returns the velocity estimate
// in mm/s.
//
// The estimate is 1000·Δposition/Δt(ms). With no previous sample, or when
// the timestamp has not advanced, the previous estimate is returned
// unchanged (zero before the first valid pair) — two queries within the same
// clock tick must not divide by zero.
//
// Under the planar variant a valid sample also rewrites the ball's native
// horizontal velocity, rotated by the current curve angle. The angle is
// redrawn from N(0, curveSigmaScale·Δt_seconds) only on a transition from
// zero to non-zero horizontal velocity, and snaps back to zero whenever the
// horizontal velocity is exactly zero.
func (m *BallModel) Sample(ball engine.Body, position geom.Vector3, now time.Duration) geom.Vector3 {
	velocity := m.lastVelocity

	if m.hasSample && now != m.lastTime {
		elapsedMS := float64(now-m.lastTime) / float64(time.Millisecond)
		velocity = position.Sub(m.lastPosition).Scale(1000 / elapsedMS)

		if m.variant == engine.Planar {
			if !m.hadMotion && !velocity.XY().IsZero() {
				sigma := m.curveSigmaScale * (now - m.lastTime).Seconds()
				m.curve = geom.Angle(distuv.Normal{Mu: 0, Sigma: sigma, Src: m.src}.Rand())
			}
			if velocity.XY().IsZero() {
				m.curve = 0
			}
			native := ball.Velocity()
			ball.SetVelocity(native.WithXY(native.XY().Rotate(m.curve)))
		}
	}

	m.lastPosition = position
	m.lastTime = now
	m.hasSample = true
	m.lastVelocity = velocity
	m.hadMotion = !velocity.XY().IsZero()
	return velocity
}

// CurveAngle returns the currently applied curve perturbation.
func (m *BallModel) CurveAngle() geom.Angle { return m.curve }

// ApplyBallFriction decays the ball's horizontal speed by friction (m/s²)
// over one engine step, scaling the velocity vector without changing its
// direction. A decay that would cross zero sets the velocity to exactly
// zero; speed never goes negative. Planar variant only — the volumetric
// backend is expected to model its own rolling resistance.
func ApplyBallFriction(eng engine.Engine, ball engine.Body, friction float64) {
	if eng.Variant() != engine.Planar || ball == nil {
		return
	}
	velocity := ball.Velocity().XY()
	speed := velocity.Norm()
	newSpeed := speed - friction*eng.StepLength().Seconds()
	if newSpeed <= 0 {
		ball.SetVelocity(geom.Vector3{})
		return
	}
	ball.SetVelocity(geom.Vector3{}.WithXY(velocity.Scale(newSpeed / speed)))
}
