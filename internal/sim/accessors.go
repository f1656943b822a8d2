package sim

import (
	"github.com/banshee-data/pitchsim/internal/sim/engine"
	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

// millimetersPerMeter converts between the backend's meters and the world
// model's working units.
const millimetersPerMeter = 1000.0

// Position reads a body's horizontal position in millimeters.
func Position(body engine.Body) geom.Vector2 {
	return body.Position().XY().Scale(millimetersPerMeter)
}

// Position3D reads a body's position in millimeters. The planar backend
// reports zero height.
func Position3D(body engine.Body) geom.Vector3 {
	return body.Position().Scale(millimetersPerMeter)
}

// BodyPose reads a body's horizontal pose in millimeters plus whether the
// body is upright.
func BodyPose(body engine.Body) (geom.Pose2, bool) {
	pose, upright := body.Pose()
	pose.Translation = pose.Translation.Scale(millimetersPerMeter)
	return pose, upright
}

// MoveBody places a body at pos (millimeters, converted to engine units)
// with the given Euler rotation.
func MoveBody(body engine.Body, pos, rot geom.Vector3, changeRotation, resetDynamics bool) {
	body.Move(pos.Scale(1/millimetersPerMeter), rot, changeRotation)
	if resetDynamics {
		body.ResetDynamics()
	}
}

// MoveBall places the ball at pos (millimeters) without touching its
// orientation.
func MoveBall(ball engine.Body, pos geom.Vector3, resetDynamics bool) {
	if ball == nil {
		return
	}
	ball.Move(pos.Scale(1/millimetersPerMeter), geom.Vector3{}, false)
	if resetDynamics {
		ball.ResetDynamics()
	}
}
