package sim

import (
	"math"
	"testing"
	"time"

	"github.com/banshee-data/pitchsim/internal/sim/engine"
	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

func TestAccessorScaling(t *testing.T) {
	for _, eng := range []engine.Engine{
		engine.NewPlanar(10 * time.Millisecond),
		engine.NewVolumetric(10 * time.Millisecond),
	} {
		body := eng.NewBody(engine.BodySpawn{})

		// Millimeters in, meters at the engine, millimeters back out.
		MoveBody(body, geom.Vector3{X: 1234, Y: -567, Z: 89}, geom.Vector3{Z: 0.5}, true, false)

		enginePos := body.Position()
		if math.Abs(enginePos.X-1.234) > 1e-12 || math.Abs(enginePos.Y+0.567) > 1e-12 {
			t.Errorf("%v: engine position = %+v, want meters", eng.Variant(), enginePos)
		}

		if got := Position(body); math.Abs(got.X-1234) > 1e-9 || math.Abs(got.Y+567) > 1e-9 {
			t.Errorf("%v: Position = %+v, want (1234, -567)", eng.Variant(), got)
		}

		got3 := Position3D(body)
		wantZ := 89.0
		if eng.Variant() == engine.Planar {
			wantZ = 0 // planar bodies have no height
		}
		if math.Abs(got3.Z-wantZ) > 1e-9 {
			t.Errorf("%v: height = %v, want %v", eng.Variant(), got3.Z, wantZ)
		}

		pose, _ := BodyPose(body)
		if math.Abs(pose.Translation.X-1234) > 1e-9 {
			t.Errorf("%v: BodyPose translation = %+v", eng.Variant(), pose.Translation)
		}
		if math.Abs(float64(pose.Rotation)-0.5) > 1e-12 {
			t.Errorf("%v: BodyPose rotation = %v, want 0.5", eng.Variant(), pose.Rotation)
		}
	}
}

func TestMoveBallNil(t *testing.T) {
	// A scene without a ball must not crash movement commands.
	MoveBall(nil, geom.Vector3{X: 1}, true)
}

func TestMoveBodyResetDynamics(t *testing.T) {
	eng := engine.NewPlanar(10 * time.Millisecond)
	body := eng.NewBody(engine.BodySpawn{})
	body.SetVelocity(geom.Vector3{X: 2})

	MoveBody(body, geom.Vector3{}, geom.Vector3{}, false, false)
	if body.Velocity().XY().IsZero() {
		t.Error("velocity cleared without resetDynamics")
	}

	MoveBody(body, geom.Vector3{}, geom.Vector3{}, false, true)
	if !body.Velocity().XY().IsZero() {
		t.Error("velocity kept despite resetDynamics")
	}
}
