package engine

import (
	"math"
	"testing"
	"time"

	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

func TestParseVariant(t *testing.T) {
	cases := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"planar", Planar, false},
		{"2d", Planar, false},
		{"volumetric", Volumetric, false},
		{"3d", Volumetric, false},
		{"ode", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseVariant(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseVariant(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVariant(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseVariant(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPlanarStepIntegratesPosition(t *testing.T) {
	e := NewPlanar(10 * time.Millisecond)
	b := e.NewBody(BodySpawn{Position: geom.Vector3{X: 1, Y: 2}})
	b.SetVelocity(geom.Vector3{X: 1, Y: -2, Z: 99}) // Z must be ignored

	for i := 0; i < 100; i++ {
		e.Step()
	}

	pos := b.Position()
	if math.Abs(pos.X-2) > 1e-9 || math.Abs(pos.Y-0) > 1e-9 {
		t.Errorf("position after 1s = %+v, want (2, 0, 0)", pos)
	}
	if pos.Z != 0 {
		t.Errorf("planar body reported height %v, want 0", pos.Z)
	}
	if e.Now() != time.Second {
		t.Errorf("Now() = %v, want 1s", e.Now())
	}
}

func TestPlanarBodyAlwaysUpright(t *testing.T) {
	e := NewPlanar(time.Millisecond)
	b := e.NewBody(BodySpawn{Yaw: 3 * math.Pi})
	pose, upright := b.Pose()
	if !upright {
		t.Error("planar body must be upright")
	}
	if math.Abs(float64(pose.Rotation-math.Pi)) > 1e-12 {
		t.Errorf("spawn yaw not normalized: got %v", pose.Rotation)
	}
}

func TestVolumetricUprightness(t *testing.T) {
	e := NewVolumetric(time.Millisecond)

	standing := e.NewBody(BodySpawn{})
	if _, upright := standing.Pose(); !upright {
		t.Error("untilted body must be upright")
	}

	fallen := e.NewBody(BodySpawn{TiltFromVertical: math.Pi / 2})
	if _, upright := fallen.Pose(); upright {
		t.Error("body tilted 90° must not be upright")
	}
}

func TestVolumetricFloorClamp(t *testing.T) {
	e := NewVolumetric(10 * time.Millisecond)
	b := e.NewBody(BodySpawn{Position: geom.Vector3{Z: 0.05}})
	b.SetVelocity(geom.Vector3{Z: -10})

	for i := 0; i < 10; i++ {
		e.Step()
	}
	if b.Position().Z != 0 {
		t.Errorf("body sank below floor: z = %v", b.Position().Z)
	}
	if b.Velocity().Z != 0 {
		t.Errorf("downward velocity kept at floor: vz = %v", b.Velocity().Z)
	}
}

func TestMoveAndResetDynamics(t *testing.T) {
	for _, e := range []Engine{NewPlanar(time.Millisecond), NewVolumetric(time.Millisecond)} {
		b := e.NewBody(BodySpawn{})
		b.SetVelocity(geom.Vector3{X: 1})
		b.Move(geom.Vector3{X: 3, Y: 4}, geom.Vector3{Z: math.Pi / 4}, true)
		b.ResetDynamics()

		if got := b.Velocity(); !got.XY().IsZero() || got.Z != 0 {
			t.Errorf("%v: velocity after reset = %+v", e.Variant(), got)
		}
		pose, _ := b.Pose()
		if pose.Translation != (geom.Vector2{X: 3, Y: 4}) {
			t.Errorf("%v: translation after move = %+v", e.Variant(), pose.Translation)
		}
		if math.Abs(float64(pose.Rotation)-math.Pi/4) > 1e-12 {
			t.Errorf("%v: rotation after move = %v", e.Variant(), pose.Rotation)
		}

		// Move without changeRotation keeps the heading.
		b.Move(geom.Vector3{}, geom.Vector3{Z: math.Pi}, false)
		pose, _ = b.Pose()
		if math.Abs(float64(pose.Rotation)-math.Pi/4) > 1e-12 {
			t.Errorf("%v: rotation changed without changeRotation", e.Variant())
		}
	}
}
