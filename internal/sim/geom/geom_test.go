package geom

import (
	"math"
	"testing"
)

const eps = 1e-12

func TestAngleNormalize(t *testing.T) {
	cases := []struct {
		in   Angle
		want Angle
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi, math.Pi},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2},
		{5 * math.Pi / 2, math.Pi / 2},
	}
	for _, c := range cases {
		got := c.in.Normalize()
		if math.Abs(float64(got-c.want)) > eps {
			t.Errorf("Normalize(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAngleNormalizeRange(t *testing.T) {
	for a := -25.0; a <= 25.0; a += 0.37 {
		n := float64(Angle(a).Normalize())
		if n <= -math.Pi || n > math.Pi {
			t.Errorf("Normalize(%v) = %v outside (-π, π]", a, n)
		}
	}
}

func TestVector2Rotate(t *testing.T) {
	v := Vector2{1, 0}

	r := v.Rotate(math.Pi / 2)
	if math.Abs(r.X) > eps || math.Abs(r.Y-1) > eps {
		t.Errorf("rotate by π/2: got %+v, want (0,1)", r)
	}

	r = v.Rotate(math.Pi)
	if math.Abs(r.X+1) > eps || math.Abs(r.Y) > eps {
		t.Errorf("rotate by π: got %+v, want (-1,0)", r)
	}

	// Rotation preserves length.
	w := Vector2{3, -4}
	if got := w.Rotate(1.234).Norm(); math.Abs(got-5) > eps {
		t.Errorf("rotation changed length: got %v, want 5", got)
	}
}

func TestVector2IsZero(t *testing.T) {
	if !(Vector2{}).IsZero() {
		t.Error("zero vector not reported as zero")
	}
	if (Vector2{1e-300, 0}).IsZero() {
		t.Error("tiny non-zero vector reported as zero")
	}
}

func TestPose2Compose(t *testing.T) {
	// Composing with the π pose negates the translation and flips the heading.
	mirror := Pose2{Rotation: math.Pi}
	p := Pose2{Translation: Vector2{100, -250}, Rotation: 0.5}

	q := mirror.Compose(p)
	if math.Abs(q.Translation.X+100) > 1e-9 || math.Abs(q.Translation.Y-250) > 1e-9 {
		t.Errorf("translation = %+v, want (-100, 250)", q.Translation)
	}
	if math.Abs(float64(q.Rotation-(Angle(0.5+math.Pi)).Normalize())) > eps {
		t.Errorf("rotation = %v, want %v", q.Rotation, (Angle(0.5 + math.Pi)).Normalize())
	}

	// Applying the mirror twice is the identity.
	r := mirror.Compose(q)
	if math.Abs(r.Translation.X-p.Translation.X) > 1e-9 ||
		math.Abs(r.Translation.Y-p.Translation.Y) > 1e-9 ||
		math.Abs(float64(r.Rotation-p.Rotation)) > eps {
		t.Errorf("mirror twice: got %+v, want %+v", r, p)
	}
}

func TestVector3XYRoundTrip(t *testing.T) {
	v := Vector3{1, 2, 3}
	if got := v.WithXY(v.XY().Scale(2)); got != (Vector3{2, 4, 3}) {
		t.Errorf("WithXY: got %+v", got)
	}
}
