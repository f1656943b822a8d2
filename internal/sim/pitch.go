package sim

import (
	"fmt"

	"github.com/banshee-data/pitchsim/internal/sim/engine"
	"github.com/banshee-data/pitchsim/internal/sim/geom"
	"github.com/banshee-data/pitchsim/internal/sim/scene"
)

// PitchRoot is the scene root name used by the standard pitch builder.
const PitchRoot = "Pitch"

// PitchConfig describes the scene BuildPitch constructs.
type PitchConfig struct {
	// PlayersPerSide is how many robots each team fields.
	PlayersPerSide int
	// RobotsPerTeam is the second team's numbering offset; 0 means
	// DefaultRobotsPerTeam.
	RobotsPerTeam int
	// ExtraNumbers are raw identifiers for bodies in the extras group
	// (substitute robots standing at the sideline).
	ExtraNumbers []int
	// WithBall adds a ball body at the center mark.
	WithBall bool
}

// BuildPitch constructs the standard scene hierarchy the world model
// expects: a robots group with both teams' fielded players, an extras group,
// and optionally a ball. Robots spawn in two rows on their native half; real
// placement happens afterwards via setup poses. Returns the scene, the robot
// objects in group order, and the ball body (nil without one).
func BuildPitch(eng engine.Engine, cfg PitchConfig) (*scene.Scene, []*scene.Object, engine.Body) {
	if cfg.RobotsPerTeam <= 0 {
		cfg.RobotsPerTeam = DefaultRobotsPerTeam
	}

	sc := scene.New(PitchRoot)
	robots := sc.Root().AddChild(RobotsGroup, nil)
	extras := sc.Root().AddChild(ExtrasGroup, nil)

	var objects []*scene.Object
	spawn := func(group *scene.Object, number, slot int, side float64) *scene.Object {
		// Two rows per half, half a meter apart.
		body := eng.NewBody(engine.BodySpawn{
			Position: geom.Vector3{X: side * (3.0 + 0.5*float64(slot/4)), Y: -1.5 + float64(slot%4)},
		})
		return group.AddChild(fmt.Sprintf("robot%d", number), body)
	}

	for i := 0; i < cfg.PlayersPerSide; i++ {
		objects = append(objects, spawn(robots, i+1, i, 1))
	}
	for i := 0; i < cfg.PlayersPerSide; i++ {
		objects = append(objects, spawn(robots, cfg.RobotsPerTeam+i+1, i, -1))
	}
	for i, n := range cfg.ExtraNumbers {
		// Extras stand at the sideline on the half matching their team.
		side := 1.0
		if n > cfg.RobotsPerTeam {
			side = -1.0
		}
		objects = append(objects, spawn(extras, n, i, side))
	}

	var ball engine.Body
	if cfg.WithBall {
		ball = eng.NewBody(engine.BodySpawn{})
		sc.Root().AddChild("ball", ball)
	}
	return sc, objects, ball
}
