package sim

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/banshee-data/pitchsim/internal/sim/engine"
	"github.com/banshee-data/pitchsim/internal/sim/geom"
	"github.com/banshee-data/pitchsim/internal/sim/scene"
)

// DefaultRobotsPerTeam is the numbering offset between the two teams: raw
// identifiers 1..DefaultRobotsPerTeam belong to the first team, everything
// above it to the second.
const DefaultRobotsPerTeam = 20

// Scene group names holding the rigid bodies relevant to world-state
// extraction.
const (
	RobotsGroup = "robots"
	ExtrasGroup = "extras"
)

// Config tunes one Robot instance.
type Config struct {
	// RobotsPerTeam is the team numbering offset; 0 means DefaultRobotsPerTeam.
	RobotsPerTeam int
	// CurveSigmaScale is the curve-angle standard deviation per second of
	// elapsed time; 0 means DefaultCurveSigmaScale.
	CurveSigmaScale float64
	// RandomSource seeds the ball model's curve draws. Tests should pass a
	// deterministic source.
	RandomSource rand.Source
}

type rosterEntry struct {
	number int
	body   engine.Body
}

// Robot is the ground-truth view of the world from one simulated robot. The
// roster partition is computed once at construction; the simulated body set
// is fixed for the lifetime of a run.
type Robot struct {
	eng           engine.Engine
	body          engine.Body
	name          string
	number        int
	firstTeam     bool
	robotsPerTeam int
	frame         FrameNormalizer

	firstTeamRobots  []rosterEntry
	secondTeamRobots []rosterEntry

	// ball is the run-scoped shared ball body: set once via SetBall, read
	// on every query. May stay nil in scenes without a ball.
	ball      engine.Body
	ballModel *BallModel
}

// NewRobot builds the world-model view for the robot backed by self. It
// resolves the robots and extras groups once and partitions every other body
// by team. An unresolvable group or an unparseable identifier is an error;
// the world model is meaningless with a partial roster, so callers should
// treat it as fatal.
func NewRobot(eng engine.Engine, sc *scene.Scene, self *scene.Object, cfg Config) (*Robot, error) {
	if cfg.RobotsPerTeam <= 0 {
		cfg.RobotsPerTeam = DefaultRobotsPerTeam
	}

	number, err := scene.TrailingNumber(self.FullName())
	if err != nil {
		return nil, fmt.Errorf("sim: own identity: %w", err)
	}

	r := &Robot{
		eng:           eng,
		body:          self.Body(),
		name:          self.FullName(),
		number:        number,
		firstTeam:     number <= cfg.RobotsPerTeam,
		robotsPerTeam: cfg.RobotsPerTeam,
		ballModel:     NewBallModel(eng.Variant(), cfg.CurveSigmaScale, cfg.RandomSource),
	}
	r.frame = FrameNormalizer{Mirrored: r.firstTeam}

	root := sc.Root().Name()
	for _, group := range []string{RobotsGroup, ExtrasGroup} {
		obj, err := sc.Resolve(root + scene.Separator + group)
		if err != nil {
			return nil, fmt.Errorf("sim: roster: %w", err)
		}
		for i := 0; i < obj.ChildCount(); i++ {
			child := obj.Child(i)
			n, err := scene.TrailingNumber(child.FullName())
			if err != nil {
				return nil, fmt.Errorf("sim: roster: %w", err)
			}
			if n == number {
				continue
			}
			entry := rosterEntry{number: n, body: child.Body()}
			if n <= cfg.RobotsPerTeam {
				r.firstTeamRobots = append(r.firstTeamRobots, entry)
			} else {
				r.secondTeamRobots = append(r.secondTeamRobots, entry)
			}
		}
	}

	return r, nil
}

// SetBall installs the shared ball body. Call once per run before the first
// WorldState query; a multi-threaded host must serialize this against reads.
func (r *Robot) SetBall(ball engine.Body) { r.ball = ball }

// Name returns the robot's dotted scene path.
func (r *Robot) Name() string { return r.name }

// Number returns the robot's raw scene identifier.
func (r *Robot) Number() int { return r.number }

// PlayerNumber returns the robot's number relative to its own team.
func (r *Robot) PlayerNumber() int {
	if r.firstTeam {
		return r.number
	}
	return r.number - r.robotsPerTeam
}

// FirstTeam reports whether this robot plays on the mirrored-frame team.
func (r *Robot) FirstTeam() bool { return r.firstTeam }

// WorldState assembles the ground-truth snapshot: ball state (with velocity
// estimation), own pose, and every other player with team-relative numbering,
// all in the canonical frame. Its only side effect is the ball model's
// transient state (and, under the planar backend, the curve write-back to the
// ball body).
func (r *Robot) WorldState() WorldSnapshot {
	var snap WorldSnapshot

	if r.ball != nil {
		position := Position3D(r.ball)
		if r.eng.Variant() == engine.Planar {
			position.Z = PlanarBallHeight
		}
		position = r.frame.Position(position)
		velocity := r.ballModel.Sample(r.ball, position, r.eng.Now())
		snap.Balls = append(snap.Balls, BallState{Position: position, Velocity: velocity})
	}

	ownPose, _ := BodyPose(r.body)
	snap.OwnPose = r.frame.Pose(ownPose)

	firstTeam := make([]PlayerSnapshot, 0, len(r.firstTeamRobots))
	for _, e := range r.firstTeamRobots {
		pose, upright := BodyPose(e.body)
		firstTeam = append(firstTeam, PlayerSnapshot{
			Number:  e.number,
			Pose:    r.frame.Pose(pose),
			Upright: upright,
		})
	}
	secondTeam := make([]PlayerSnapshot, 0, len(r.secondTeamRobots))
	for _, e := range r.secondTeamRobots {
		pose, upright := BodyPose(e.body)
		secondTeam = append(secondTeam, PlayerSnapshot{
			Number:  e.number - r.robotsPerTeam,
			Pose:    r.frame.Pose(pose),
			Upright: upright,
		})
	}

	if r.firstTeam {
		snap.OwnTeamPlayers, snap.OpponentTeamPlayers = firstTeam, secondTeam
	} else {
		snap.OwnTeamPlayers, snap.OpponentTeamPlayers = secondTeam, firstTeam
	}
	return snap
}

// OdometryPose derives the robot-relative odometry pose from a canonical
// pose: rotated by π for first-team robots so every robot's odometry frame
// faces the opponent goal.
func (r *Robot) OdometryPose(pose geom.Pose2) geom.Pose2 {
	return r.frame.Pose(pose)
}

// MovePerTeam places the robot's body at a canonical-frame position
// (millimeters) and rotation, converting to the team's native frame first.
func (r *Robot) MovePerTeam(pos, rot geom.Vector3, changeRotation, resetDynamics bool) {
	nativePos, nativeRot := r.frame.Placement(pos, rot)
	MoveBody(r.body, nativePos, nativeRot, changeRotation, resetDynamics)
}

// MoveBallPerTeam places the shared ball at a canonical-frame position
// (millimeters). No-op when no ball is installed.
func (r *Robot) MoveBallPerTeam(pos geom.Vector3, resetDynamics bool) {
	if r.ball == nil {
		return
	}
	MoveBall(r.ball, r.frame.Position(pos), resetDynamics)
}

// AbsoluteBallPosition returns the ball's native-frame horizontal position
// in millimeters, and whether a ball is installed at all. Zero observations
// is a valid state for every consumer.
func (r *Robot) AbsoluteBallPosition() (geom.Vector2, bool) {
	if r.ball == nil {
		return geom.Vector2{}, false
	}
	return Position(r.ball), true
}

// ApplyBallFriction runs one friction step on this robot's shared ball.
func (r *Robot) ApplyBallFriction(friction float64) {
	ApplyBallFriction(r.eng, r.ball, friction)
}
