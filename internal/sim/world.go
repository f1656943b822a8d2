// Package sim converts raw rigid-body state from the physics backend into a
// team-relative ground-truth world model, and runs the simplified ball
// dynamics (velocity estimation, curve perturbation, friction decay).
//
// Working units are millimeters and millimeters per second; the accessor
// layer owns the conversion from the backend's meters.
package sim

import "github.com/banshee-data/pitchsim/internal/sim/geom"

// BallState is one ground-truth ball observation in the canonical frame.
type BallState struct {
	Position geom.Vector3 `json:"position"` // mm
	Velocity geom.Vector3 `json:"velocity"` // mm/s
}

// PlayerSnapshot is one visible player with team-relative numbering.
type PlayerSnapshot struct {
	Number  int        `json:"number"`
	Pose    geom.Pose2 `json:"pose"`
	Upright bool       `json:"upright"`
}

// WorldSnapshot is the full ground-truth state one robot sees. It is built
// fresh on every query; nothing in it is retained between ticks.
type WorldSnapshot struct {
	OwnPose             geom.Pose2       `json:"own_pose"`
	OwnTeamPlayers      []PlayerSnapshot `json:"own_team_players"`
	OpponentTeamPlayers []PlayerSnapshot `json:"opponent_team_players"`
	// Balls has zero entries when no ball body is installed, one otherwise.
	Balls []BallState `json:"balls"`
}
