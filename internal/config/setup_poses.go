package config

import (
	"encoding/json"
	"fmt"

	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

// SetupPose is the placement a robot enters the pitch from: where it stands
// and the point it is turned towards, both in canonical field coordinates
// (millimeters).
type SetupPose struct {
	PlayerNumber  int          `json:"player_number"`
	Position      geom.Vector2 `json:"position"`
	TurnedTowards geom.Vector2 `json:"turned_towards"`
}

// SetupPoses is the list of configured placements. The list is not ordered
// by player number.
type SetupPoses struct {
	Poses []SetupPose `json:"poses"`
}

// LoadSetupPoses reads a setup-pose list from a JSON file.
func LoadSetupPoses(path string) (*SetupPoses, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	poses := &SetupPoses{}
	if err := json.Unmarshal(data, poses); err != nil {
		return nil, fmt.Errorf("failed to parse setup poses JSON: %w", err)
	}
	return poses, nil
}

// PoseOfRobot finds the setup pose for a player number by linear scan.
// Exception for demos and small tests: a single-entry list matches any
// number. A miss against a multi-entry list is a configuration error the
// caller should treat as fatal — placing a robot at a silently defaulted
// pose would corrupt the run.
func (s *SetupPoses) PoseOfRobot(number int) (SetupPose, error) {
	if len(s.Poses) == 1 {
		return s.Poses[0], nil
	}
	for _, p := range s.Poses {
		if p.PlayerNumber == number {
			return p, nil
		}
	}
	return SetupPose{}, fmt.Errorf("no setup pose configured for player %d (%d poses)", number, len(s.Poses))
}
