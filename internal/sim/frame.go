package sim

import (
	"math"

	"github.com/banshee-data/pitchsim/internal/sim/geom"
)

// FrameNormalizer maps between a team's native physics coordinates and the
// canonical global frame. One team's native frame is mirrored: its x and y
// axes are negated and headings are rotated by π. The transform is an
// involution, so the same normalizer converts in both directions.
type FrameNormalizer struct {
	// Mirrored is true for the team whose native frame is rotated 180°
	// relative to the canonical frame.
	Mirrored bool
}

// Position normalizes a position: horizontal components negated for the
// mirrored team, height unchanged.
func (f FrameNormalizer) Position(v geom.Vector3) geom.Vector3 {
	if !f.Mirrored {
		return v
	}
	return geom.Vector3{X: -v.X, Y: -v.Y, Z: v.Z}
}

// Pose normalizes a full pose: translation rotated by π and heading offset
// by π (normalized) for the mirrored team.
func (f FrameNormalizer) Pose(p geom.Pose2) geom.Pose2 {
	if !f.Mirrored {
		return p
	}
	return geom.Pose2{Rotation: math.Pi}.Compose(p)
}

// Placement converts a commanded placement (position plus Euler rotation)
// from the canonical frame into the team's native frame. Because the mirror
// is its own inverse this is the same negation/rotation as the forward
// direction; only the z rotation component is affected.
func (f FrameNormalizer) Placement(pos, rot geom.Vector3) (geom.Vector3, geom.Vector3) {
	if !f.Mirrored {
		return pos, rot
	}
	return geom.Vector3{X: -pos.X, Y: -pos.Y, Z: pos.Z},
		geom.Vector3{X: rot.X, Y: rot.Y, Z: float64(geom.Angle(rot.Z + math.Pi).Normalize())}
}
