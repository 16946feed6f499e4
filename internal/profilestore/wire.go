package profilestore

import (
	"github.com/worktrust/backend/internal/types"
)

// The canister encodes optional booleans as a zero-or-one element sequence
// rather than null, and durations as a 64-bit integer. That representation
// stays confined to this file: everything above the store client sees
// types.TriBool and plain ints.

// wirePosition is the canister representation of a position.
type wirePosition struct {
	Company  string `json:"company"`
	Role     string `json:"role"`
	Duration int64  `json:"duration"`
	Verified []bool `json:"verified"`
	Reviewed []bool `json:"reviewed"`
}

// wireProfile is the canister representation of a user profile.
type wireProfile struct {
	Name       string         `json:"name"`
	SkillLevel string         `json:"skillLevel"`
	Positions  []wirePosition `json:"positions"`
}

// wireProfileEntry pairs a principal with its profile in listing responses.
type wireProfileEntry struct {
	Principal string      `json:"principal"`
	Profile   wireProfile `json:"profile"`
}

// triToWire wraps a tri-state boolean into the canister's optional encoding:
// unknown becomes the empty sequence, a known value a one-element sequence.
func triToWire(t types.TriBool) []bool {
	if value, known := t.Bool(); known {
		return []bool{value}
	}
	return []bool{}
}

// triFromWire unwraps the canister's optional encoding. An empty sequence is
// unknown, never false.
func triFromWire(seq []bool) types.TriBool {
	if len(seq) == 0 {
		return types.TriUnknown
	}
	return types.TriFromBool(seq[0])
}

func positionToWire(p types.Position) wirePosition {
	return wirePosition{
		Company:  p.Company,
		Role:     p.Role,
		Duration: int64(p.Duration),
		Verified: triToWire(p.Verified),
		Reviewed: triToWire(p.Reviewed),
	}
}

func positionFromWire(w wirePosition) types.Position {
	return types.Position{
		Company:  w.Company,
		Role:     w.Role,
		Duration: int(w.Duration),
		Verified: triFromWire(w.Verified),
		Reviewed: triFromWire(w.Reviewed),
	}
}

func profileFromWire(w wireProfile) *types.UserProfile {
	positions := make([]types.Position, 0, len(w.Positions))
	for _, p := range w.Positions {
		positions = append(positions, positionFromWire(p))
	}
	return &types.UserProfile{
		Name:       w.Name,
		SkillLevel: w.SkillLevel,
		Positions:  positions,
	}
}
