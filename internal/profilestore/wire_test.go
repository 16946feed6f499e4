package profilestore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrust/backend/internal/types"
)

func TestTriStateWireEncoding(t *testing.T) {
	tests := []struct {
		name     string
		value    types.TriBool
		expected []bool
	}{
		{name: "unknown encodes as empty sequence", value: types.TriUnknown, expected: []bool{}},
		{name: "true encodes as one-element sequence", value: types.TriTrue, expected: []bool{true}},
		{name: "false encodes as one-element sequence", value: types.TriFalse, expected: []bool{false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := triToWire(tt.value)
			assert.Equal(t, tt.expected, wire)
			assert.Equal(t, tt.value, triFromWire(wire), "round trip must preserve the state")
		})
	}
}

func TestTriFromWire_UnknownNeverDecodesToFalse(t *testing.T) {
	got := triFromWire(nil)
	assert.Equal(t, types.TriUnknown, got)
	assert.NotEqual(t, types.TriFalse, got)
}

func TestPositionWireRoundTrip(t *testing.T) {
	pos := types.Position{
		Company:  "Acme",
		Role:     "Engineer",
		Duration: 18,
		Verified: types.TriUnknown,
		Reviewed: types.TriTrue,
	}

	wire := positionToWire(pos)
	assert.Equal(t, int64(18), wire.Duration)
	assert.Empty(t, wire.Verified)
	assert.Equal(t, []bool{true}, wire.Reviewed)

	back := positionFromWire(wire)
	assert.Equal(t, pos, back)
}

func TestPositionWireJSON(t *testing.T) {
	wire := positionToWire(types.Position{
		Company:  "Acme",
		Role:     "Engineer",
		Duration: 12,
		Verified: types.TriUnknown,
		Reviewed: types.TriUnknown,
	})

	data, err := json.Marshal(wire)
	require.NoError(t, err)
	assert.JSONEq(t, `{"company":"Acme","role":"Engineer","duration":12,"verified":[],"reviewed":[]}`, string(data))

	var decoded wirePosition
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, types.TriUnknown, triFromWire(decoded.Verified))
}

func TestProfileFromWire(t *testing.T) {
	profile := profileFromWire(wireProfile{
		Name:       "Jane",
		SkillLevel: "senior",
		Positions: []wirePosition{
			{Company: "Acme", Role: "Engineer", Duration: 24, Verified: []bool{true}, Reviewed: []bool{}},
		},
	})

	assert.Equal(t, "Jane", profile.Name)
	require.Len(t, profile.Positions, 1)
	assert.Equal(t, types.TriTrue, profile.Positions[0].Verified)
	assert.Equal(t, types.TriUnknown, profile.Positions[0].Reviewed)
	assert.Equal(t, 24, profile.Positions[0].Duration)
}
