package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriBool_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    TriBool
		expected string
	}{
		{name: "unknown renders as null", value: TriUnknown, expected: "null"},
		{name: "true renders as true", value: TriTrue, expected: "true"},
		{name: "false renders as false", value: TriFalse, expected: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestTriBool_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TriBool
		wantErr  bool
	}{
		{name: "null", input: "null", expected: TriUnknown},
		{name: "true", input: "true", expected: TriTrue},
		{name: "false", input: "false", expected: TriFalse},
		{name: "string rejected", input: `"true"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TriBool
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTriBool_Bool(t *testing.T) {
	v, known := TriTrue.Bool()
	assert.True(t, v)
	assert.True(t, known)

	v, known = TriFalse.Bool()
	assert.False(t, v)
	assert.True(t, known)

	_, known = TriUnknown.Bool()
	assert.False(t, known)
}

func TestWorkExperience_Current(t *testing.T) {
	end := "2023-01-01"
	past := WorkExperience{Title: "Engineer", Company: "Acme", StartDate: "2020", EndDate: &end}
	assert.False(t, past.Current())

	current := WorkExperience{Title: "Engineer", Company: "Acme", StartDate: "2020"}
	assert.True(t, current.Current())

	empty := ""
	blank := WorkExperience{Title: "Engineer", Company: "Acme", StartDate: "2020", EndDate: &empty}
	assert.True(t, blank.Current())
}
