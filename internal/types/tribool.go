package types

import (
	"bytes"
	"fmt"
)

// TriBool is a tri-state boolean: true, false, or unknown (not yet evaluated).
// The zero value is TriUnknown. API responses render unknown as JSON null;
// the profile-store wire encoding (empty or one-element sequence) lives in the
// profilestore package, not here.
type TriBool int

// TriBool states.
const (
	TriUnknown TriBool = iota
	TriFalse
	TriTrue
)

// TriFromBool lifts a plain bool into a TriBool.
func TriFromBool(b bool) TriBool {
	if b {
		return TriTrue
	}
	return TriFalse
}

// Bool returns the underlying value and whether one is known.
func (t TriBool) Bool() (value, known bool) {
	switch t {
	case TriTrue:
		return true, true
	case TriFalse:
		return false, true
	default:
		return false, false
	}
}

func (t TriBool) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "unknown"
	}
}

var jsonNull = []byte("null")

// MarshalJSON renders unknown as null so clients can distinguish
// "not evaluated" from "evaluated false".
func (t TriBool) MarshalJSON() ([]byte, error) {
	switch t {
	case TriTrue:
		return []byte("true"), nil
	case TriFalse:
		return []byte("false"), nil
	default:
		return jsonNull, nil
	}
}

// UnmarshalJSON accepts true, false, or null.
func (t *TriBool) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, jsonNull):
		*t = TriUnknown
	case bytes.Equal(data, []byte("true")):
		*t = TriTrue
	case bytes.Equal(data, []byte("false")):
		*t = TriFalse
	default:
		return fmt.Errorf("invalid tri-state value: %s", data)
	}
	return nil
}
