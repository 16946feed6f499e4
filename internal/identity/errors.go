package identity

import "fmt"

// DerivationError indicates the deterministic keypair derivation itself
// failed (bad inputs). Distinct from HandshakeError by contract: callers show
// different messages for the two.
type DerivationError struct {
	Message string
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("identity derivation failed: %s", e.Message)
}

// HandshakeError indicates the external identity-provider handshake failed
// after a successful derivation.
type HandshakeError struct {
	Principal string
	Message   string
	Cause     error
}

func (e *HandshakeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth handshake failed for %s: %s: %v", e.Principal, e.Message, e.Cause)
	}
	return fmt.Sprintf("auth handshake failed for %s: %s", e.Principal, e.Message)
}

func (e *HandshakeError) Unwrap() error {
	return e.Cause
}

// InvalidPrincipalError indicates a principal string failed to decode.
type InvalidPrincipalError struct {
	Principal string
	Message   string
}

func (e *InvalidPrincipalError) Error() string {
	return fmt.Sprintf("invalid principal %q: %s", e.Principal, e.Message)
}
