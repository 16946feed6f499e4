package profilestore

import "fmt"

// UnavailableError indicates a transport failure or a store-side error.
// The client performs no retries; retry policy belongs to the caller.
type UnavailableError struct {
	Method  string
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile store unavailable during %s: %s: %v", e.Method, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile store unavailable during %s: %s", e.Method, e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// AlreadyRegisteredError indicates the user already exists in the store.
// Registration is idempotent from the workflow's perspective, so callers
// typically treat this as success.
type AlreadyRegisteredError struct {
	Principal string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("user already registered: %s", e.Principal)
}
