package profilesync

import (
	"fmt"

	"github.com/worktrust/backend/internal/types"
)

// RegistrationError indicates the ensure-user-exists step failed with
// something other than a duplicate-registration reply.
type RegistrationError struct {
	Principal string
	Cause     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("failed to register user %s: %v", e.Principal, e.Cause)
}

func (e *RegistrationError) Unwrap() error {
	return e.Cause
}

// ReadBackError indicates the final profile read-back failed after the
// per-item writes completed.
type ReadBackError struct {
	Principal string
	Cause     error
}

func (e *ReadBackError) Error() string {
	return fmt.Sprintf("failed to read back profile for %s: %v", e.Principal, e.Cause)
}

func (e *ReadBackError) Unwrap() error {
	return e.Cause
}

// PartialSyncError reports that some, but not necessarily all, experiences
// failed to persist. It is a warning-grade error: the workflow still produced
// a best-effort profile, and callers can re-submit just the failed items.
type PartialSyncError struct {
	Failures []types.SyncFailure
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("%d experience(s) failed to persist", len(e.Failures))
}
