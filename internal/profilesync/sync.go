// Package profilesync orchestrates writing extracted work experiences into the
// external profile store: ensure the user exists, persist each experience as a
// position, then read back the merged profile.
package profilesync

import (
	"context"
	"errors"
	"log"

	"github.com/worktrust/backend/internal/profilestore"
	"github.com/worktrust/backend/internal/types"
)

// Syncer runs the profile synchronization workflow against a profile store.
type Syncer struct {
	store profilestore.Store
}

// NewSyncer creates a Syncer backed by the given store.
func NewSyncer(store profilestore.Store) *Syncer {
	return &Syncer{store: store}
}

// Result is the outcome of one synchronization run: the read-back profile and
// any per-experience failures. Failures and profile coexist; the workflow is
// best effort per item, not transactional across items.
type Result struct {
	Profile  *types.UserProfile
	Failures []types.SyncFailure
}

// PartialFailure returns a PartialSyncError when at least one experience
// failed, or nil when the run was clean.
func (r *Result) PartialFailure() *PartialSyncError {
	if len(r.Failures) == 0 {
		return nil
	}
	return &PartialSyncError{Failures: r.Failures}
}

// Sync persists the given experiences under the principal's profile.
//
// Registration treats the store's duplicate reply as success. Each experience
// is processed independently and in order: a failure is recorded and the loop
// continues, so one malformed experience never discards the rest. The run only
// fails outright when registration or the final read-back fails.
func (s *Syncer) Sync(ctx context.Context, principal, name, skillLevel string, experiences []types.WorkExperience) (*Result, error) {
	if err := s.store.RegisterUser(ctx, principal, name, skillLevel); err != nil {
		var dup *profilestore.AlreadyRegisteredError
		if !errors.As(err, &dup) {
			return nil, &RegistrationError{Principal: principal, Cause: err}
		}
	}

	var failures []types.SyncFailure
	for i, exp := range experiences {
		if err := s.syncOne(ctx, principal, exp); err != nil {
			log.Printf("[sync] experience %d (%s at %s) failed: %v", i, exp.Title, exp.Company, err)
			failures = append(failures, types.SyncFailure{
				Index:      i,
				Experience: exp,
				Reason:     err.Error(),
			})
		}
	}

	profile, err := s.store.GetProfile(ctx, principal)
	if err != nil {
		return nil, &ReadBackError{Principal: principal, Cause: err}
	}

	return &Result{Profile: profile, Failures: failures}, nil
}

// syncOne converts a single experience into a position and persists it.
func (s *Syncer) syncOne(ctx context.Context, principal string, exp types.WorkExperience) error {
	months, err := durationMonths(exp)
	if err != nil {
		return err
	}

	position := types.Position{
		Company:  exp.Company,
		Role:     exp.Title,
		Duration: months,
		Verified: types.TriUnknown,
		Reviewed: types.TriUnknown,
	}

	return s.store.AddPosition(ctx, principal, position)
}
