// Package types provides type definitions for structured data shared across the worktrust backend.
package types

import "time"

// WorkExperience is a single work-history entry extracted from free-form CV text.
// It is a staging record: produced by the extraction service, consumed by the
// synchronization workflow, never persisted verbatim.
type WorkExperience struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description,omitempty"`
}

// Current reports whether this is an ongoing position (no end date).
func (w *WorkExperience) Current() bool {
	return w.EndDate == nil || *w.EndDate == ""
}

// Position is the persisted unit of work history in the profile store.
// Duration is whole months, always at least 1.
type Position struct {
	Company  string  `json:"company"`
	Role     string  `json:"role"`
	Duration int     `json:"duration"`
	Verified TriBool `json:"verified"`
	Reviewed TriBool `json:"reviewed"`
}

// UserProfile is the profile record owned by the external store.
// Positions are ordered; this backend only appends to them.
type UserProfile struct {
	Name       string     `json:"name"`
	SkillLevel string     `json:"skillLevel"`
	Positions  []Position `json:"positions"`
}

// Claim is a pending verification record attached to an extracted experience.
type Claim struct {
	ID             string         `json:"id"`
	Status         string         `json:"status"`
	Verifier       string         `json:"verifier"`
	CreatedAt      time.Time      `json:"createdAt"`
	VerifiedAt     *time.Time     `json:"verifiedAt"`
	WorkExperience WorkExperience `json:"workExperience"`
}

// ClaimStatusPending is the initial status of every claim.
const ClaimStatusPending = "pending"
