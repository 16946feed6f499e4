package types

// ParseCVRequest is the request body for CV extraction.
type ParseCVRequest struct {
	Text string `json:"text" validate:"required"`
}

// ParseCVData is the payload of a successful extraction response.
type ParseCVData struct {
	WorkExperiences []WorkExperience `json:"workExperiences"`
	Claims          []Claim          `json:"claims"`
}

// VerifyRequest is the request body for identity verification.
type VerifyRequest struct {
	Principal string `json:"principal" validate:"required"`
}

// VerifyResponse is returned after a successful identity verification.
type VerifyResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	Principal string `json:"principal"`
}

// SyncRequest is the request body for profile synchronization.
type SyncRequest struct {
	Name        string           `json:"name" validate:"required"`
	SkillLevel  string           `json:"skillLevel"`
	Experiences []WorkExperience `json:"experiences" validate:"required"`
}

// SyncFailure describes one experience that failed to persist.
type SyncFailure struct {
	Index      int            `json:"index"`
	Experience WorkExperience `json:"experience"`
	Reason     string         `json:"reason"`
}

// SyncData is the payload of a synchronization response: the best-effort
// profile plus any per-item failures.
type SyncData struct {
	Profile  *UserProfile  `json:"profile"`
	Failures []SyncFailure `json:"failures,omitempty"`
}

// VerifyPositionRequest marks a position as verified or reviewed.
type VerifyPositionRequest struct {
	Field string `json:"field" validate:"required,oneof=verified reviewed"`
	Value bool   `json:"value"`
}
