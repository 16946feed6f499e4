// Package cv extracts structured work-experience records from free-form CV
// text via LLM field extraction.
package cv

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/worktrust/backend/internal/llm"
	"github.com/worktrust/backend/internal/types"
)

// DefaultVerifier is attached to claims staged for verification.
const DefaultVerifier = "linkedin"

// Extractor turns raw CV text into work-experience records.
// It holds no state beyond the injected LLM client and performs no
// persistence; retries, if any, belong to the caller.
type Extractor struct {
	client llm.Client
	tier   llm.ModelTier
	now    func() time.Time
}

// NewExtractor creates an Extractor backed by the given LLM client.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{
		client: client,
		tier:   llm.TierStandard,
		now:    time.Now,
	}
}

// Extract parses CV text into an ordered list of work experiences plus a
// pending claim for each. An empty result is valid: it means the model found
// no work experience in the text.
func (e *Extractor) Extract(ctx context.Context, cvText string) ([]types.WorkExperience, []types.Claim, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, nil, &InvalidInputError{Message: "no text provided"}
	}

	prompt := buildExtractionPrompt(cvText)

	raw, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		return nil, nil, &ExtractionError{Message: "model call failed", Cause: err}
	}

	cleaned := llm.CleanJSONBlock(raw)
	if cleaned == "" {
		return nil, nil, &ExtractionError{Message: "model returned no content"}
	}

	experiences, err := decodeExperiences(cleaned)
	if err != nil {
		return nil, nil, err
	}

	claims := e.buildClaims(experiences)
	return experiences, claims, nil
}

// decodeExperiences validates and decodes cleaned model output. A single
// object is normalized to a one-element list.
func decodeExperiences(jsonText string) ([]types.WorkExperience, error) {
	if err := validateSchema(jsonText); err != nil {
		return nil, &ExtractionError{Message: "model output failed validation", Cause: err}
	}

	trimmed := strings.TrimSpace(jsonText)
	if strings.HasPrefix(trimmed, "[") {
		var experiences []types.WorkExperience
		if err := json.Unmarshal([]byte(trimmed), &experiences); err != nil {
			return nil, &ExtractionError{Message: "failed to parse model output", Cause: err}
		}
		if experiences == nil {
			experiences = []types.WorkExperience{}
		}
		return experiences, nil
	}

	var single types.WorkExperience
	if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
		return nil, &ExtractionError{Message: "failed to parse model output", Cause: err}
	}
	return []types.WorkExperience{single}, nil
}

// buildClaims creates a pending verification claim for each experience.
func (e *Extractor) buildClaims(experiences []types.WorkExperience) []types.Claim {
	claims := make([]types.Claim, 0, len(experiences))
	for _, exp := range experiences {
		claims = append(claims, types.Claim{
			ID:             "claim_" + uuid.NewString(),
			Status:         types.ClaimStatusPending,
			Verifier:       DefaultVerifier,
			CreatedAt:      e.now().UTC(),
			WorkExperience: exp,
		})
	}
	return claims
}
