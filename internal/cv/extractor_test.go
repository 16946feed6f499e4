package cv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrust/backend/internal/llm"
	"github.com/worktrust/backend/internal/types"
)

// fakeClient is a canned-response llm.Client that counts calls.
type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) Close() error { return nil }

func TestExtract_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "   \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			extractor := NewExtractor(client)

			_, _, err := extractor.Extract(context.Background(), tt.text)

			var invalidErr *InvalidInputError
			require.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, 0, client.calls, "no model call should be made for invalid input")
		})
	}
}

func TestExtract_WellFormedArray(t *testing.T) {
	client := &fakeClient{response: `[
		{"title": "Engineer", "company": "Acme", "startDate": "2020", "endDate": "2022-06-01", "description": "Built things"},
		{"title": "Senior Engineer", "company": "Globex", "startDate": "2022-06-01", "endDate": null}
	]`}
	extractor := NewExtractor(client)

	experiences, claims, err := extractor.Extract(context.Background(), "some cv text")
	require.NoError(t, err)
	require.Len(t, experiences, 2)

	assert.Equal(t, "Engineer", experiences[0].Title)
	assert.Equal(t, "Acme", experiences[0].Company)
	assert.Equal(t, "2020", experiences[0].StartDate)
	require.NotNil(t, experiences[0].EndDate)
	assert.Equal(t, "2022-06-01", *experiences[0].EndDate)

	assert.Nil(t, experiences[1].EndDate)
	assert.True(t, experiences[1].Current())

	require.Len(t, claims, 2)
	for i, claim := range claims {
		assert.Equal(t, types.ClaimStatusPending, claim.Status)
		assert.Equal(t, DefaultVerifier, claim.Verifier)
		assert.NotEmpty(t, claim.ID)
		assert.Equal(t, experiences[i], claim.WorkExperience)
	}
}

func TestExtract_FencedOutput(t *testing.T) {
	unfenced := `[{"title":"Engineer","company":"Acme","startDate":"2020","endDate":null}]`

	tests := []struct {
		name     string
		response string
	}{
		{name: "unwrapped", response: unfenced},
		{name: "json fence", response: "```json\n" + unfenced + "\n```"},
		{name: "bare fence", response: "```\n" + unfenced + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(&fakeClient{response: tt.response})

			experiences, _, err := extractor.Extract(context.Background(), "cv text")
			require.NoError(t, err)
			require.Len(t, experiences, 1)
			assert.Equal(t, "Engineer", experiences[0].Title)
			assert.Equal(t, "Acme", experiences[0].Company)
			assert.Nil(t, experiences[0].EndDate)
		})
	}
}

func TestExtract_SingleObjectNormalized(t *testing.T) {
	client := &fakeClient{response: `{"title": "Engineer", "company": "Acme", "startDate": "2019-03-01"}`}
	extractor := NewExtractor(client)

	experiences, claims, err := extractor.Extract(context.Background(), "cv text")
	require.NoError(t, err)
	require.Len(t, experiences, 1)
	assert.Equal(t, "Engineer", experiences[0].Title)
	assert.Len(t, claims, 1)
}

func TestExtract_EmptyArrayIsValid(t *testing.T) {
	client := &fakeClient{response: `[]`}
	extractor := NewExtractor(client)

	experiences, claims, err := extractor.Extract(context.Background(), "no jobs here")
	require.NoError(t, err)
	assert.NotNil(t, experiences)
	assert.Empty(t, experiences)
	assert.Empty(t, claims)
}

func TestExtract_FailureModes(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{name: "model call failed", err: errors.New("upstream 503")},
		{name: "empty content", response: ""},
		{name: "fenced empty content", response: "```json\n```"},
		{name: "unparseable output", response: "I could not find any work experience."},
		{name: "missing required field", response: `[{"company": "Acme", "startDate": "2020"}]`},
		{name: "blank required field", response: `[{"title": "", "company": "Acme", "startDate": "2020"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response, err: tt.err}
			extractor := NewExtractor(client)

			_, _, err := extractor.Extract(context.Background(), "cv text")

			var extractionErr *ExtractionError
			require.ErrorAs(t, err, &extractionErr)

			var invalidErr *InvalidInputError
			assert.False(t, errors.As(err, &invalidErr), "failure taxonomy must be distinguishable")
		})
	}
}

func TestExtract_ScenarioFencedSingleEngineer(t *testing.T) {
	client := &fakeClient{
		response: "```json\n[{\"title\":\"Engineer\",\"company\":\"Acme\",\"startDate\":\"2020\",\"endDate\":null}]\n```",
	}
	extractor := NewExtractor(client)

	experiences, _, err := extractor.Extract(context.Background(), "cv text")
	require.NoError(t, err)
	require.Len(t, experiences, 1)
	assert.Equal(t, "Engineer", experiences[0].Title)
	assert.Nil(t, experiences[0].EndDate)
}
