package cv

import "strings"

// extractionInstructions is the fixed system portion of the extraction prompt.
// The contract with the model: a bare JSON array of work-experience records,
// nothing else.
const extractionInstructions = `You are a helpful assistant that extracts work experience from CV text.
Return a JSON array of work experiences with the following structure for each:
{
  "title": "Job Title",
  "company": "Company Name",
  "startDate": "YYYY-MM-DD or YYYY",
  "endDate": "YYYY-MM-DD or YYYY or null if current",
  "description": "Brief description of role"
}

If the text contains no work experience, return an empty JSON array [].
Only return valid JSON, no other text, no markdown, no code fences.`

// buildExtractionPrompt constructs the full prompt for a CV text.
func buildExtractionPrompt(cvText string) string {
	var sb strings.Builder
	sb.WriteString(extractionInstructions)
	sb.WriteString("\n\nExtract work experience from this CV text:\n\"\"\"\n")
	sb.WriteString(cvText)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}
