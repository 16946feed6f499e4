package cv

import "github.com/xeipuuv/gojsonschema"

// workExperienceSchema validates the model's output before decoding. The model
// is asked for an array but sometimes returns a single object; both shapes are
// accepted here and normalized by the extractor.
const workExperienceSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "oneOf": [
    {"type": "array", "items": {"$ref": "#/definitions/experience"}},
    {"$ref": "#/definitions/experience"}
  ],
  "definitions": {
    "experience": {
      "type": "object",
      "required": ["title", "company", "startDate"],
      "properties": {
        "title": {"type": "string", "minLength": 1},
        "company": {"type": "string", "minLength": 1},
        "startDate": {"type": "string", "minLength": 1},
        "endDate": {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]}
      }
    }
  }
}`

// validateSchema checks cleaned model output against the work-experience schema.
// A schema-loader failure or non-conforming document both surface as a plain
// error; the caller wraps it in the extraction failure taxonomy.
func validateSchema(jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(workExperienceSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	verr := &SchemaValidationError{}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

// FieldError is a single schema violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// SchemaValidationError reports why the model output failed schema validation.
type SchemaValidationError struct {
	Errors []FieldError
}

func (e *SchemaValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "schema validation failed"
	}
	first := e.Errors[0]
	return "schema validation failed: " + first.Field + ": " + first.Message
}
