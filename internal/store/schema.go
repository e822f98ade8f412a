package store

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// snapshotSchema is the JSON Schema every persisted snapshot must satisfy.
// Violations surface as DeserializationError before any record is built.
const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["companies", "contacts"],
  "properties": {
    "companies": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["name", "type", "first_seen", "last_seen"],
        "properties": {
          "name": {"type": "string"},
          "website": {"type": "string"},
          "type": {"type": "string", "enum": ["sponsor", "attendee"]},
          "first_seen": {"type": "string"},
          "last_seen": {"type": "string"}
        }
      }
    },
    "contacts": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["apollo_id"],
        "properties": {
          "name": {"type": "string"},
          "title": {"type": "string"},
          "company": {"type": "string"},
          "email": {"type": "string"},
          "apollo_id": {"type": "string"}
        }
      }
    },
    "last_check": {"type": ["string", "null"]},
    "last_url": {"type": "string"}
  }
}`

// validateSnapshotSchema checks raw snapshot bytes against snapshotSchema.
func validateSnapshotSchema(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(snapshotSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return &DeserializationError{Reason: "snapshot is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return &DeserializationError{Reason: strings.Join(reasons, "; ")}
	}
	return nil
}
