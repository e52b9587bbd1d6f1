package file

import (
	"fmt"
	"strings"

	"github.com/dukex/operion-runner/pkg/persistence"
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes a stored workflow document.
const documentSchema = `{
  "type": "object",
  "required": ["workflow"],
  "properties": {
    "workflow": {
      "type": "object",
      "required": ["id", "name", "nodes", "connections"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string", "minLength": 1},
        "status": {"enum": ["", "draft", "published", "unpublished"]},
        "nodes": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "required": ["name", "type"],
            "properties": {
              "name": {"type": "string", "minLength": 1},
              "type": {"type": "string", "minLength": 1},
              "disabled": {"type": "boolean"},
              "issues": {"type": ["array", "null"], "items": {"type": "string"}}
            }
          }
        },
        "connections": {
          "type": ["array", "null"],
          "items": {
            "type": "object",
            "required": ["source_port", "target_port"],
            "properties": {
              "source_port": {"type": "string", "pattern": "^.+:.+$"},
              "target_port": {"type": "string", "pattern": "^.+:.+$"}
            }
          }
        }
      }
    },
    "pin_data": {
      "type": ["object", "null"],
      "additionalProperties": {"type": "array", "items": {"type": "object"}}
    },
    "run_data": {
      "type": ["object", "null"],
      "additionalProperties": {"type": "array", "items": {"type": "object"}}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// validateDocument checks a raw JSON document against documentSchema.
func validateDocument(id string, body []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &persistence.WorkflowError{Op: "Validate", WorkflowID: id, Err: persistence.ErrInvalidDocument, Message: err.Error()}
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			messages = append(messages, e.String())
		}

		return &persistence.WorkflowError{
			Op:         "Validate",
			WorkflowID: id,
			Err:        persistence.ErrInvalidDocument,
			Message:    fmt.Sprintf("JSON schema validation failed: %s", strings.Join(messages, "; ")),
		}
	}

	return nil
}
