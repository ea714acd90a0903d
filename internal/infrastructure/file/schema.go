package file

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const recordSchemaURL = "schema://evaluation-record.json"

// recordSchema describes one evaluation_<id>.json file. Files that do not
// match are treated as corrupt.
const recordSchema = `{
  "type": "object",
  "required": ["id", "timestamp", "name", "email", "score", "recommendations", "answers"],
  "properties": {
    "id": {"type": "string", "pattern": "^[A-Za-z0-9-]{1,64}$"},
    "timestamp": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "email": {"type": "string", "minLength": 3},
    "score": {"type": "integer", "minimum": 0, "maximum": 100},
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "description", "priority"],
        "properties": {
          "title": {"type": "string"},
          "description": {"type": "string"},
          "priority": {"enum": ["alta", "media"]}
        }
      }
    },
    "answers": {
      "type": "object",
      "required": ["password", "twoFactor", "updates", "publicWifi", "backup"],
      "properties": {
        "password": {"enum": ["si", "no"]},
        "twoFactor": {"enum": ["si", "no"]},
        "updates": {"enum": ["siempre", "a-veces", "nunca"]},
        "publicWifi": {"enum": ["si", "no"]},
        "backup": {"enum": ["si", "no"]}
      }
    }
  }
}`

func compileRecordSchema() (*jsonschema.Schema, error) {
	var parsed any
	if err := json.Unmarshal([]byte(recordSchema), &parsed); err != nil {
		return nil, fmt.Errorf("parse record schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(recordSchemaURL, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(recordSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}
