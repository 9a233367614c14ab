package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const recordSchemaURL = "extracted_record.json"

// recordSchema pins the JSON contract handed to the form wizard.
const recordSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["personalInfo", "experience", "education", "skills", "projects", "certifications", "achievements", "languages"],
  "properties": {
    "personalInfo": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string"},
        "email": {"type": "string"},
        "phone": {"type": "string"},
        "address": {"type": "string"},
        "linkedin": {"type": "string"},
        "website": {"type": "string"}
      }
    },
    "summary": {"type": "string"},
    "experience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "company", "startDate", "endDate", "description"],
        "properties": {
          "title": {"type": "string"},
          "company": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["degree", "institution", "startDate", "endDate"],
        "properties": {
          "degree": {"type": "string"},
          "institution": {"type": "string"},
          "startDate": {"type": "string"},
          "endDate": {"type": "string"},
          "gpa": {"type": "string"}
        }
      }
    },
    "skills": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "projects": {"type": "array", "items": {"type": "object"}},
    "certifications": {"type": "array", "items": {"type": "object"}},
    "achievements": {"type": "array", "items": {"type": "object"}},
    "languages": {"type": "array", "items": {"type": "object"}}
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString(recordSchemaURL, recordSchema)
	})
	return compiledSchema, schemaErr
}

// Validate checks the record's JSON form against the record schema.
func Validate(rec ExtractedRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return ValidateJSON(payload)
}

// ValidateJSON checks an encoded record against the record schema.
func ValidateJSON(payload []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile record schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
