package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const backupSchemaURL = "schema://wordiz-backup.json"

// backupSchema accepts any object carrying at least one recognized
// section, with each known section of the right JSON type.
const backupSchema = `{
  "type": "object",
  "anyOf": [
    {"required": ["settings"]},
    {"required": ["srs"]},
    {"required": ["reviewRecords"]},
    {"required": ["bookmarks"]}
  ],
  "properties": {
    "version":          {"type": "number"},
    "settings":         {"type": "object"},
    "srs":              {"type": "object"},
    "reviewRecords":    {"type": "object"},
    "stats":            {"type": "object"},
    "progressStats":    {"type": "object"},
    "dailyGoals":       {"type": "object"},
    "bookmarks":        {"type": "array"},
    "streakProtection": {"type": "object"},
    "streakShields":    {"type": "object"},
    "quizHistory":      {"type": "array"},
    "_appVersion":      {"type": "string"},
    "_exportVersion":   {"type": "number"}
  }
}`

var compiledBackupSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal([]byte(backupSchema), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(backupSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(backupSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// validateBackup checks a parsed backup against the backup schema.
func validateBackup(parsed any) error {
	schema, err := compiledBackupSchema()
	if err != nil {
		return fmt.Errorf("compile backup schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
