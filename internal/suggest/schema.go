package suggest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// worktreeListSchema describes the shape of `wtp list --format json`
const worktreeListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["path"],
    "properties": {
      "path":   {"type": "string"},
      "branch": {"type": ["string", "null"]},
      "head":   {"type": ["string", "null"]}
    }
  }
}`

var loadWorktreeSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(worktreeListSchema))
})

// validateWorktreeList reports whether output is a JSON array of worktree
// entries. Invalid JSON is reported the same way as a shape mismatch.
func validateWorktreeList(output string) error {
	schema, err := loadWorktreeSchema()
	if err != nil {
		return fmt.Errorf("failed to load worktree schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(output))
	if err != nil {
		return fmt.Errorf("invalid worktree list: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid worktree list: %s", strings.Join(msgs, "; "))
	}
	return nil
}
