// Package schema validates card database documents before they replace the stored one.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/julianstephens/daycards/internal/models"
	"github.com/julianstephens/daycards/internal/utils"
)

const schemaURL = "https://github.com/julianstephens/daycards/cards.schema.json"

//go:embed cards.schema.json
var schemaJSON []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// ValidationError points at the first offending location in a document.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid card database at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("invalid card database: %s", e.Message)
}

func cardSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks data against the card schema and the database invariants
// the schema cannot express (unique dates, unique ids per card, real calendar
// dates) and returns the decoded database.
func Validate(data []byte) (models.Database, error) {
	s, err := cardSchema()
	if err != nil {
		return models.Database{}, fmt.Errorf("compile schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Database{}, &ValidationError{Message: fmt.Sprintf("not valid JSON: %v", err)}
	}
	if err := s.Validate(doc); err != nil {
		return models.Database{}, mapValidationError(err)
	}

	db, err := models.Parse(data)
	if err != nil {
		return models.Database{}, &ValidationError{Message: err.Error()}
	}
	for i, l := range db.Lists {
		if _, err := utils.ParseDate(l.Date); err != nil {
			return models.Database{}, &ValidationError{Path: fmt.Sprintf("lists[%d].date", i), Message: err.Error()}
		}
	}
	if err := db.Validate(); err != nil {
		return models.Database{}, &ValidationError{Message: err.Error()}
	}
	return db, nil
}

func mapValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Message: err.Error()}
	}
	leaf := firstLeaf(ve)
	return &ValidationError{Path: pointerToPath(leaf.InstanceLocation), Message: leaf.Message}
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerToPath turns "/lists/0/tasks/1/text" into "lists[0].tasks[1].text".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
