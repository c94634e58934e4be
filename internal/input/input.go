// Package input loads and validates the plaintext JSON files fed to
// create, update, and validate commands. Structural validation happens
// here, before any record reaches the reconciler.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/vrwmiller/myvault/internal/permissions"
	"github.com/vrwmiller/myvault/internal/record"
)

// ErrInvalidInput is returned for malformed JSON, a non-array/non-object
// top level, or entries violating the record schema.
var ErrInvalidInput = errors.New("invalid input")

// recordSchema describes what this tool accepts as input: a JSON array of
// record objects (or a single object, normalized to a one-element batch),
// each carrying a non-empty string property and otherwise schema-free
// scalar fields.
const recordSchema = `{
	"oneOf": [
		{"$ref": "#/definitions/entry"},
		{"type": "array", "items": {"$ref": "#/definitions/entry"}}
	],
	"definitions": {
		"entry": {
			"type": "object",
			"required": ["property"],
			"properties": {
				"property": {"type": "string", "minLength": 1}
			},
			"additionalProperties": {
				"type": ["string", "number", "boolean", "null"]
			}
		}
	}
}`

var schema = gojsonschema.NewStringLoader(recordSchema)

// Parse validates the data against the record schema and decodes it into
// records with source field order preserved.
func Parse(data []byte) ([]*record.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: input is empty", ErrInvalidInput)
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		// The validator only errors on undecodable JSON.
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeViolations(result))
	}

	return decodeRecords(data)
}

// LoadFile enforces secure permissions on the input file, then parses it.
func LoadFile(path string) ([]*record.Record, error) {
	if err := permissions.Check(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func describeViolations(result *gojsonschema.Result) string {
	seen := make(map[string]bool)
	var parts []string
	for _, violation := range result.Errors() {
		desc := violation.String()
		if !seen[desc] {
			seen[desc] = true
			parts = append(parts, desc)
		}
	}
	return strings.Join(parts, "; ")
}

// decodeRecords re-reads the already-validated document token by token so
// each record keeps its source field order. record.Parse applies the same
// array-or-single-object normalization the schema allows.
func decodeRecords(data []byte) ([]*record.Record, error) {
	store, err := record.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	records := store.Records()

	// The schema guarantees a property key exists; records still run
	// through Validate so whitespace-only values are caught here rather
	// than surfacing as reconciler outcomes.
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidInput, i, err)
		}
	}
	return records, nil
}

// DuplicateProperties returns each property value appearing more than
// once in the batch, in first-seen order. The validate command reports
// these as warnings: duplicates become conflicts at create time.
func DuplicateProperties(records []*record.Record) []string {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Property()]++
	}

	var duplicates []string
	reported := make(map[string]bool)
	for _, rec := range records {
		p := rec.Property()
		if counts[p] > 1 && !reported[p] {
			reported[p] = true
			duplicates = append(duplicates, p)
		}
	}
	return duplicates
}

// FieldNames returns the sorted set of field names used across the batch,
// for the validate command's summary output.
func FieldNames(records []*record.Record) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		for _, f := range rec.Fields() {
			if !seen[f.Name] {
				seen[f.Name] = true
				names = append(names, f.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}
