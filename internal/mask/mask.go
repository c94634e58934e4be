// Package mask renders records for display with sensitive field values
// obscured. Masking is a presentation concern only: nothing in this
// package ever alters what is written back to the encrypted store.
package mask

import (
	"strings"

	"github.com/vrwmiller/myvault/internal/record"
)

// Placeholder replaces sensitive values on display. Its length is fixed,
// so the mask leaks nothing about the original value's length.
const Placeholder = "***MASKED***"

// sensitiveFragments marks a field as sensitive when its name contains
// any of these, case-insensitively.
var sensitiveFragments = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"key",
	"credential",
}

// Sensitive reports whether a field name denotes a value that must be
// masked on interactive display.
func Sensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range sensitiveFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// Field is a rendered (name, display value) pair.
type Field struct {
	Name  string
	Value string
}

// Render returns the record's fields in display order. With reveal false,
// sensitive values are replaced by Placeholder; with reveal true, values
// pass through unchanged (the machine-readable export path).
func Render(rec *record.Record, reveal bool) []Field {
	fields := rec.Fields()
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		value := f.Value.Display()
		if !reveal && Sensitive(f.Name) {
			value = Placeholder
		}
		out = append(out, Field{Name: f.Name, Value: value})
	}
	return out
}
