// Package util provides error handling helpers and process exit codes
// shared across commands.
package util

import (
	"errors"
	"fmt"
	"os"

	"github.com/vrwmiller/myvault/internal/input"
	"github.com/vrwmiller/myvault/internal/pattern"
	"github.com/vrwmiller/myvault/internal/vault"
)

// Exit codes
const (
	ExitOK           = 0
	ExitError        = 1
	ExitInvalidInput = 2
	ExitDecryption   = 3
)

// ExitWithCode exits the program with the specified code and message.
func ExitWithCode(code int, format string, args ...interface{}) {
	if format != "" {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	os.Exit(code)
}

// HandleError maps top-level command errors to exit codes. Error text
// reaching the terminal never contains field values; the core layers
// only name properties and selectors.
func HandleError(err error, context string) {
	if err == nil {
		return
	}

	code := ExitError
	switch {
	case errors.Is(err, vault.ErrDecryptionFailed):
		code = ExitDecryption
	case errors.Is(err, input.ErrInvalidInput), errors.Is(err, pattern.ErrEmptyPattern):
		code = ExitInvalidInput
	}

	if context != "" {
		ExitWithCode(code, "Error: %s - %v", context, err)
	} else {
		ExitWithCode(code, "Error: %v", err)
	}
}

// WrapError wraps an error with additional context.
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
