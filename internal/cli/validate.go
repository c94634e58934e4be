package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vrwmiller/myvault/internal/input"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON input file",
	Long: `Validate that an input file is a JSON array of record objects, each
with a non-empty "property" field and secure (0600) file permissions.
Duplicate properties are reported as warnings: they become conflicts at
create time.

Example:
  myvault validate -i secrets.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "JSON file to validate")
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	records, err := input.LoadFile(validateInput)
	if err != nil {
		return err
	}
	logger.Info("validated input file",
		zap.String("path", validateInput),
		zap.Int("entries", len(records)))

	if _, err := fmt.Fprintf(out, "✓ %d valid entries in %s\n", len(records), validateInput); err != nil {
		return err
	}

	if duplicates := input.DuplicateProperties(records); len(duplicates) > 0 {
		logger.Warn("duplicate properties in input",
			zap.Strings("properties", duplicates))
		if _, err := fmt.Fprintf(out, "⚠ duplicate properties: %s\n", strings.Join(duplicates, ", ")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(out, "Fields used: %s\n", strings.Join(input.FieldNames(records), ", ")); err != nil {
		return err
	}
	return nil
}
