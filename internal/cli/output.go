package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/vrwmiller/myvault/internal/mask"
	"github.com/vrwmiller/myvault/internal/permissions"
	"github.com/vrwmiller/myvault/internal/reconcile"
	"github.com/vrwmiller/myvault/internal/record"
)

// writeRecords renders records for the terminal, one block per record,
// fields in stored order. Sensitive values are masked unless reveal.
func writeRecords(out io.Writer, records []*record.Record, reveal bool) error {
	for i, rec := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, f := range mask.Render(rec, reveal) {
			if _, err := fmt.Fprintf(w, "%s:\t%s\n", f.Name, f.Value); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// writeRecordsJSON writes records unmasked as an indented JSON array, the
// machine-readable export path. The export holds plaintext secrets, so it
// is written atomically with owner-only permissions.
func writeRecordsJSON(path string, records []*record.Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	if err := permissions.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// writeOutcomes prints one line per reconciled item plus a summary count
// of successes, and reports whether every outcome succeeded.
func writeOutcomes(out io.Writer, outcomes []reconcile.Outcome) (bool, error) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	succeeded := 0
	for _, o := range outcomes {
		marker := "✗"
		if o.Status.Success() {
			marker = "✓"
			succeeded++
		}
		line := fmt.Sprintf("%s %s\t%s", marker, o.Status, o.Property)
		if o.Reason != "" {
			line += "\t" + o.Reason
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return false, err
		}
	}
	if err := w.Flush(); err != nil {
		return false, err
	}

	if _, err := fmt.Fprintf(out, "\n%d of %d succeeded\n", succeeded, len(outcomes)); err != nil {
		return false, err
	}
	return succeeded == len(outcomes), nil
}
