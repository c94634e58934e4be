package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vrwmiller/myvault/internal/clipboard"
	"github.com/vrwmiller/myvault/internal/mask"
	"github.com/vrwmiller/myvault/internal/pattern"
	"github.com/vrwmiller/myvault/internal/record"
)

var (
	readProperty string
	readOutput   string
	readReveal   bool
	readCopy     string
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read entries from the vault",
	Long: `Read entries from the vault, optionally filtered by a property
expression. Sensitive fields are masked on the terminal unless --reveal
is given. With -o, the selected entries are written unmasked to a JSON
file suitable for piping into another vault.

Example:
  myvault read -f vault.enc
  myvault read -f vault.enc --property "web*|*api*"
  myvault read -f vault.enc --property "*.com" -o export.json
  myvault read -f vault.enc --copy website1.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRead(cmd)
	},
}

func init() {
	readCmd.Flags().StringVar(&readProperty, "property", "", "property expression to filter by (glob patterns, '|' for alternatives)")
	readCmd.Flags().StringVarP(&readOutput, "output", "o", "", "write selected entries to a JSON file instead of stdout")
	readCmd.Flags().BoolVar(&readReveal, "reveal", false, "show sensitive field values on the terminal")
	readCmd.Flags().StringVar(&readCopy, "copy", "", "copy the named entry's first sensitive field to the clipboard")
}

func runRead(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	var matcher *pattern.Matcher
	if readProperty != "" {
		var err error
		if matcher, err = pattern.Compile(readProperty); err != nil {
			return err
		}
	}

	passphrase, err := resolvePassphrase()
	if err != nil {
		return err
	}
	defer passphrase.Destroy()

	store, err := loadStore(passphrase)
	if err != nil {
		return err
	}

	if readCopy != "" {
		return copySecret(cmd, store, readCopy)
	}

	selected := store.Select(matcher)
	logger.Info("read from vault",
		zap.String("selector", readProperty),
		zap.Int("matched", len(selected)))

	if len(selected) == 0 {
		if readProperty != "" {
			_, err = fmt.Fprintf(out, "No entries found matching property expression: %s\n", readProperty)
		} else {
			_, err = fmt.Fprintln(out, "No entries found")
		}
		return err
	}

	if readOutput != "" {
		if err := writeRecordsJSON(readOutput, selected); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Wrote %d entries to %s\n", len(selected), readOutput)
		return err
	}

	reveal := readReveal || cfg.ShowSecrets
	return writeRecords(out, selected, reveal)
}

// copySecret places an entry's first sensitive field on the clipboard
// with a timed auto-clear, so the value never hits the terminal.
func copySecret(cmd *cobra.Command, store *record.Store, property string) error {
	if !clipboard.IsAvailable() {
		return fmt.Errorf("no clipboard available; use --reveal to print instead")
	}

	rec, ok := store.Find(property)
	if !ok {
		return fmt.Errorf("%w: %s", record.ErrNotFound, property)
	}

	for _, f := range rec.Fields() {
		if !mask.Sensitive(f.Name) {
			continue
		}
		if err := clipboard.CopyWithTimeout(f.Value.Display(), cfg.ClipboardTTL); err != nil {
			return err
		}
		logger.Info("copied field to clipboard",
			zap.String("property", property),
			zap.String("field", f.Name))
		_, err := fmt.Fprintf(cmd.OutOrStdout(),
			"Copied %s of %s to clipboard (clears in %s)\n", f.Name, property, cfg.ClipboardTTL)
		return err
	}
	return fmt.Errorf("entry %q has no sensitive field to copy", property)
}
