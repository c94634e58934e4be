package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vrwmiller/myvault/internal/input"
	"github.com/vrwmiller/myvault/internal/reconcile"
)

var updateInput string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update existing vault entries",
	Long: `Update existing entries from a JSON input file. Incoming fields are
merged into the stored entry: same-named fields are overwritten, fields
only present in the stored entry are kept, and the property itself never
changes. Entries whose property does not exist are skipped.

Example:
  myvault update -f vault.enc -i updates.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd)
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateInput, "input", "i", "", "JSON file with updated entries")
	updateCmd.MarkFlagRequired("input")
}

func runUpdate(cmd *cobra.Command) error {
	items, err := input.LoadFile(updateInput)
	if err != nil {
		return err
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

	outcomes := reconcile.New(store).UpdateBatch(items)

	allOK, err := writeOutcomes(cmd.OutOrStdout(), outcomes)
	if err != nil {
		return err
	}

	updated := 0
	for _, o := range outcomes {
		if o.Status == reconcile.StatusUpdated {
			updated++
		}
	}
	if updated == 0 {
		// Nothing changed in memory; leave the vault file untouched.
		recordAudit("update", "", 0, allOK)
		return nil
	}

	if err := saveStore(passphrase, store); err != nil {
		recordAudit("update", "", updated, false)
		return err
	}

	logger.Info("update batch applied",
		zap.Int("updated", updated),
		zap.Int("entries", len(items)))
	recordAudit("update", "", updated, allOK)
	return nil
}
