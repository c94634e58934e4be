package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vrwmiller/myvault/internal/input"
	"github.com/vrwmiller/myvault/internal/reconcile"
)

var createInput string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create new vault entries",
	Long: `Create new entries from a JSON input file. Each entry is applied
independently: an entry whose property already exists is reported as a
conflict without affecting the rest of the batch. The vault is
re-encrypted and written once, after the whole batch has been applied.

Example:
  myvault create -f vault.enc -i new_secrets.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createInput, "input", "i", "", "JSON file with new entries")
	createCmd.MarkFlagRequired("input")
}

func runCreate(cmd *cobra.Command) error {
	items, err := input.LoadFile(createInput)
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

	outcomes := reconcile.New(store).CreateBatch(items)

	allOK, err := writeOutcomes(cmd.OutOrStdout(), outcomes)
	if err != nil {
		return err
	}

	if err := saveStore(passphrase, store); err != nil {
		recordAudit("create", "", len(items), false)
		return err
	}

	logger.Info("create batch applied",
		zap.Int("entries", len(items)),
		zap.Int("total", store.Len()),
		zap.Bool("clean", allOK))
	recordAudit("create", "", len(items), allOK)
	return nil
}
