package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vrwmiller/myvault/internal/pattern"
	"github.com/vrwmiller/myvault/internal/reconcile"
)

var (
	deleteProperty string
	deleteForce    bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete vault entries",
	Long: `Delete entries matching a property expression. The matching entries
are shown (sensitive fields masked) and confirmed before deletion unless
--force is given. Deleting the last entry removes the vault file.

Example:
  myvault delete -f vault.enc --property website1.com
  myvault delete -f vault.enc --property "web*|test.*"
  myvault delete -f vault.enc --property "*.old" --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd)
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteProperty, "property", "", "property expression to delete (glob patterns, '|' for alternatives)")
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "skip confirmation prompt")
	deleteCmd.MarkFlagRequired("property")
}

func runDelete(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	matcher, err := pattern.Compile(deleteProperty)
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

	r := reconcile.New(store)

	// Preview phase: show what the commit would remove. The commit
	// re-resolves with the same matcher, so a vault changed by another
	// process in between simply yields fewer removals.
	preview := r.PreviewDelete(matcher)
	if len(preview) == 0 {
		_, err = fmt.Fprintf(out, "No entries found matching property expression: %s\n", deleteProperty)
		return err
	}

	if _, err := fmt.Fprintf(out, "Found %d entries matching %q:\n\n", len(preview), deleteProperty); err != nil {
		return err
	}
	if err := writeRecords(out, preview, false); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}

	if !deleteForce && cfg.ConfirmDestructive {
		confirmed, err := PromptConfirm(fmt.Sprintf("Delete these %d entries?", len(preview)), false)
		if err != nil {
			return fmt.Errorf("failed to get confirmation: %w", err)
		}
		if !confirmed {
			logger.Info("delete cancelled", zap.String("selector", deleteProperty))
			_, err = fmt.Fprintln(out, "Delete cancelled")
			return err
		}
	}

	outcomes := r.DeleteSelection(matcher)
	if _, err := writeOutcomes(out, outcomes); err != nil {
		return err
	}

	deleted := 0
	for _, o := range outcomes {
		if o.Status == reconcile.StatusDeleted {
			deleted++
		}
	}

	if store.Len() == 0 {
		// Nothing left to protect; drop the vault file entirely.
		if err := os.Remove(vaultPath); err != nil && !os.IsNotExist(err) {
			recordAudit("delete", deleteProperty, deleted, false)
			return fmt.Errorf("failed to remove empty vault file: %w", err)
		}
		logger.Info("vault emptied and removed",
			zap.String("selector", deleteProperty),
			zap.Int("deleted", deleted))
		recordAudit("delete", deleteProperty, deleted, true)
		_, err = fmt.Fprintln(out, "Deleted all entries. Vault file removed.")
		return err
	}

	if err := saveStore(passphrase, store); err != nil {
		recordAudit("delete", deleteProperty, deleted, false)
		return err
	}

	logger.Info("delete applied",
		zap.String("selector", deleteProperty),
		zap.Int("deleted", deleted),
		zap.Int("remaining", store.Len()))
	recordAudit("delete", deleteProperty, deleted, true)
	return nil
}
