package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vrwmiller/myvault/internal/audit"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the operation log",
	Long: `Show recent vault operations, newest first. The log records the
command, selector, and affected entry count; never field values.

Example:
  myvault audit
  myvault audit --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd)
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 20, "maximum operations to show (0 for all)")
}

func runAudit(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	log, err := audit.Open(cfg.AuditPath)
	if err != nil {
		return err
	}
	defer log.Close()

	ops, err := log.List(auditLimit)
	if err != nil {
		return err
	}

	if len(ops) == 0 {
		_, err = fmt.Fprintln(out, "No operations recorded")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tCOMMAND\tSELECTOR\tENTRIES\tRESULT")
	for _, op := range ops {
		result := "ok"
		if !op.Success {
			result = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			op.Timestamp.Format("2006-01-02 15:04:05"),
			op.Command, op.Selector, op.Properties, result)
	}
	return w.Flush()
}

// recordAudit appends to the audit log. Audit failures are logged but
// never fail the command that triggered them.
func recordAudit(command, selector string, properties int, success bool) {
	log, err := audit.Open(cfg.AuditPath)
	if err != nil {
		logger.Warn("failed to open audit log", zap.Error(err))
		return
	}
	defer log.Close()

	err = log.Append(audit.Operation{
		Command:    command,
		Selector:   selector,
		Properties: properties,
		Success:    success,
	})
	if err != nil {
		logger.Warn("failed to append audit entry", zap.Error(err))
	}
}
