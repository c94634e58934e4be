// Package cli wires the myvault commands: validate, read, create,
// update, delete, and audit. All vault semantics live in the internal
// core packages; this layer handles flags, prompts, and presentation.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vrwmiller/myvault/internal/config"
	"github.com/vrwmiller/myvault/internal/logging"
	"github.com/vrwmiller/myvault/internal/vault"
)

var (
	cfgFile   string
	vaultPath string
	debugMode bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "myvault",
	Short: "Manage JSON-formatted secrets in an encrypted vault file",
	Long: `MyVault manages property-based secret records stored in a local
encrypted vault file. Records are schema-free JSON objects identified by
a unique "property" field; read and delete select records with glob
expressions and '|'-separated alternatives.

The vault passphrase is taken from the VAULT_PASSWORD environment
variable, or prompted for when unset.

Examples:
  myvault validate -i secrets.json
  myvault create -f vault.enc -i new_secrets.json
  myvault read -f vault.enc --property "web*|*api*"
  myvault update -f vault.enc -i updates.json
  myvault delete -f vault.enc --property "*.old" --force`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile == "" {
			if cfgFile, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		if cfg, err = config.Load(cfgFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if vaultPath == "" {
			vaultPath = cfg.VaultPath
		}

		if logger, err = logging.New(cfg.LogPath, debugMode); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/myvault/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "file", "f", "", "path to encrypted vault file")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "enable debug logging to console (logs are always written to the log file)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(auditCmd)
}

// newCodec builds the vault codec from the configured KDF parameters.
func newCodec() *vault.Codec {
	return vault.NewCodec(vault.Argon2Params{
		Memory:      cfg.KDF.Memory,
		Iterations:  cfg.KDF.Iterations,
		Parallelism: cfg.KDF.Parallelism,
	})
}
