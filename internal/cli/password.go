package cli

import (
	"fmt"
	"os"

	"github.com/vrwmiller/myvault/internal/secure"
)

// passwordEnvVar supplies the vault passphrase non-interactively.
const passwordEnvVar = "VAULT_PASSWORD"

// resolvePassphrase returns the vault passphrase sealed in protected
// memory: from VAULT_PASSWORD when set, otherwise from a hidden terminal
// prompt. The caller owns the buffer and must Destroy it.
func resolvePassphrase() (*secure.Buffer, error) {
	if env := os.Getenv(passwordEnvVar); env != "" {
		return secure.NewBufferFromString(env), nil
	}

	pass, err := PromptPassword("Vault password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read vault password: %w", err)
	}
	if pass == "" {
		return nil, fmt.Errorf("vault password must not be empty")
	}
	return secure.NewBufferFromString(pass), nil
}
