// Package clipboard copies secret values to the system clipboard with a
// timed auto-clear, so a revealed secret does not linger.
package clipboard

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// CopyWithTimeout copies value to the clipboard and schedules a clear
// after ttl. The clear is skipped if the clipboard has since been
// overwritten, so it never stomps on something the user copied later.
func CopyWithTimeout(value string, ttl time.Duration) error {
	if err := clipboard.WriteAll(value); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	go func() {
		time.Sleep(ttl)
		if current, err := clipboard.ReadAll(); err == nil && current == value {
			clipboard.WriteAll("")
		}
	}()

	return nil
}

// IsAvailable reports whether a clipboard exists in this environment.
// False on headless systems without a display server.
func IsAvailable() bool {
	_, err := clipboard.ReadAll()
	return err == nil
}
