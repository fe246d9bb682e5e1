package sensitivedata

import (
	"fmt"
	"strings"
)

// Sentinel is the token emitted in place of any sensitive value.
const Sentinel = "[REDACTED]"

// SafeError wraps an error, redacting any of the given sensitive values
// from its message. When no value occurs in the message the original
// error is returned unchanged to preserve its type for errors.As.
func SafeError(err error, values []string) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, secret := range values {
		if secret != "" && strings.Contains(msg, secret) {
			msg = strings.ReplaceAll(msg, secret, Sentinel)
		}
	}

	if msg == err.Error() {
		return err // No redaction needed, return original error to preserve type
	}

	return fmt.Errorf("%s", msg)
}
