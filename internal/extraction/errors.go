package extraction

import (
	"errors"
	"fmt"
)

// ErrNoContent indicates the provider replied without any textual content.
var ErrNoContent = errors.New("no response from AI")

// ErrBadResponse indicates the provider replied with text that is not the
// expected JSON object. Distinguishable from transport failures so callers
// can log the two with different detail.
var ErrBadResponse = errors.New("malformed extraction response")

// ConfigError indicates the provider credential is not configured.
// The message is safe to surface to callers verbatim.
type ConfigError struct {
	EnvVar string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s not configured", e.EnvVar)
}
