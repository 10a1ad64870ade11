package connection

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthentication       = errors.New("unable to authenticate")
	ErrUnreachable          = errors.New("device unreachable")
	ErrLegacyCiphers        = errors.New("no common SSH algorithm, legacy ciphers need to be changed in config.yml")
	ErrUnsupportedTransport = errors.New("unsupported transport")
	ErrNotConnected         = errors.New("not connected")
)

// netrasp and x/crypto/ssh don't export typed errors, so dial errors are classified by text
func classifyDialError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no common algorithm"):
		return fmt.Errorf("%w: %w", ErrLegacyCiphers, err)
	case strings.Contains(msg, "unable to authenticate"):
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
}
