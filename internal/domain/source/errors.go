// Package source classifies failures of external data providers.
package source

import "errors"

var (
	ErrMissingCredential = errors.New("provider credential is not configured")
	ErrTransport         = errors.New("provider transport failure")
	ErrInvalidShape      = errors.New("provider response has invalid shape")
	ErrModelOutput       = errors.New("model output rejected")
)

// Kind returns a short label for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrInvalidShape):
		return "invalid_shape"
	case errors.Is(err, ErrModelOutput):
		return "model_output"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "unknown"
	}
}
