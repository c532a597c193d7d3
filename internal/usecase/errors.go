package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels mapped to HTTP statuses by the transport layer. Source failures
// never surface here; aggregation degrades them before returning.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	return nil
}

// requireUserAndKey trims both ids; field names the key in the error.
func requireUserAndKey(userID, key, field string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	key = strings.TrimSpace(key)
	if err := requireUser(userID); err != nil {
		return "", "", err
	}
	if key == "" {
		return "", "", invalidInput(field, "is required")
	}
	return userID, key, nil
}

func invalidInput(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}
