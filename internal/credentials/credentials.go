// Package credentials stores the cloud connection string in the OS keyring,
// keeping the database password out of .env files and shell history.
package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "rafiq"
	account = "cloud-dsn"
)

var (
	// ErrNotFound is returned when no connection string is stored.
	ErrNotFound = errors.New("no connection string stored in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be reached.
	ErrUnavailable = errors.New("OS keyring is not available")
)

// DSN retrieves the stored cloud connection string.
func DSN() (string, error) {
	dsn, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return dsn, nil
}

// Store saves the cloud connection string.
func Store(dsn string) error {
	if dsn == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(service, account, dsn); err != nil {
		return fmt.Errorf("storing connection string in keyring: %w", err)
	}
	return nil
}

// Clear removes the stored connection string.
func Clear() error {
	if err := keyring.Delete(service, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting connection string from keyring: %w", err)
	}
	return nil
}
