package keystore

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "nyt-tui"
	userName    = "nyt-api-key"
)

// ErrNotFound is returned by Load when no key has been saved.
var ErrNotFound = keyring.ErrNotFound

func Save(apiKey string) error {
	return keyring.Set(serviceName, userName, apiKey)
}

func Load() (string, error) {
	return keyring.Get(serviceName, userName)
}

// Delete forgets the saved key. Deleting a missing key is not an error.
func Delete() error {
	if err := keyring.Delete(serviceName, userName); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
