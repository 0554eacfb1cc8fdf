package secrets

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/99designs/keyring"
)

const (
	ServiceName = "boostfindings"
	KeyApiKey   = "api_key"
)

// KeyringSource reads the key stored by `boostfindings key set` from the OS keychain.
type KeyringSource struct {
	Ring keyring.Keyring
}

func (k KeyringSource) Name() string {
	return "keyring:" + ServiceName
}

func (k KeyringSource) Lookup(ctx context.Context) (string, error) {
	ring := k.Ring
	if ring == nil {
		var err error
		ring, err = OpenRing()
		if err != nil {
			return "", err
		}
	}

	item, err := ring.Get(KeyApiKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if len(item.Data) == 0 {
		return "", ErrNotFound
	}
	return string(item.Data), nil
}

// StoreApiKey saves the key in the OS keychain under the boostfindings service.
func StoreApiKey(ring keyring.Keyring, apiKey string) error {
	if apiKey == "" {
		return errors.New("refusing to store an empty API key")
	}
	if err := ring.Set(keyring.Item{Key: KeyApiKey, Data: []byte(apiKey), Label: "BoostSecurity API key"}); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}
	return nil
}

// OpenRing opens the native credential store for the current platform.
func OpenRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
		WinCredPrefix:   ServiceName,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open OS keychain: %w", err)
	}
	return ring, nil
}
