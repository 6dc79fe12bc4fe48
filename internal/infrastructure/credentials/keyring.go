// Package credentials stores the Freshdesk API key in the OS keyring and
// resolves the effective key at startup.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	ServiceName     = "crmdesk"
	FreshdeskKeyKey = "freshdesk-api-key"

	EnvFreshdeskKey = "CRMDESK_FRESHDESK_API_KEY"
)

// Source names where a resolved key came from.
type Source string

const (
	SourceNone    Source = "none"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceConfig  Source = "config"
)

func SetFreshdeskKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key cannot be empty")
	}
	if err := keyring.Set(ServiceName, FreshdeskKeyKey, key); err != nil {
		return fmt.Errorf("failed to store api key in keyring: %w", err)
	}
	return nil
}

// ClearFreshdeskKey removes the stored key. A missing entry is not an error.
func ClearFreshdeskKey() error {
	if err := keyring.Delete(ServiceName, FreshdeskKeyKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete api key from keyring: %w", err)
	}
	return nil
}

// ResolveFreshdeskKey checks the environment, then the keyring, then the
// value from the config file. Keyring errors (no backend on a headless host)
// fall through to the config value.
func ResolveFreshdeskKey(configValue string) (string, Source) {
	if v := strings.TrimSpace(os.Getenv(EnvFreshdeskKey)); v != "" {
		return v, SourceEnv
	}
	if v, err := keyring.Get(ServiceName, FreshdeskKeyKey); err == nil && v != "" {
		return v, SourceKeyring
	}
	if v := strings.TrimSpace(configValue); v != "" {
		return v, SourceConfig
	}
	return "", SourceNone
}
