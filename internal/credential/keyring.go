package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "portfolio-term"

// Keys under which secrets are stored.
const (
	// KeyAIToken is the bearer token sent to the remote AI layer.
	KeyAIToken = "ai-token"
	// KeyGeminiAPIKey is used when the program talks to Gemini directly.
	KeyGeminiAPIKey = "gemini-api-key"
)

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/portfolio-term/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("portfolio-term-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Lookup returns the value of the environment variable env when it is set,
// otherwise the keyring entry for key. A missing secret is not an error: it
// yields "".
func Lookup(getenv func(string) string, env, key string) string {
	if env != "" && getenv != nil {
		if v := getenv(env); v != "" {
			return v
		}
	}
	v, err := Get(key)
	if err != nil {
		return ""
	}
	return v
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:   key,
		Label: serviceName + " " + key,
		Data:  []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}
