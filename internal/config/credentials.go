package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

// TokenEnv overrides every other token source.
const TokenEnv = "ACTIONBOARD_TOKEN"

const (
	keyringService = appName
	keyringUser    = "api-token"
	credFileName   = ".credentials"
)

// DataDir returns the directory for the credentials file and debug log,
// $XDG_DATA_HOME/actionboard or ~/.local/share/actionboard. It is created if missing.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// tokenSource is one place a bearer token may be kept.
// lookup returns "" with a nil error when the source holds nothing.
type tokenSource struct {
	name   string
	lookup func() (string, error)
}

// ResolveToken returns the bearer token to send, or "" when none is configured.
// Sources are tried in order: ACTIONBOARD_TOKEN, the config file, the stored token.
func ResolveToken(cfg *Config) (string, error) {
	sources := []tokenSource{
		{"env", func() (string, error) { return os.Getenv(TokenEnv), nil }},
		{"config", func() (string, error) {
			if cfg == nil {
				return "", nil
			}
			return cfg.Auth.APIToken, nil
		}},
		{"stored", GetToken},
	}

	for _, src := range sources {
		token, err := src.lookup()
		if err != nil {
			return "", fmt.Errorf("%s token: %w", src.name, err)
		}
		if token = strings.TrimSpace(token); token != "" {
			return token, nil
		}
	}
	return "", nil
}

// GetToken returns the token saved by SaveToken: the keyring entry if there is one,
// otherwise the credentials file.
func GetToken() (string, error) {
	if token, err := keyring.Get(keyringService, keyringUser); err == nil && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), nil
	}

	path, err := credentialsPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credentials file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveToken stores token in the system keyring. Without a usable keyring it is written
// to the credentials file, readable only by the owner.
func SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if err := keyring.Set(keyringService, keyringUser, token); err == nil {
		return nil
	}

	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// ClearToken removes the stored token from the keyring and the credentials file.
func ClearToken() error {
	// No keyring (or no entry) just means the token lived in the file.
	_ = keyring.Delete(keyringService, keyringUser)

	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

func credentialsPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}
