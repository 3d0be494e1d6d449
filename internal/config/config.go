package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"

	"wayfare/internal/logger"
)

const (
	keyringService = "wayfare"
	keyringUser    = "api-token"

	envAPIURL   = "WAYFARE_API_URL"
	envAPIToken = "WAYFARE_API_TOKEN"
)

// Config carries the remote service settings for one invocation.
type Config struct {
	APIURL   string
	APIToken string
}

// Load resolves the service configuration: a .env file in the working
// directory (if any), then process environment, then the OS keyring for the
// token. Environment always wins over the keyring so scripted runs can
// override a stored credential.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("No .env file loaded", "error", err)
	}

	cfg := Config{
		APIURL:   os.Getenv(envAPIURL),
		APIToken: os.Getenv(envAPIToken),
	}

	if cfg.APIToken == "" {
		token, err := keyring.Get(keyringService, keyringUser)
		if err == nil {
			cfg.APIToken = token
		} else if err != keyring.ErrNotFound {
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}
	return cfg
}

// SetToken stores the API token in the OS keyring.
func SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token must not be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// ClearToken removes the API token from the OS keyring.
func ClearToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to remove token from keyring: %w", err)
	}
	return nil
}
