package bot

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
)

// Config holds the bot daemon settings, all taken from the environment.
type Config struct {
	BotToken         string
	AuthorizedUserID int64
	GithubToken      string
	GistID           string
	Passphrase       string
	Salt             []byte
}

// ConfigFromEnv reads the bot configuration. Every variable is required.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{}

	var err error
	if cfg.BotToken, err = requireEnv("CHRONICLE_BOT_TOKEN"); err != nil {
		return nil, err
	}
	userID, err := requireEnv("CHRONICLE_AUTHORIZED_USER_ID")
	if err != nil {
		return nil, err
	}
	if cfg.AuthorizedUserID, err = strconv.ParseInt(userID, 10, 64); err != nil {
		return nil, fmt.Errorf("CHRONICLE_AUTHORIZED_USER_ID must be numeric: %w", err)
	}
	if cfg.GithubToken, err = requireEnv("CHRONICLE_GITHUB_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.GistID, err = requireEnv("CHRONICLE_GIST_ID"); err != nil {
		return nil, err
	}
	if cfg.Passphrase, err = requireEnv("CHRONICLE_SYNC_PASSPHRASE"); err != nil {
		return nil, err
	}
	saltHex, err := requireEnv("CHRONICLE_SYNC_SALT")
	if err != nil {
		return nil, err
	}
	if cfg.Salt, err = hex.DecodeString(saltHex); err != nil {
		return nil, fmt.Errorf("CHRONICLE_SYNC_SALT must be hex: %w", err)
	}
	return cfg, nil
}

func requireEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", name)
	}
	return value, nil
}
