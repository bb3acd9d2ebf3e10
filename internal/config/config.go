// Package config loads chronicle's TOML configuration. The core packages
// never read configuration themselves; this is the collaborator that resolves
// paths, key material and backend settings and hands them over.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// ConfigFilename is the TOML file inside the chronicle directory.
const ConfigFilename = "config.toml"

// LogFilename is the journal log inside the chronicle directory.
const LogFilename = "chronicle.log"

// Config holds runtime settings for the chronicle CLI and bot.
//
// Values are resolved in three layers, later ones winning: built-in
// defaults, the TOML file, then environment variables.
type Config struct {
	// Dir is the chronicle directory (default ~/.chronicle).
	Dir string `toml:"-"`

	Chronicle ChronicleSection `toml:"chronicle"`
	AI        AISection        `toml:"ai"`
	Sync      SyncSection      `toml:"sync"`
}

type ChronicleSection struct {
	Editor   string `toml:"editor"`
	Timezone string `toml:"timezone"`
}

type AISection struct {
	Enabled  bool   `toml:"enabled"`
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
}

// SyncSection selects and configures the remote backend. Key material is
// either a passphrase plus hex salt (derived with argon2id) or nothing yet,
// in which case `chronicle sync setup` generates them.
type SyncSection struct {
	// Backend is one of "gist", "s3", "redis".
	Backend    string `toml:"backend"`
	Passphrase string `toml:"passphrase"`
	Salt       string `toml:"salt"`

	GistID      string `toml:"gist_id"`
	GithubToken string `toml:"github_token"`

	S3Region    string `toml:"s3_region"`
	S3Bucket    string `toml:"s3_bucket"`
	S3Key       string `toml:"s3_key"`
	S3Endpoint  string `toml:"s3_endpoint"`
	S3AccessKey string `toml:"s3_access_key"`
	S3SecretKey string `toml:"s3_secret_key"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisKey      string `toml:"redis_key"`
}

// LogFile returns the path of the journal log.
func (c *Config) LogFile() string { return filepath.Join(c.Dir, LogFilename) }

// ConfigFile returns the path of the TOML config.
func (c *Config) ConfigFile() string { return filepath.Join(c.Dir, ConfigFilename) }

// ProcessedFile returns the path of the AI-processed index.
func (c *Config) ProcessedFile() string { return filepath.Join(c.Dir, "ai_processed.json") }

// ExportsDir returns the directory exports are written into.
func (c *Config) ExportsDir() string { return filepath.Join(c.Dir, "exports") }

func defaultEditor() string {
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// DefaultDir returns ~/.chronicle.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chronicle"
	}
	return filepath.Join(home, ".chronicle")
}

func defaults(dir string) *Config {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Config{
		Dir: dir,
		Chronicle: ChronicleSection{
			Editor:   defaultEditor(),
			Timezone: "UTC",
		},
		AI: AISection{
			Enabled:  false,
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
		Sync: SyncSection{
			Backend:  "gist",
			S3Key:    "chronicle_sync.enc",
			RedisKey: "chronicle:sync",
		},
	}
}

// Load builds a Config for the given chronicle directory (empty means the
// default), overlaying the TOML file when present and then the environment.
func Load(dir string) (*Config, error) {
	cfg := defaults(dir)

	path := cfg.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	overlayEnv(cfg)
	return cfg, nil
}

// overlayEnv applies environment overrides: secrets in particular are more
// at home in the environment than on disk.
func overlayEnv(cfg *Config) {
	envOverride(&cfg.AI.APIKey, "GEMINI_API_KEY")
	envOverride(&cfg.Sync.GithubToken, "GITHUB_TOKEN")
	envOverride(&cfg.Sync.Passphrase, "CHRONICLE_SYNC_PASSPHRASE")
	envOverride(&cfg.Sync.Salt, "CHRONICLE_SYNC_SALT")
	envOverride(&cfg.Sync.GistID, "CHRONICLE_GIST_ID")
	envOverride(&cfg.Sync.S3AccessKey, "CHRONICLE_S3_ACCESS_KEY")
	envOverride(&cfg.Sync.S3SecretKey, "CHRONICLE_S3_SECRET_KEY")
	envOverride(&cfg.Sync.RedisPassword, "CHRONICLE_REDIS_PASSWORD")
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DefaultConfigTOML is the template written by `chronicle init`.
func DefaultConfigTOML() string {
	return `[chronicle]
# editor = "code --wait"
# timezone = "America/New_York"

[ai]
enabled = false
# provider = "gemini"
# model = "gemini-2.0-flash"
# Set the GEMINI_API_KEY environment variable or run: chronicle add-key

[sync]
# backend = "gist"            # gist, s3 or redis
# Run: chronicle sync setup
`
}
