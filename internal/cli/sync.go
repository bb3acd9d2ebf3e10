package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/config"
	"github.com/chronicle-cli/chronicle/internal/cryptox"
	"github.com/chronicle-cli/chronicle/internal/syncx"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the encrypted journal with a remote backend",
}

var syncSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate sync key material and prepare the remote backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		salt, err := cryptox.GenerateSalt()
		if err != nil {
			return err
		}

		gistID := cfg.Sync.GistID
		if cfg.Sync.Backend == "gist" && gistID == "" {
			if cfg.Sync.GithubToken == "" {
				return errors.New("set sync.github_token (or GITHUB_TOKEN) so setup can create the gist")
			}
			gistID, err = syncx.CreateGist(cmd.Context(), cfg.Sync.GithubToken, "chronicle sync")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created secret gist %s\n", gistID)
		}

		path, err := config.SaveSyncSettings(configDir, hex.EncodeToString(salt), gistID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sync settings saved to %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Set CHRONICLE_SYNC_PASSPHRASE (or sync.passphrase) to finish setup.")
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch remote entries and merge new ones into the local log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, backend, key, err := syncCollaborators(cmd)
		if err != nil {
			return err
		}
		defer cryptox.WipeKey(key)

		n, err := syncx.Pull(cmd.Context(), backend, key, cfg.LogFile())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d new entries.\n", n)
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Encrypt all local entries and overwrite the remote content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, backend, key, err := syncCollaborators(cmd)
		if err != nil {
			return err
		}
		defer cryptox.WipeKey(key)

		n, err := syncx.Push(cmd.Context(), backend, key, cfg.LogFile())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d entries.\n", n)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncSetupCmd)
	syncCmd.AddCommand(syncPullCmd)
	syncCmd.AddCommand(syncPushCmd)
	rootCmd.AddCommand(syncCmd)
}

// syncCollaborators resolves the configured backend and derives the sync key.
func syncCollaborators(cmd *cobra.Command) (*config.Config, syncx.Backend, []byte, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	backend, err := newBackend(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	key, err := syncKey(cmd, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, backend, key, nil
}

func newBackend(ctx context.Context, cfg *config.Config) (syncx.Backend, error) {
	switch cfg.Sync.Backend {
	case "gist", "":
		if cfg.Sync.GistID == "" {
			return nil, errors.New("sync.gist_id is not set, run 'chronicle sync setup' first")
		}
		if cfg.Sync.GithubToken == "" {
			return nil, errors.New("set sync.github_token or the GITHUB_TOKEN environment variable")
		}
		return syncx.NewGistBackend(cfg.Sync.GistID, cfg.Sync.GithubToken), nil
	case "s3":
		return syncx.NewS3Backend(ctx, syncx.S3Config{
			Region:    cfg.Sync.S3Region,
			Bucket:    cfg.Sync.S3Bucket,
			Key:       cfg.Sync.S3Key,
			Endpoint:  cfg.Sync.S3Endpoint,
			AccessKey: cfg.Sync.S3AccessKey,
			SecretKey: cfg.Sync.S3SecretKey,
		})
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Sync.RedisAddr,
			Password: cfg.Sync.RedisPassword,
		})
		return syncx.NewRedisBackend(client, cfg.Sync.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown sync backend %q (want gist, s3 or redis)", cfg.Sync.Backend)
	}
}

// syncKey derives the AES key from the passphrase and the stored salt,
// prompting for the passphrase when it is configured nowhere.
func syncKey(cmd *cobra.Command, cfg *config.Config) ([]byte, error) {
	if cfg.Sync.Salt == "" {
		return nil, errors.New("sync.salt is not set, run 'chronicle sync setup' first")
	}
	salt, err := hex.DecodeString(cfg.Sync.Salt)
	if err != nil {
		return nil, fmt.Errorf("sync.salt is not valid hex: %w", err)
	}

	passphrase := cfg.Sync.Passphrase
	if passphrase == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Sync passphrase: ")
		raw, err := readPassword()
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return nil, err
		}
		passphrase = strings.TrimSpace(string(raw))
		if passphrase == "" {
			return nil, errors.New("no passphrase provided")
		}
	}
	return cryptox.DeriveKey([]byte(passphrase), salt), nil
}
