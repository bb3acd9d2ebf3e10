package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBotEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CHRONICLE_BOT_TOKEN", "tg-token")
	t.Setenv("CHRONICLE_AUTHORIZED_USER_ID", "42")
	t.Setenv("CHRONICLE_GITHUB_TOKEN", "gh-token")
	t.Setenv("CHRONICLE_GIST_ID", "gist-123")
	t.Setenv("CHRONICLE_SYNC_PASSPHRASE", "hunter2")
	t.Setenv("CHRONICLE_SYNC_SALT", "00112233445566778899aabbccddeeff")
}

func TestConfigFromEnv(t *testing.T) {
	setBotEnv(t)

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "tg-token", cfg.BotToken)
	assert.Equal(t, int64(42), cfg.AuthorizedUserID)
	assert.Equal(t, "gist-123", cfg.GistID)
	assert.Len(t, cfg.Salt, 16)
}

func TestConfigFromEnvMissingVariable(t *testing.T) {
	setBotEnv(t)
	t.Setenv("CHRONICLE_GIST_ID", "")

	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHRONICLE_GIST_ID")
}

func TestConfigFromEnvBadValues(t *testing.T) {
	setBotEnv(t)

	t.Setenv("CHRONICLE_AUTHORIZED_USER_ID", "not-a-number")
	_, err := ConfigFromEnv()
	require.Error(t, err)

	setBotEnv(t)
	t.Setenv("CHRONICLE_SYNC_SALT", "zz")
	_, err = ConfigFromEnv()
	require.Error(t, err)
}
