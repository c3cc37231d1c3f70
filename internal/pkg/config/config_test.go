//go:build unit

package config_test

import (
	"os"
	"testing"
	"time"

	"parkingbot/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsChannelBlacklisted(t *testing.T) {
	cfg := config.SlackConfig{ChannelBlacklist: []string{"#random", " general ", "#ops "}}

	for _, name := range []string{"random", "general", "ops"} {
		assert.True(t, cfg.IsChannelBlacklisted(name), name)
	}
	for _, name := range []string{"parking", "#random", "", "Random"} {
		assert.False(t, cfg.IsChannelBlacklisted(name), name)
	}
	assert.False(t, config.SlackConfig{}.IsChannelBlacklisted(""))
}

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		require.NoError(t, os.Unsetenv("PORT"))
		t.Setenv("OUTGOING_WEBHOOK_TOKEN", "secret")
		t.Setenv("CHANNEL_BLACKLIST", "#random,general")

		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "secret", cfg.Slack.WebhookToken)
		assert.Equal(t, []string{"#random", "general"}, cfg.Slack.ChannelBlacklist)
		assert.Equal(t, config.StoreBackendMemory, cfg.Store.Backend)
		assert.Equal(t, 2*time.Second, cfg.Store.Timeout)
		assert.Equal(t, 5*time.Second, cfg.Directory.Timeout)
		assert.Equal(t, "Asia/Tokyo", cfg.App.Location().String())
	})

	t.Run("webhook token is required", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("OUTGOING_WEBHOOK_TOKEN", "")
		require.NoError(t, os.Unsetenv("OUTGOING_WEBHOOK_TOKEN"))

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("OUTGOING_WEBHOOK_TOKEN", "secret")
		t.Setenv("STORE_BACKEND", "etcd")

		_, err := config.LoadConfig()
		assert.ErrorContains(t, err, "etcd")
	})
}

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, config.AppConfig{TimeZone: "Mars/Olympus_Mons"}.Location())
}
