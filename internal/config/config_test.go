package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rishabhm/dealscope/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.RateLimitInterval)
	assert.Equal(t, 10*time.Second, cfg.LookupTimeout)
	assert.Equal(t, 10, cfg.TopN)
	assert.Empty(t, cfg.CachePath)
	assert.False(t, cfg.Walmart.Enabled(), "retail tier disabled without credentials")
}

func TestLoadWalmartCredentialsRequireKeyPath(t *testing.T) {
	resetViper(t)
	viper.Set("walmart.consumer_id", "consumer-1")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLoadWalmartMissingKeyFileIsFatal(t *testing.T) {
	resetViper(t)
	viper.Set("walmart.consumer_id", "consumer-1")
	viper.Set("walmart.private_key_path", filepath.Join(t.TempDir(), "missing.pem"))

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadWalmartEnabledWithReadableKey(t *testing.T) {
	resetViper(t)

	keyPath := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(keyPath, []byte("placeholder"), 0600))

	viper.Set("walmart.consumer_id", "consumer-1")
	viper.Set("walmart.private_key_path", keyPath)
	viper.Set("lookup.rate_limit_interval", "250ms")
	viper.Set("report.top_n", 5)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Walmart.Enabled())
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimitInterval)
	assert.Equal(t, 5, cfg.TopN)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x.db"), ExpandPath("~/x.db"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/plain/path.db", ExpandPath("/plain/path.db"))
}
