package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/listinglab")
	t.Setenv("COLLECTIONS_API_KEY", "key-123")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 24, cfg.PollMaxAttempts)
	assert.Equal(t, "property_showcase", cfg.PropertyTemplateSet)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Greater(t, cfg.HTTPWriteTimeout, cfg.PollInterval*time.Duration(cfg.PollMaxAttempts),
		"write timeout must outlast the poll ceiling")
}

func TestLoadConfigRequiredVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("COLLECTIONS_API_KEY", "key-123")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/listinglab")
	t.Setenv("COLLECTIONS_API_KEY", "")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/listinglab")
	t.Setenv("COLLECTIONS_API_KEY", "key-123")
	t.Setenv("POLL_INTERVAL_MS", "100")
	t.Setenv("POLL_MAX_ATTEMPTS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 5, cfg.PollMaxAttempts)
}
