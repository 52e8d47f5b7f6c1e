package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"CANTEEN_API_BASE_URL", "CANTEEN_REQUEST_TIMEOUT",
		"CANTEEN_LOG_LEVEL", "CANTEEN_LOG_FORMAT",
	} {
		t.Setenv(key, "") // register restore, then truly unset
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CANTEEN_API_BASE_URL", "https://canteen.example.com")
	t.Setenv("CANTEEN_REQUEST_TIMEOUT", "3s")
	t.Setenv("CANTEEN_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://canteen.example.com", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}
