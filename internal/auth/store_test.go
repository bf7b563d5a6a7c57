package auth

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewStore(path, logger)
}

func TestSetAndGet(t *testing.T) {
	s := testStore(t)

	err := s.Set("Staging", Account{Username: "ops", APIKey: "key-123"})
	require.NoError(t, err)

	// Names are case-insensitive and base URL defaults.
	acct, err := s.Get("staging")
	require.NoError(t, err)
	assert.Equal(t, "key-123", acct.APIKey)
	assert.Equal(t, "ops", acct.Username)
	assert.Equal(t, defaultBaseURL, acct.BaseURL)
}

func TestGetMissingAccount(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Set("prod", Account{APIKey: "k"}))

	_, err := s.Get("nope")
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "nope", cfgErr.Account)
}

func TestGetNoCredentials(t *testing.T) {
	s := testStore(t)

	_, err := s.Get("default")
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestEnvOverlay(t *testing.T) {
	s := testStore(t)
	t.Setenv("CALLHUB_WEST_API_KEY", "env-key")
	t.Setenv("CALLHUB_WEST_USERNAME", "west-user")

	acct, err := s.Get("west")
	require.NoError(t, err)
	assert.Equal(t, "env-key", acct.APIKey)
	assert.Equal(t, "west-user", acct.Username)
}

func TestLegacyEnvMapsToDefault(t *testing.T) {
	s := testStore(t)
	t.Setenv("CALLHUB_API_KEY", "legacy-key")

	acct, err := s.Get("")
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", acct.APIKey)
}

func TestSetRequiresAPIKey(t *testing.T) {
	s := testStore(t)
	err := s.Set("x", Account{})
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Set("a", Account{APIKey: "k1"}))
	require.NoError(t, s.Set("b", Account{APIKey: "k2"}))

	require.NoError(t, s.Delete("a"))

	_, err := s.Get("a")
	require.Error(t, err)

	_, err = s.Get("b")
	require.NoError(t, err)

	// Deleting again fails.
	require.Error(t, s.Delete("a"))
}
