package state

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSaveAndLoad(t *testing.T) {
	s := testStore(t)

	cp := &Checkpoint{CompletedURLs: []string{"https://x/a", "https://x/b"}}
	require.NoError(t, s.Save("myaccount", cp))

	loaded := s.Load("myaccount")
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"https://x/a", "https://x/b"}, loaded.CompletedURLs)
	assert.Equal(t, "myaccount", loaded.Account)
	assert.False(t, loaded.LastUpdated.IsZero())
}

func TestLoadMissing(t *testing.T) {
	assert.Nil(t, testStore(t).Load("nobody"))
}

func TestLoadMalformed(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.Path("acct"), []byte("{not json"), 0o600))

	assert.Nil(t, s.Load("acct"))
}

func TestPathSanitizesAccountName(t *testing.T) {
	s := testStore(t)
	path := s.Path(`../weird\name`)

	assert.Equal(t, "callhub_activation_state_.._weird_name.json", filepath.Base(path))
	assert.Equal(t, s.dir, filepath.Dir(path))
}

func TestClear(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save("acct", &Checkpoint{CompletedURLs: []string{"https://x/a"}}))

	require.NoError(t, s.Clear("acct"))
	assert.Nil(t, s.Load("acct"))

	// Clearing again is a no-op.
	require.NoError(t, s.Clear("acct"))
}

func TestSaveOverwritesAtomically(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save("acct", &Checkpoint{CompletedURLs: []string{"https://x/a"}}))
	require.NoError(t, s.Save("acct", &Checkpoint{CompletedURLs: []string{"https://x/a", "https://x/b"}}))

	loaded := s.Load("acct")
	require.NotNil(t, loaded)
	assert.Len(t, loaded.CompletedURLs, 2)

	// No stray temp files left behind.
	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCompletedSet(t *testing.T) {
	cp := &Checkpoint{CompletedURLs: []string{"https://x/a", "https://x/b"}}
	done := cp.Completed()
	assert.True(t, done["https://x/a"])
	assert.False(t, done["https://x/c"])
}
