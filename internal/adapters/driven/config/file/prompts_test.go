package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
)

func TestPromptStore_LoadOverride(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(tmpDir, "cards.txt"),
		[]byte("make %d cards from: %s\n"),
		0600,
	))

	store, err := NewPromptStore(tmpDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptCards)
	require.NoError(t, err)
	assert.Equal(t, "make %d cards from: %s", prompt)
}

func TestPromptStore_LoadMissingReturnsError(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(driven.PromptCards)
	assert.Error(t, err)
}

func TestPromptStore_CreatesReadmeOnFirstLoad(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewPromptStore(tmpDir)
	require.NoError(t, err)

	// Constructor does no I/O.
	_, statErr := os.Stat(filepath.Join(tmpDir, "README.md"))
	assert.True(t, os.IsNotExist(statErr))

	_, _ = store.Load(driven.PromptCards)

	_, statErr = os.Stat(filepath.Join(tmpDir, "README.md"))
	assert.NoError(t, statErr)
}

func TestPromptStore_CachesAndReloads(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cards.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0600))

	store, err := NewPromptStore(tmpDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptCards)
	require.NoError(t, err)
	assert.Equal(t, "v1", prompt)

	// The cached value survives a file change until Reload.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0600))

	prompt, err = store.Load(driven.PromptCards)
	require.NoError(t, err)
	assert.Equal(t, "v1", prompt)

	store.Reload()

	prompt, err = store.Load(driven.PromptCards)
	require.NoError(t, err)
	assert.Equal(t, "v2", prompt)
}

func TestPromptStore_Dir(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewPromptStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, store.Dir())
}
