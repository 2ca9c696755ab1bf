package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/advisor-cli/internal/core/ports/driven"
)

func TestNewPromptStore_NoIO(t *testing.T) {
	tmpDir := t.TempDir()
	promptDir := filepath.Join(tmpDir, "prompts")

	_, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	// Constructor must not create the directory
	_, err = os.Stat(promptDir)
	assert.True(t, os.IsNotExist(err))
}

func TestPromptStore_Load_CreatesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	promptDir := filepath.Join(tmpDir, "prompts")

	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptSystem)
	require.NoError(t, err)
	assert.Equal(t, defaultPrompts[driven.PromptSystem], prompt)

	// First Load materialises the default files
	for name := range defaultPrompts {
		_, err := os.Stat(filepath.Join(promptDir, name+".txt"))
		assert.NoError(t, err, "expected default file for %q", name)
	}
	_, err = os.Stat(filepath.Join(promptDir, "README.md"))
	assert.NoError(t, err)
}

func TestPromptStore_Load_UserOverride(t *testing.T) {
	tmpDir := t.TempDir()
	promptDir := filepath.Join(tmpDir, "prompts")
	require.NoError(t, os.MkdirAll(promptDir, 0700))

	custom := "Answer in one sentence.\n\nQuestion: %s\n\nAnswer:"
	path := filepath.Join(promptDir, driven.PromptNoContext+".txt")
	require.NoError(t, os.WriteFile(path, []byte(custom), 0600))

	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptNoContext)
	require.NoError(t, err)
	assert.Equal(t, "Answer in one sentence.\n\nQuestion: %s\n\nAnswer:", prompt)
}

func TestPromptStore_Load_UnknownName(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewPromptStore(filepath.Join(tmpDir, "prompts"))
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}

func TestPromptStore_Reload(t *testing.T) {
	tmpDir := t.TempDir()
	promptDir := filepath.Join(tmpDir, "prompts")

	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	// Prime the cache
	first, err := store.Load(driven.PromptCautious)
	require.NoError(t, err)

	// Edit the file on disk
	edited := "Be gentle.\n\nExcerpts:\n%s\n\nQuestion: %s\n\nAnswer:"
	path := filepath.Join(promptDir, driven.PromptCautious+".txt")
	require.NoError(t, os.WriteFile(path, []byte(edited), 0600))

	// Cached value is still served until Reload
	cached, err := store.Load(driven.PromptCautious)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()

	fresh, err := store.Load(driven.PromptCautious)
	require.NoError(t, err)
	assert.Equal(t, "Be gentle.\n\nExcerpts:\n%s\n\nQuestion: %s\n\nAnswer:", fresh)
}

func TestPromptStore_Dir(t *testing.T) {
	tmpDir := t.TempDir()
	promptDir := filepath.Join(tmpDir, "prompts")

	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	assert.Equal(t, promptDir, store.Dir())
}
