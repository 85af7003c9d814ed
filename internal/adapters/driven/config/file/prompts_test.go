package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
)

func TestPromptStore_CreatesDefaultsOnFirstLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswerSystem)
	require.NoError(t, err)
	assert.Contains(t, prompt, "grounding context")

	_, err = os.Stat(filepath.Join(dir, driven.PromptAnswerSystem+".txt"))
	assert.NoError(t, err, "default prompt file should be created lazily")
}

func TestPromptStore_LoadsCustomisedPrompt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	require.NoError(t, os.MkdirAll(dir, 0700))
	path := filepath.Join(dir, driven.PromptGroundingHeader+".txt")
	require.NoError(t, os.WriteFile(path, []byte("カスタムヘッダ\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptGroundingHeader)
	require.NoError(t, err)
	assert.Equal(t, "カスタムヘッダ", prompt, "file content wins and is trimmed")
}

func TestPromptStore_ReloadPicksUpEdits(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptAnswerSystem)
	require.NoError(t, err)

	path := filepath.Join(dir, driven.PromptAnswerSystem+".txt")
	require.NoError(t, os.WriteFile(path, []byte("edited"), 0600))

	store.Reload()

	prompt, err := store.Load(driven.PromptAnswerSystem)
	require.NoError(t, err)
	assert.Equal(t, "edited", prompt)
}

func TestPromptStore_UnknownPromptFails(t *testing.T) {
	store, err := NewPromptStore(filepath.Join(t.TempDir(), "prompts"))
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}
