package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FabioCLima/healthbot-project/pkg/adapters/file"
	"github.com/FabioCLima/healthbot-project/pkg/domain"
	"github.com/FabioCLima/healthbot-project/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunStateStoreContract(t, store)
}

func TestFileStore_WritesJSONFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	state := domain.NewState("my-session", domain.StepAskTopic)
	require.NoError(t, store.Save(ctx, "my-session", state))

	// One readable JSON file per session.
	data, err := os.ReadFile(filepath.Join(dir, "my-session.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id": "my-session"`)
}

func TestFileStore_DefaultBasePath(t *testing.T) {
	store := file.NewStore("")
	assert.Equal(t, filepath.Join(".healthbot", "sessions"), store.BasePath)
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "keep", domain.NewState("keep", domain.StepAskTopic)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, sessions)
}
