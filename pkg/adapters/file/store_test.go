package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/depsnap/pkg/adapters/file"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/ports"
	"github.com/aretw0/depsnap/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_KeysWithSeparators(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()
	key := `C:\src\app\app.csproj|net8.0`

	require.NoError(t, store.Save(ctx, key, snapshot.Empty(`C:\src\app\app.csproj`, domain.NewTargetFramework("net8.0"))))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStore_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not base64!.json"), []byte("{}"), 0644))

	keys, err := file.NewStore(dir).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	keys, err := file.NewStore(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "k", snapshot.Empty("/p", domain.NewTargetFramework("net8.0"))))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{"), 0644))

	_, err = store.Load(ctx, "k")
	assert.ErrorContains(t, err, "failed to unmarshal snapshot")
}
