package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/storage/file"
)

func newStore(t *testing.T) (*file.Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "saves")
	s, err := file.NewStore(dir)
	require.NoError(t, err)
	return s, dir
}

func TestStore_SaveLoadListDelete(t *testing.T) {
	s, dir := newStore(t)
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.Save(ctx, "quicksave", []byte(`{"day":1}`)))
	require.NoError(t, s.Save(ctx, "autosave", []byte(`{"day":2}`)))
	require.NoError(t, s.Save(ctx, "quicksave", []byte(`{"day":3}`)))
	assert.FileExists(t, filepath.Join(dir, "quicksave.json"))

	data, err := s.Load(ctx, "quicksave")
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":3}`, string(data))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "autosave", list[0].Name)
	assert.Equal(t, "quicksave", list[1].Name)
	assert.Equal(t, len(`{"day":3}`), list[1].Size)

	require.NoError(t, s.Delete(ctx, "autosave"))
	assert.ErrorIs(t, s.Delete(ctx, "autosave"), gameerr.ErrNotFound)
	_, err = s.Load(ctx, "autosave")
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestStore_RejectsTraversalBeforeWriting(t *testing.T) {
	s, dir := newStore(t)
	err := s.Save(context.Background(), "../../etc/passwd", []byte("root"))
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.NoDirExists(t, dir)

	_, err = s.Load(context.Background(), "../secret")
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.ErrorIs(t, s.Delete(context.Background(), "a/b"), gameerr.ErrValidation)
}

func TestStore_HonoursCancelledContext(t *testing.T) {
	s, dir := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Save(ctx, "quicksave", []byte("{}")), context.Canceled)
	assert.NoDirExists(t, dir)
}

func TestNewStore_RequiresDir(t *testing.T) {
	_, err := file.NewStore(" ")
	assert.ErrorIs(t, err, gameerr.ErrValidation)
}
