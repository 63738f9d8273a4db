package docs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
	vfserrors "github.com/Clay-Ferguson/quanta-docs/pkg/vfs/errors"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs/store"
)

const testRoot = "usr"

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.New(context.Background(), &store.Config{
		Type:        store.DatabaseTypeSQLite,
		SQLite:      store.SQLiteConfig{Path: ":memory:"},
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewService(s)
}

// listNames returns the filenames of a folder in presentation order.
func listNames(t *testing.T, svc *Service, caller int64, parent string) []string {
	t.Helper()
	nodes, err := svc.Engine().ReadDir(context.Background(), caller, parent, testRoot)
	require.NoError(t, err)
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Filename
	}
	return names
}

func TestCreateFolderAppends(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ord, err := svc.CreateFolder(ctx, 1, "", "first", "", testRoot)
	require.NoError(t, err)
	assert.Equal(t, int32(1), ord)

	ord, err = svc.CreateFolder(ctx, 1, "", "second", "", testRoot)
	require.NoError(t, err)
	assert.Equal(t, int32(2), ord)

	assert.Equal(t, []string{"first", "second"}, listNames(t, svc, 1, ""))
}

func TestCreateFolderInsertAfterShiftsSiblings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.CreateFolder(ctx, 1, "", name, "", testRoot)
		require.NoError(t, err)
	}

	ord, err := svc.CreateFolder(ctx, 1, "", "inserted", "a", testRoot)
	require.NoError(t, err)
	assert.Equal(t, int32(2), ord)
	assert.Equal(t, []string{"a", "inserted", "b", "c"}, listNames(t, svc, 1, ""))
}

func TestCreateFolderCreatesMissingAncestors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, 1, "deep/nested", "leaf", "", testRoot)
	require.NoError(t, err)

	stats, err := svc.Engine().Stat(ctx, "deep/nested/leaf", testRoot)
	require.NoError(t, err)
	assert.True(t, stats.IsDirectory)
}

func TestCreateFolderUnknownAnchor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, 1, "", "x", "no-such-sibling", testRoot)
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrNotFound))
}

func TestCreateFile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ord, err := svc.CreateFile(ctx, 1, "", "notes.md", "", testRoot)
	require.NoError(t, err)
	assert.Equal(t, int32(1), ord)

	node, err := svc.Engine().ReadFile(ctx, 1, "", "notes.md", testRoot)
	require.NoError(t, err)
	assert.Empty(t, node.Text())
	assert.False(t, node.IsBinary)

	_, err = svc.CreateFile(ctx, 1, "", "notes.md", "", testRoot)
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrAlreadyExists))
}

func TestSaveFileNewAppendsAtEnd(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFile(ctx, 1, "", "a.md", "", testRoot)
	require.NoError(t, err)

	require.NoError(t, svc.SaveFile(ctx, 1, "", "b.md", testRoot, []byte("hello")))

	node, err := svc.Engine().ReadFile(ctx, 1, "", "b.md", testRoot)
	require.NoError(t, err)
	assert.Equal(t, "hello", node.Text())
	assert.Equal(t, int32(2), node.Ordinal)
}

func TestSaveFilePreservesOrdinalAndPublic(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, 1, "", "doc.md", testRoot, []byte("v1")))
	_, err := svc.SetPublic(ctx, 1, "doc.md", testRoot, true, false)
	require.NoError(t, err)

	require.NoError(t, svc.SaveFile(ctx, 1, "", "doc.md", testRoot, []byte("v2")))

	node, err := svc.Engine().ReadFile(ctx, 1, "", "doc.md", testRoot)
	require.NoError(t, err)
	assert.Equal(t, "v2", node.Text())
	assert.Equal(t, int32(1), node.Ordinal)
	assert.True(t, node.IsPublic)
}

func TestSaveFileBinaryDispatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	require.NoError(t, svc.SaveFile(ctx, 1, "", "img.png", testRoot, payload))

	node, err := svc.Engine().ReadFile(ctx, 1, "", "img.png", testRoot)
	require.NoError(t, err)
	assert.True(t, node.IsBinary)
	assert.Equal(t, payload, node.ContentBinary)
}

func TestSaveFileAuthorization(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, 1, "", "private.md", testRoot, []byte("x")))
	require.NoError(t, svc.SaveFile(ctx, 1, "", "shared.md", testRoot, []byte("x")))
	_, err := svc.SetPublic(ctx, 1, "shared.md", testRoot, true, false)
	require.NoError(t, err)

	// A stranger cannot distinguish a private file from a missing one, and
	// gets a plain denial on a file they can see but do not own.
	err = svc.SaveFile(ctx, 2, "", "private.md", testRoot, []byte("y"))
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrNotFound))
	err = svc.SaveFile(ctx, 2, "", "shared.md", testRoot, []byte("y"))
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrUnauthorized))

	// Admin may overwrite anything.
	require.NoError(t, svc.SaveFile(ctx, vfs.AdminOwnerID, "", "private.md", testRoot, []byte("z")))
}

func TestMoveUpOrDown(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"a.md", "b.md", "c.md"} {
		_, err := svc.CreateFile(ctx, 1, "", name, "", testRoot)
		require.NoError(t, err)
	}

	require.NoError(t, svc.MoveUpOrDown(ctx, 1, "", "b.md", "up", testRoot))
	assert.Equal(t, []string{"b.md", "a.md", "c.md"}, listNames(t, svc, 1, ""))

	require.NoError(t, svc.MoveUpOrDown(ctx, 1, "", "a.md", "down", testRoot))
	assert.Equal(t, []string{"b.md", "c.md", "a.md"}, listNames(t, svc, 1, ""))
}

func TestMoveUpOrDownBounds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"a.md", "b.md"} {
		_, err := svc.CreateFile(ctx, 1, "", name, "", testRoot)
		require.NoError(t, err)
	}

	err := svc.MoveUpOrDown(ctx, 1, "", "a.md", "up", testRoot)
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrBadArgument))
	err = svc.MoveUpOrDown(ctx, 1, "", "b.md", "down", testRoot)
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrBadArgument))

	err = svc.MoveUpOrDown(ctx, 1, "", "a.md", "sideways", testRoot)
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrBadArgument))

	err = svc.MoveUpOrDown(ctx, 1, "", "missing.md", "up", testRoot)
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrNotFound))
}

func TestRenameItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, 1, "", "folder", "", testRoot)
	require.NoError(t, err)
	require.NoError(t, svc.SaveFile(ctx, 1, "folder", "inner.md", testRoot, []byte("x")))

	require.NoError(t, svc.RenameItem(ctx, 1, "folder", "archive", testRoot))

	node, err := svc.Engine().ReadFile(ctx, 1, "archive", "inner.md", testRoot)
	require.NoError(t, err)
	assert.Equal(t, "archive/inner.md", node.FullPath())
}

func TestSetPublicRecursive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, 1, "", "tree", "", testRoot)
	require.NoError(t, err)
	require.NoError(t, svc.SaveFile(ctx, 1, "tree", "leaf.md", testRoot, []byte("x")))

	updated, err := svc.SetPublic(ctx, 1, "tree", testRoot, true, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	node, err := svc.Engine().ReadFile(ctx, 2, "tree", "leaf.md", testRoot)
	require.NoError(t, err)
	assert.True(t, node.IsPublic)
}

func TestDeleteItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateFolder(ctx, 1, "", "folder", "", testRoot)
	require.NoError(t, err)
	require.NoError(t, svc.SaveFile(ctx, 1, "folder", "inner.md", testRoot, []byte("x")))
	require.NoError(t, svc.SaveFile(ctx, 1, "", "top.md", testRoot, []byte("x")))

	// Missing paths are ignored; directories delete recursively.
	deleted, err := svc.DeleteItems(ctx, 1, []string{"folder", "top.md", "never-existed.md"}, testRoot)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	assert.Empty(t, listNames(t, svc, 1, ""))
}

func TestSearchDefaultsAndValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, 1, "", "a.md", testRoot, []byte("alpha beta")))

	// Empty mode and order fall back to MATCH_ANY over modified time.
	results, err := svc.Search(ctx, 1, "alpha", "", testRoot, "", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a.md", results[0].File)

	_, err = svc.Search(ctx, 1, "alpha", "", testRoot, "FUZZY", "")
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrBadArgument))
	_, err = svc.Search(ctx, 1, "alpha", "", testRoot, "", "SHUFFLED")
	assert.True(t, vfserrors.IsCode(err, vfserrors.ErrBadArgument))
}
