package drive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "owner-1"

func newTestManager(t *testing.T, limit int64) (*Manager, *fakeGateway, *fakeStorage) {
	t.Helper()
	gateway := newFakeGateway()
	store := newFakeStorage()
	m, err := NewManager(context.Background(), gateway, store, testOwner, limit)
	require.NoError(t, err)
	return m, gateway, store
}

func TestNewManager_RecomputesUsedBytes(t *testing.T) {
	gateway := newFakeGateway()
	gateway.insertFile(testOwner, nil, "a.txt", 100)
	gateway.insertFile(testOwner, nil, "b.txt", 250)
	gateway.insertFile("someone-else", nil, "c.txt", 9999)

	m, err := NewManager(context.Background(), gateway, newFakeStorage(), testOwner, 1<<20)
	require.NoError(t, err)

	state := m.Snapshot()
	assert.Equal(t, int64(350), state.UsedBytes)
	assert.Len(t, state.Files, 2)
	assert.Nil(t, state.CurrentFolder)
}

func TestNavigateTo_LoadsFolderListing(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)
	trip := gateway.insertFolder(testOwner, nil, "Trip")
	gateway.insertFolder(testOwner, &trip.ID, "Day1")
	gateway.insertFile(testOwner, &trip.ID, "map.png", 10)

	require.NoError(t, m.NavigateTo(context.Background(), &trip.ID))

	state := m.Snapshot()
	require.NotNil(t, state.CurrentFolder)
	assert.Equal(t, trip.ID, state.CurrentFolder.ID)
	require.Len(t, state.Folders, 1)
	assert.Equal(t, "Day1", state.Folders[0].Name)
	require.Len(t, state.Files, 1)
	assert.Equal(t, "map.png", state.Files[0].Name)
}

func TestNavigateTo_UnknownFolder(t *testing.T) {
	m, _, _ := newTestManager(t, 1<<20)
	missing := "no-such-folder"
	err := m.NavigateTo(context.Background(), &missing)
	assert.ErrorIs(t, err, ErrNotFound)

	// The previous listing survives a failed navigation.
	state := m.Snapshot()
	assert.Nil(t, state.CurrentFolder)
}

func TestCreateFolder(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)

	folder, err := m.CreateFolder(context.Background(), "  Photos  ")
	require.NoError(t, err)
	assert.Equal(t, "Photos", folder.Name)
	assert.Nil(t, folder.ParentID)

	state := m.Snapshot()
	require.Len(t, state.Folders, 1)
	assert.Equal(t, folder.ID, state.Folders[0].ID)
	assert.Equal(t, 1, gateway.folderCreates)
}

func TestCreateFolder_EmptyName(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)

	_, err := m.CreateFolder(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, 0, gateway.folderCreates)
}

func TestCreateFolder_DuplicateName(t *testing.T) {
	m, _, _ := newTestManager(t, 1<<20)

	// Root siblings: covered by the partial unique index, not the composite
	// one, since root folders carry a NULL parent.
	_, err := m.CreateFolder(context.Background(), "Photos")
	require.NoError(t, err)
	_, err = m.CreateFolder(context.Background(), "Photos")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// The failed attempt must not leave a phantom entry in the listing.
	assert.Len(t, m.Snapshot().Folders, 1)
}

func TestCreateFolder_SameNameUnderDifferentParents(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)
	parent := gateway.insertFolder(testOwner, nil, "Parent")
	require.NoError(t, m.NavigateTo(context.Background(), &parent.ID))

	// A subfolder may reuse a name that already exists at the root.
	gateway.insertFolder(testOwner, nil, "Photos")
	folder, err := m.CreateFolder(context.Background(), "Photos")
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *folder.ParentID)
}

func TestRenameFolder_UpdatesListing(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)
	folder, err := m.CreateFolder(context.Background(), "Old")
	require.NoError(t, err)

	require.NoError(t, m.RenameFolder(context.Background(), folder.ID, "New"))

	state := m.Snapshot()
	assert.Equal(t, "New", state.Folders[0].Name)
	stored, err := gateway.FolderByID(context.Background(), testOwner, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Name)
}

func TestDeleteFolder_RejectsNonEmpty(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)
	folder, err := m.CreateFolder(context.Background(), "Docs")
	require.NoError(t, err)
	gateway.insertFile(testOwner, &folder.ID, "cv.pdf", 5)

	err = m.DeleteFolder(context.Background(), folder.ID)
	assert.ErrorIs(t, err, ErrFolderNotEmpty)

	// Still present on the backend and in the listing.
	_, err = gateway.FolderByID(context.Background(), testOwner, folder.ID)
	require.NoError(t, err)
	assert.Len(t, m.Snapshot().Folders, 1)
}

func TestDeleteFolder_Empty(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)
	folder, err := m.CreateFolder(context.Background(), "Scratch")
	require.NoError(t, err)

	require.NoError(t, m.DeleteFolder(context.Background(), folder.ID))

	_, err = gateway.FolderByID(context.Background(), testOwner, folder.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, m.Snapshot().Folders)
}

func TestRenameFile_BackendFailureLeavesCache(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)
	file := gateway.insertFile(testOwner, nil, "draft.txt", 10)
	require.NoError(t, m.Refresh(context.Background()))

	gateway.renameFileErr = errors.New("backend down")
	err := m.RenameFile(context.Background(), file.ID, "final.txt")
	require.Error(t, err)

	state := m.Snapshot()
	assert.Equal(t, "draft.txt", state.Files[0].Name)
}

func TestDeleteFile_RemovesObjectAndShrinksQuota(t *testing.T) {
	m, gateway, store := newTestManager(t, 1<<20)
	res, err := m.UploadBatch(context.Background(), []UploadItem{textItem("notes.txt", "", 40)})
	require.NoError(t, err)
	require.Equal(t, 1, res.Uploaded)
	require.Equal(t, 1, store.count())

	require.NoError(t, m.DeleteFile(context.Background(), res.Files[0].ID))

	assert.Equal(t, 0, store.count())
	state := m.Snapshot()
	assert.Empty(t, state.Files)
	assert.Equal(t, int64(0), state.UsedBytes)
	_, err = gateway.FileByID(context.Background(), testOwner, res.Files[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFile_ObjectStoreFailureStillDeletesRow(t *testing.T) {
	m, gateway, store := newTestManager(t, 1<<20)
	res, err := m.UploadBatch(context.Background(), []UploadItem{textItem("notes.txt", "", 40)})
	require.NoError(t, err)

	store.deleteErr = errors.New("object store down")
	require.NoError(t, m.DeleteFile(context.Background(), res.Files[0].ID))

	// The row is gone even though the object remains orphaned.
	_, err = gateway.FileByID(context.Background(), testOwner, res.Files[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), m.Snapshot().UsedBytes)
}

func TestToggleFavorite(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)
	file := gateway.insertFile(testOwner, nil, "fav.jpg", 10)
	require.NoError(t, m.Refresh(context.Background()))

	on, err := m.ToggleFavorite(context.Background(), file.ID)
	require.NoError(t, err)
	assert.True(t, on)

	favorites, err := m.Favorites(context.Background())
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, file.ID, favorites[0].ID)

	off, err := m.ToggleFavorite(context.Background(), file.ID)
	require.NoError(t, err)
	assert.False(t, off)
}

func TestToggleFavorite_FileOutsideCurrentListing(t *testing.T) {
	m, gateway, _ := newTestManager(t, 1<<20)
	folder := gateway.insertFolder(testOwner, nil, "Elsewhere")
	file := gateway.insertFile(testOwner, &folder.ID, "far.txt", 10)

	// The file is not in the cached root listing; the manager falls back to
	// the backend for the current flag.
	on, err := m.ToggleFavorite(context.Background(), file.ID)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestRegistry_ReusesSessionAndUpdatesLimit(t *testing.T) {
	gateway := newFakeGateway()
	registry := NewRegistry(gateway, newFakeStorage())

	first, err := registry.Manager(context.Background(), testOwner, 100)
	require.NoError(t, err)
	second, err := registry.Manager(context.Background(), testOwner, 200)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(200), second.Snapshot().LimitBytes)

	registry.Drop(testOwner)
	third, err := registry.Manager(context.Background(), testOwner, 200)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}
