package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go-cloud-drive/internal/models"
)

// fakeGateway is an in-memory Gateway with the same error contract as the
// GORM implementation, including the unique (owner, parent, name) constraint
// on folders. The nil-parent case mirrors the partial root index that
// database.Migrate adds, so root siblings collide here exactly as they do on
// Postgres.
type fakeGateway struct {
	mu      sync.Mutex
	folders map[string]*models.Folder
	files   map[string]*models.File
	nextID  int

	folderCreates int
	fileCreates   int

	// beforeCreateFolder runs inside CreateFolder before the insert; tests
	// use it to interleave a concurrent writer.
	beforeCreateFolder func(*models.Folder)
	createFileErr      error
	renameFileErr      error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		folders: make(map[string]*models.Folder),
		files:   make(map[string]*models.File),
	}
}

func (g *fakeGateway) genID() string {
	g.nextID++
	return fmt.Sprintf("id-%d", g.nextID)
}

func (g *fakeGateway) FolderByID(_ context.Context, ownerID, id string) (*models.Folder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	folder, ok := g.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	copied := *folder
	return &copied, nil
}

func (g *fakeGateway) FolderByName(_ context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if folder := g.findFolder(ownerID, parentID, name); folder != nil {
		copied := *folder
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (g *fakeGateway) findFolder(ownerID string, parentID *string, name string) *models.Folder {
	for _, folder := range g.folders {
		if folder.OwnerID == ownerID && folder.Name == name && sameParent(folder.ParentID, parentID) {
			return folder
		}
	}
	return nil
}

func (g *fakeGateway) FoldersIn(_ context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []models.Folder
	for _, folder := range g.folders {
		if folder.OwnerID == ownerID && sameParent(folder.ParentID, parentID) {
			out = append(out, *folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (g *fakeGateway) CreateFolder(_ context.Context, folder *models.Folder) error {
	if g.beforeCreateFolder != nil {
		g.beforeCreateFolder(folder)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.findFolder(folder.OwnerID, folder.ParentID, folder.Name) != nil {
		return ErrDuplicateName
	}
	folder.ID = g.genID()
	folder.CreatedAt = time.Now()
	copied := *folder
	g.folders[folder.ID] = &copied
	g.folderCreates++
	return nil
}

// insertFolder seeds a folder directly, bypassing hooks and counters.
func (g *fakeGateway) insertFolder(ownerID string, parentID *string, name string) *models.Folder {
	g.mu.Lock()
	defer g.mu.Unlock()
	folder := &models.Folder{ID: g.genID(), Name: name, ParentID: parentID, OwnerID: ownerID}
	g.folders[folder.ID] = folder
	copied := *folder
	return &copied
}

func (g *fakeGateway) RenameFolder(_ context.Context, ownerID, id, newName string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	folder, ok := g.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return ErrNotFound
	}
	if other := g.findFolder(ownerID, folder.ParentID, newName); other != nil && other.ID != id {
		return ErrDuplicateName
	}
	folder.Name = newName
	return nil
}

func (g *fakeGateway) DeleteFolder(_ context.Context, ownerID, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	folder, ok := g.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(g.folders, id)
	return nil
}

func (g *fakeGateway) FolderChildCounts(_ context.Context, ownerID, folderID string) (int64, int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var files, subfolders int64
	for _, file := range g.files {
		if file.OwnerID == ownerID && file.FolderID != nil && *file.FolderID == folderID {
			files++
		}
	}
	for _, folder := range g.folders {
		if folder.OwnerID == ownerID && folder.ParentID != nil && *folder.ParentID == folderID {
			subfolders++
		}
	}
	return files, subfolders, nil
}

func (g *fakeGateway) FileByID(_ context.Context, ownerID, id string) (*models.File, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	file, ok := g.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	copied := *file
	return &copied, nil
}

func (g *fakeGateway) FilesIn(_ context.Context, ownerID string, folderID *string) ([]models.File, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []models.File
	for _, file := range g.files {
		if file.OwnerID == ownerID && sameParent(file.FolderID, folderID) {
			out = append(out, *file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (g *fakeGateway) CreateFile(_ context.Context, file *models.File) error {
	if g.createFileErr != nil {
		return g.createFileErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	file.ID = g.genID()
	file.CreatedAt = time.Now()
	copied := *file
	g.files[file.ID] = &copied
	g.fileCreates++
	return nil
}

func (g *fakeGateway) insertFile(ownerID string, folderID *string, name string, size int64) *models.File {
	g.mu.Lock()
	defer g.mu.Unlock()
	file := &models.File{ID: g.genID(), Name: name, StorageKey: "key-" + name, SizeBytes: size, OwnerID: ownerID, FolderID: folderID}
	g.files[file.ID] = file
	copied := *file
	return &copied
}

func (g *fakeGateway) RenameFile(_ context.Context, ownerID, id, newName string) error {
	if g.renameFileErr != nil {
		return g.renameFileErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	file, ok := g.files[id]
	if !ok || file.OwnerID != ownerID {
		return ErrNotFound
	}
	file.Name = newName
	return nil
}

func (g *fakeGateway) DeleteFile(_ context.Context, ownerID, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	file, ok := g.files[id]
	if !ok || file.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(g.files, id)
	return nil
}

func (g *fakeGateway) SetFavorite(_ context.Context, ownerID, id string, favorite bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	file, ok := g.files[id]
	if !ok || file.OwnerID != ownerID {
		return ErrNotFound
	}
	file.IsFavorite = favorite
	return nil
}

func (g *fakeGateway) FavoriteFiles(_ context.Context, ownerID string) ([]models.File, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []models.File
	for _, file := range g.files {
		if file.OwnerID == ownerID && file.IsFavorite {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (g *fakeGateway) SumFileSizes(_ context.Context, ownerID string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var total int64
	for _, file := range g.files {
		if file.OwnerID == ownerID {
			total += file.SizeBytes
		}
	}
	return total, nil
}

// fakeStorage is an in-memory object store.
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(reader io.Reader, key string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Download(key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) GetPublicURL(key string) string {
	return "https://objects.test/" + key
}

func (s *fakeStorage) GetPresignedURL(key string, _ time.Duration) (string, error) {
	return "https://objects.test/" + key + "?signed=1", nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
