package drive

import (
	"context"
	"log"
	"strings"
	"sync"

	"go-cloud-drive/internal/models"
	"go-cloud-drive/internal/storage"
)

// ProgressFunc receives progress updates while a batch upload runs.
type ProgressFunc func(progress int, statusMessage string)

// Manager is the state container behind one user's drive view: the listing
// of the currently opened folder, the quota tracker, and upload progress.
// One manager exists per session; its mutex serializes actions the way the
// original single-threaded model did. Every mutation is backend-first: the
// in-memory listing only changes after the backend call succeeded.
type Manager struct {
	mu      sync.Mutex
	gateway Gateway
	objects storage.Storage
	ownerID string

	currentFolder *models.Folder // nil while viewing the root
	folders       []models.Folder
	files         []models.File
	loading       bool
	uploading     bool
	progress      int
	statusMessage string
	quota         *QuotaTracker
	onProgress    ProgressFunc
}

// State is a point-in-time copy of the observable session state.
type State struct {
	CurrentFolder *models.Folder  `json:"current_folder"`
	Folders       []models.Folder `json:"folders"`
	Files         []models.File   `json:"files"`
	Loading       bool            `json:"loading"`
	Uploading     bool            `json:"uploading"`
	Progress      int             `json:"progress"`
	StatusMessage string          `json:"status_message"`
	UsedBytes     int64           `json:"used_bytes"`
	LimitBytes    int64           `json:"limit_bytes"`
}

// NewManager builds a session for ownerID: the stored total is recomputed
// from scratch (the reconciliation point for the incremental tracker) and
// the root listing is loaded.
func NewManager(ctx context.Context, gateway Gateway, objects storage.Storage, ownerID string, limitBytes int64) (*Manager, error) {
	used, err := gateway.SumFileSizes(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		gateway: gateway,
		objects: objects,
		ownerID: ownerID,
		quota:   NewQuotaTracker(used, limitBytes),
	}
	if err := m.NavigateTo(ctx, nil); err != nil {
		return nil, err
	}
	return m, nil
}

// OnProgress registers a callback invoked on every progress change during
// batch uploads.
func (m *Manager) OnProgress(fn ProgressFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onProgress = fn
}

// SetQuotaLimit replaces the storage limit, e.g. after a plan change.
func (m *Manager) SetQuotaLimit(limitBytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota.SetLimit(limitBytes)
}

// Snapshot returns a copy of the observable state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return State{
		CurrentFolder: m.currentFolder,
		Folders:       append([]models.Folder(nil), m.folders...),
		Files:         append([]models.File(nil), m.files...),
		Loading:       m.loading,
		Uploading:     m.uploading,
		Progress:      m.progress,
		StatusMessage: m.statusMessage,
		UsedBytes:     m.quota.Used(),
		LimitBytes:    m.quota.Limit(),
	}
}

// NavigateTo discards the listing and reloads it for the given folder (nil
// for the root).
func (m *Manager) NavigateTo(ctx context.Context, folderID *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loading = true
	defer func() { m.loading = false }()

	var current *models.Folder
	if folderID != nil {
		folder, err := m.gateway.FolderByID(ctx, m.ownerID, *folderID)
		if err != nil {
			return err
		}
		current = folder
	}

	folders, files, err := m.fetchListing(ctx, folderID)
	if err != nil {
		return err
	}

	m.currentFolder = current
	m.folders = folders
	m.files = files
	return nil
}

// Refresh reloads the current folder's listing from the backend. It is the
// end-of-batch backstop that reconciles the cache regardless of which
// per-file steps failed.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked(ctx)
}

func (m *Manager) refreshLocked(ctx context.Context) error {
	folders, files, err := m.fetchListing(ctx, m.currentFolderID())
	if err != nil {
		return err
	}
	m.folders = folders
	m.files = files
	return nil
}

func (m *Manager) fetchListing(ctx context.Context, folderID *string) ([]models.Folder, []models.File, error) {
	folders, err := m.gateway.FoldersIn(ctx, m.ownerID, folderID)
	if err != nil {
		return nil, nil, err
	}
	files, err := m.gateway.FilesIn(ctx, m.ownerID, folderID)
	if err != nil {
		return nil, nil, err
	}
	return folders, files, nil
}

// CreateFolder creates a folder under the current one and appends it to the
// listing.
func (m *Manager) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	folder := &models.Folder{
		Name:     name,
		ParentID: m.currentFolderID(),
		OwnerID:  m.ownerID,
	}
	if err := m.gateway.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}

	m.folders = append(m.folders, *folder)
	return folder, nil
}

// RenameFolder renames a folder and updates the listing entry in place.
func (m *Manager) RenameFolder(ctx context.Context, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.gateway.RenameFolder(ctx, m.ownerID, id, newName); err != nil {
		return err
	}
	for i := range m.folders {
		if m.folders[i].ID == id {
			m.folders[i].Name = newName
			break
		}
	}
	return nil
}

// DeleteFolder removes an empty folder. A folder with any child file or
// subfolder is rejected before any mutation happens.
func (m *Manager) DeleteFolder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	files, subfolders, err := m.gateway.FolderChildCounts(ctx, m.ownerID, id)
	if err != nil {
		return err
	}
	if files > 0 || subfolders > 0 {
		return ErrFolderNotEmpty
	}

	if err := m.gateway.DeleteFolder(ctx, m.ownerID, id); err != nil {
		return err
	}
	for i := range m.folders {
		if m.folders[i].ID == id {
			m.folders = append(m.folders[:i], m.folders[i+1:]...)
			break
		}
	}
	return nil
}

// RenameFile renames a file and updates the listing entry in place.
func (m *Manager) RenameFile(ctx context.Context, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.gateway.RenameFile(ctx, m.ownerID, id, newName); err != nil {
		return err
	}
	for i := range m.files {
		if m.files[i].ID == id {
			m.files[i].Name = newName
			break
		}
	}
	return nil
}

// DeleteFile removes the backing object and then the metadata row; the row
// is the user-visible source of truth, so an object-store failure is logged
// rather than blocking the delete. Quota shrinks only after the row is gone.
func (m *Manager) DeleteFile(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, err := m.gateway.FileByID(ctx, m.ownerID, id)
	if err != nil {
		return err
	}

	if err := m.objects.Delete(file.StorageKey); err != nil {
		log.Printf("delete: leaving orphan object %s: %v", file.StorageKey, err)
	}
	if err := m.gateway.DeleteFile(ctx, m.ownerID, id); err != nil {
		return err
	}

	m.quota.Subtract(file.SizeBytes)
	for i := range m.files {
		if m.files[i].ID == id {
			m.files = append(m.files[:i], m.files[i+1:]...)
			break
		}
	}
	return nil
}

// ToggleFavorite flips a file's favorite flag, backend first.
func (m *Manager) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, cached := m.cachedFile(id)
	if !cached {
		file, err := m.gateway.FileByID(ctx, m.ownerID, id)
		if err != nil {
			return false, err
		}
		current = file.IsFavorite
	}

	next := !current
	if err := m.gateway.SetFavorite(ctx, m.ownerID, id, next); err != nil {
		return false, err
	}
	for i := range m.files {
		if m.files[i].ID == id {
			m.files[i].IsFavorite = next
			break
		}
	}
	return next, nil
}

// Favorites lists the owner's favorite files across all folders.
func (m *Manager) Favorites(ctx context.Context) ([]models.File, error) {
	return m.gateway.FavoriteFiles(ctx, m.ownerID)
}

func (m *Manager) cachedFile(id string) (favorite, ok bool) {
	for i := range m.files {
		if m.files[i].ID == id {
			return m.files[i].IsFavorite, true
		}
	}
	return false, false
}

func (m *Manager) currentFolderID() *string {
	if m.currentFolder == nil {
		return nil
	}
	return &m.currentFolder.ID
}

func (m *Manager) setProgress(progress int, message string) {
	m.progress = progress
	m.statusMessage = message
	if m.onProgress != nil {
		m.onProgress(progress, message)
	}
}
