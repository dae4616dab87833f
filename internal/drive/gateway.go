package drive

import (
	"context"

	"go-cloud-drive/internal/models"
)

// Gateway is the metadata-store side of the remote backend: relational CRUD
// on folders and files, scoped to one owner per call. The production
// implementation wraps GORM/Postgres; tests substitute an in-memory fake.
//
// Implementations report missing rows as ErrNotFound and unique-constraint
// violations on folder creation as ErrDuplicateName.
type Gateway interface {
	FolderByID(ctx context.Context, ownerID, id string) (*models.Folder, error)
	FolderByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error)
	FoldersIn(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error)
	CreateFolder(ctx context.Context, folder *models.Folder) error
	RenameFolder(ctx context.Context, ownerID, id, newName string) error
	DeleteFolder(ctx context.Context, ownerID, id string) error
	// FolderChildCounts backs the non-empty-folder delete precondition.
	FolderChildCounts(ctx context.Context, ownerID, folderID string) (files, subfolders int64, err error)

	FileByID(ctx context.Context, ownerID, id string) (*models.File, error)
	FilesIn(ctx context.Context, ownerID string, folderID *string) ([]models.File, error)
	CreateFile(ctx context.Context, file *models.File) error
	RenameFile(ctx context.Context, ownerID, id, newName string) error
	DeleteFile(ctx context.Context, ownerID, id string) error
	SetFavorite(ctx context.Context, ownerID, id string, favorite bool) error
	FavoriteFiles(ctx context.Context, ownerID string) ([]models.File, error)
	// SumFileSizes recomputes the owner's total stored bytes from scratch.
	SumFileSizes(ctx context.Context, ownerID string) (int64, error)
}
