package drive

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-cloud-drive/internal/models"
)

// GormGateway implements Gateway on top of a GORM connection. All queries
// filter by owner, mirroring the row-level-security rules of the original
// backend.
type GormGateway struct {
	db *gorm.DB
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

func (g *GormGateway) FolderByID(ctx context.Context, ownerID, id string) (*models.Folder, error) {
	var folder models.Folder
	err := g.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&folder).Error
	if err != nil {
		return nil, translate(err)
	}
	return &folder, nil
}

func (g *GormGateway) FolderByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	var folder models.Folder
	query := g.db.WithContext(ctx).Where("owner_id = ? AND name = ?", ownerID, name)
	query = whereParent(query, "parent_id", parentID)
	if err := query.First(&folder).Error; err != nil {
		return nil, translate(err)
	}
	return &folder, nil
}

func (g *GormGateway) FoldersIn(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	var folders []models.Folder
	query := g.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name")
	query = whereParent(query, "parent_id", parentID)
	if err := query.Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (g *GormGateway) CreateFolder(ctx context.Context, folder *models.Folder) error {
	return translate(g.db.WithContext(ctx).Create(folder).Error)
}

func (g *GormGateway) RenameFolder(ctx context.Context, ownerID, id, newName string) error {
	result := g.db.WithContext(ctx).Model(&models.Folder{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("name", newName)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) DeleteFolder(ctx context.Context, ownerID, id string) error {
	result := g.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Folder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) FolderChildCounts(ctx context.Context, ownerID, folderID string) (int64, int64, error) {
	var files, subfolders int64
	err := g.db.WithContext(ctx).Model(&models.File{}).
		Where("owner_id = ? AND folder_id = ?", ownerID, folderID).
		Count(&files).Error
	if err != nil {
		return 0, 0, err
	}
	err = g.db.WithContext(ctx).Model(&models.Folder{}).
		Where("owner_id = ? AND parent_id = ?", ownerID, folderID).
		Count(&subfolders).Error
	if err != nil {
		return 0, 0, err
	}
	return files, subfolders, nil
}

func (g *GormGateway) FileByID(ctx context.Context, ownerID, id string) (*models.File, error) {
	var file models.File
	err := g.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&file).Error
	if err != nil {
		return nil, translate(err)
	}
	return &file, nil
}

func (g *GormGateway) FilesIn(ctx context.Context, ownerID string, folderID *string) ([]models.File, error) {
	var files []models.File
	query := g.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC")
	query = whereParent(query, "folder_id", folderID)
	if err := query.Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (g *GormGateway) CreateFile(ctx context.Context, file *models.File) error {
	return translate(g.db.WithContext(ctx).Create(file).Error)
}

func (g *GormGateway) RenameFile(ctx context.Context, ownerID, id, newName string) error {
	result := g.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("name", newName)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) DeleteFile(ctx context.Context, ownerID, id string) error {
	result := g.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.File{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) SetFavorite(ctx context.Context, ownerID, id string, favorite bool) error {
	result := g.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("is_favorite", favorite)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) FavoriteFiles(ctx context.Context, ownerID string) ([]models.File, error) {
	var files []models.File
	err := g.db.WithContext(ctx).
		Where("owner_id = ? AND is_favorite = ?", ownerID, true).
		Order("created_at DESC").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (g *GormGateway) SumFileSizes(ctx context.Context, ownerID string) (int64, error) {
	var total int64
	err := g.db.WithContext(ctx).Model(&models.File{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// whereParent applies a nullable parent filter: nil means the drive root.
func whereParent(query *gorm.DB, column string, id *string) *gorm.DB {
	if id == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *id)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	default:
		return err
	}
}
