package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder is one node of a user's folder tree. ParentID is nil for folders
// that live at the root of the drive. Sibling folders of one owner must not
// share a name; the composite unique index is the final arbiter when two
// sessions race to create the same path. The composite index cannot cover
// root folders (NULL parent_id values compare distinct), so database.Migrate
// adds a partial unique index on (owner_id, name) WHERE parent_id IS NULL.
type Folder struct {
	ID        string    `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_folders_owner_parent_name"`
	ParentID  *string   `json:"parent_id" gorm:"uniqueIndex:idx_folders_owner_parent_name;index"`
	OwnerID   string    `json:"owner_id" gorm:"not null;uniqueIndex:idx_folders_owner_parent_name;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
