package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is the metadata row for one stored object. SizeBytes is fixed at
// creation and never updated; the quota tracker sums it per owner.
type File struct {
	ID         string    `json:"id" gorm:"primarykey"`
	Name       string    `json:"name" gorm:"not null"`
	StorageKey string    `json:"storage_key" gorm:"not null"`
	PublicURL  string    `json:"public_url"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes" gorm:"not null"`
	OwnerID    string    `json:"owner_id" gorm:"not null;index"`
	FolderID   *string   `json:"folder_id" gorm:"index"`
	IsFavorite bool      `json:"is_favorite" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
