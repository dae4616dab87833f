package database

import (
	"go-cloud-drive/internal/config"
	"go-cloud-drive/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Initialize(cfg *config.Config) error {
	var err error
	// TranslateError maps the Postgres unique-violation onto
	// gorm.ErrDuplicatedKey, which the folder resolver relies on.
	DB, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return err
	}
	return Migrate(DB)
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.File{},
		&models.Plan{},
	)
	if err != nil {
		return err
	}

	// The composite unique index on folders never fires for root folders:
	// Postgres treats the NULL parent_id values as distinct. Root siblings
	// need their own partial index to keep names unique.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_folders_owner_root_name
		 ON folders (owner_id, name) WHERE parent_id IS NULL`,
	).Error
}

func GetDB() *gorm.DB {
	return DB
}
