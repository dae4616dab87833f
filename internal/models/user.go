package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultStorageLimit is the quota applied to accounts without a paid plan.
const DefaultStorageLimit = 500 * 1024 * 1024 // 500 MiB

// User merges account identity with the profile fields shown in the
// profile editor and the admin console.
type User struct {
	ID           string    `json:"id" gorm:"primarykey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	AvatarURL    string    `json:"avatar_url"`
	Role         string    `json:"role" gorm:"default:user"`
	Plan         string    `json:"plan"`
	IsPro        bool      `json:"is_pro" gorm:"default:false"`
	StorageLimit int64     `json:"storage_limit" gorm:"default:524288000"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.StorageLimit == 0 {
		u.StorageLimit = DefaultStorageLimit
	}
	return nil
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
