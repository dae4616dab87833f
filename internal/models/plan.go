package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanFeatures is a list of marketing bullet points stored as jsonb.
type PlanFeatures []string

// Scan implements the sql.Scanner interface
func (f *PlanFeatures) Scan(value interface{}) error {
	if value == nil {
		*f = PlanFeatures{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal jsonb value")
	}
	return json.Unmarshal(bytes, f)
}

// Value implements the driver.Valuer interface
func (f PlanFeatures) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal(PlanFeatures{})
	}
	return json.Marshal(f)
}

// Plan is a subscription tier managed from the admin console. Subscribing
// copies StorageLimit onto the user's account.
type Plan struct {
	ID           string       `json:"id" gorm:"primarykey"`
	Name         string       `json:"name" gorm:"uniqueIndex;not null"`
	Price        int64        `json:"price" gorm:"not null;default:0"`
	StorageLimit int64        `json:"storage_limit" gorm:"not null"`
	Features     PlanFeatures `json:"features" gorm:"type:jsonb"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.StorageLimit == 0 {
		p.StorageLimit = DefaultStorageLimit
	}
	return nil
}
