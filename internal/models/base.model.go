package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseUUIDModel carries no gorm.DeletedAt: integration records are retired
// through IsActive and resumes are only ever hard-deleted.
type BaseUUIDModel struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"     json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"     json:"updatedAt"`
}

func (b *BaseUUIDModel) BeforeSave(tx *gorm.DB) error {
	if b.ID == "" {
		uuidString, err := uuid.NewV7()
		if err != nil {
			return err
		}
		b.ID = uuidString.String()
	}
	return nil
}
