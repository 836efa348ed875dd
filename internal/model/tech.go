package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tech struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	IconURL     *string        `gorm:"type:text" json:"icon_url,omitempty"`
	Description string         `gorm:"type:text" json:"description"`
	CreatorID   *uuid.UUID     `gorm:"type:uuid" json:"creator_id,omitempty"`
	Creator     *User          `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tech) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}
