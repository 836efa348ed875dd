package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Learning struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Period      string    `gorm:"size:100" json:"period"`
	Link        *string   `gorm:"type:text" json:"link,omitempty"`
	CoverURL    *string   `gorm:"type:text" json:"cover_url,omitempty"`
	Featured    bool      `gorm:"default:false" json:"featured"`
	Learners    []User    `gorm:"many2many:learning_learners" json:"learners,omitempty"`
	Techs       []Tech    `gorm:"many2many:learning_techs" json:"techs,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *Learning) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
