package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	CoverURL     *string        `gorm:"type:text" json:"cover_url,omitempty"`
	RepoLink     *string        `gorm:"type:text" json:"repo_link,omitempty"`
	Featured     bool           `gorm:"default:false" json:"featured"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null" json:"owner_id"`
	Owner        User           `gorm:"constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Techs        []Tech         `gorm:"many2many:project_techs" json:"techs,omitempty"`
	Contributors []User         `gorm:"many2many:project_contributors" json:"contributors,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

// ProjectTech is the project <-> tech junction row. Uniqueness is enforced
// on the (project, tech) pair.
type ProjectTech struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	TechID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"tech_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ProjectContributor is the project <-> contributing user junction row.
// A project's owner must never appear here.
type ProjectContributor struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
