package repository

import (
	"context"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectFilter narrows project list queries. Zero values mean "no filter".
type ProjectFilter struct {
	Featured *bool
	Search   string
	TechID   *uuid.UUID
	OwnerID  *uuid.UUID
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	FindAll(ctx context.Context, filter ProjectFilter, offset, limit int) ([]model.Project, int64, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceTechs(ctx context.Context, projectID uuid.UUID, techIDs []uuid.UUID) error
	AddTechs(ctx context.Context, projectID uuid.UUID, techIDs []uuid.UUID) error
	RemoveTech(ctx context.Context, projectID, techID uuid.UUID) error
	ReplaceContributors(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error
	AddContributors(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error
	RemoveContributor(ctx context.Context, projectID, userID uuid.UUID) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Techs").
		Preload("Contributors").
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindAll(ctx context.Context, filter ProjectFilter, offset, limit int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Project{})

	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	if filter.Search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	if filter.TechID != nil {
		query = query.Joins(
			"JOIN project_techs ON project_techs.project_id = projects.id AND project_techs.tech_id = ?",
			*filter.TechID,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Owner").
		Preload("Techs").
		Preload("Contributors").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Soft delete: the row keeps its junction history.
	return r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id).Error
}

// ReplaceTechs swaps the project's tech set atomically. Either every row
// change commits or none does.
func (r *projectRepository) ReplaceTechs(ctx context.Context, projectID uuid.UUID, techIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectTech{}).Error; err != nil {
			return err
		}
		for _, techID := range techIDs {
			if err := tx.Create(&model.ProjectTech{ProjectID: projectID, TechID: techID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddTechs attaches the given techs in one transaction; rows that already
// exist are left untouched.
func (r *projectRepository) AddTechs(ctx context.Context, projectID uuid.UUID, techIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, techID := range techIDs {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.ProjectTech{ProjectID: projectID, TechID: techID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveTech is a no-op when the association does not exist.
func (r *projectRepository) RemoveTech(ctx context.Context, projectID, techID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND tech_id = ?", projectID, techID).
		Delete(&model.ProjectTech{}).Error
}

func (r *projectRepository) ReplaceContributors(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectContributor{}).Error; err != nil {
			return err
		}
		for _, userID := range userIDs {
			if err := tx.Create(&model.ProjectContributor{ProjectID: projectID, UserID: userID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *projectRepository) AddContributors(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, userID := range userIDs {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.ProjectContributor{ProjectID: projectID, UserID: userID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *projectRepository) RemoveContributor(ctx context.Context, projectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.ProjectContributor{}).Error
}
