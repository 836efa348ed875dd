package repository

import (
	"context"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TechRepository interface {
	Create(ctx context.Context, tech *model.Tech) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tech, error)
	FindByName(ctx context.Context, name string) (*model.Tech, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tech, error)
	FindAll(ctx context.Context, search string, offset, limit int) ([]model.Tech, int64, error)
	Update(ctx context.Context, tech *model.Tech) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type techRepository struct {
	db *gorm.DB
}

func NewTechRepository(db *gorm.DB) TechRepository {
	return &techRepository{db: db}
}

func (r *techRepository) Create(ctx context.Context, tech *model.Tech) error {
	return r.db.WithContext(ctx).Create(tech).Error
}

func (r *techRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tech, error) {
	var tech model.Tech
	if err := r.db.WithContext(ctx).First(&tech, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

// FindByName matches the exact (case-sensitive) name, as the unique index does.
func (r *techRepository) FindByName(ctx context.Context, name string) (*model.Tech, error) {
	var tech model.Tech
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tech).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *techRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Tech, error) {
	var techs []model.Tech
	if len(ids) == 0 {
		return techs, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&techs).Error; err != nil {
		return nil, err
	}
	return techs, nil
}

func (r *techRepository) FindAll(ctx context.Context, search string, offset, limit int) ([]model.Tech, int64, error) {
	var techs []model.Tech
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Tech{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&techs).Error; err != nil {
		return nil, 0, err
	}

	return techs, total, nil
}

func (r *techRepository) Update(ctx context.Context, tech *model.Tech) error {
	return r.db.WithContext(ctx).Save(tech).Error
}

func (r *techRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Soft delete: referential history survives.
	return r.db.WithContext(ctx).Delete(&model.Tech{}, "id = ?", id).Error
}
