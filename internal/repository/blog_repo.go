package repository

import (
	"context"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogFilter narrows blog list queries.
type BlogFilter struct {
	Topic    string
	Featured *bool
	Search   string
	AuthorID *uuid.UUID
}

type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	FindAll(ctx context.Context, filter BlogFilter, offset, limit int) ([]model.Blog, int64, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&blog, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) FindAll(ctx context.Context, filter BlogFilter, offset, limit int) ([]model.Blog, int64, error) {
	var blogs []model.Blog
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Blog{})

	if filter.Topic != "" {
		query = query.Where("topic = ?", filter.Topic)
	}

	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	if filter.Search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&blogs).Error; err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Save(blog).Error
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Blog{}, "id = ?", id).Error
}
