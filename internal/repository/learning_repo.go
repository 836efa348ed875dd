package repository

import (
	"context"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningRepository interface {
	Create(ctx context.Context, learning *model.Learning) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Learning, error)
	FindAll(ctx context.Context, search string, offset, limit int) ([]model.Learning, int64, error)
	Update(ctx context.Context, learning *model.Learning) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceTechs(ctx context.Context, learningID uuid.UUID, techIDs []uuid.UUID) error
	AddLearner(ctx context.Context, learningID, userID uuid.UUID) error
	RemoveLearner(ctx context.Context, learningID, userID uuid.UUID) error
}

type learningRepository struct {
	db *gorm.DB
}

func NewLearningRepository(db *gorm.DB) LearningRepository {
	return &learningRepository{db: db}
}

func (r *learningRepository) Create(ctx context.Context, learning *model.Learning) error {
	return r.db.WithContext(ctx).Create(learning).Error
}

func (r *learningRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Learning, error) {
	var learning model.Learning
	if err := r.db.WithContext(ctx).
		Preload("Learners").
		Preload("Techs").
		First(&learning, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &learning, nil
}

func (r *learningRepository) FindAll(ctx context.Context, search string, offset, limit int) ([]model.Learning, int64, error) {
	var learnings []model.Learning
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Learning{})

	if search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Techs").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&learnings).Error; err != nil {
		return nil, 0, err
	}

	return learnings, total, nil
}

func (r *learningRepository) Update(ctx context.Context, learning *model.Learning) error {
	return r.db.WithContext(ctx).Save(learning).Error
}

func (r *learningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM learning_learners WHERE learning_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM learning_techs WHERE learning_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Learning{}, "id = ?", id).Error
	})
}

func (r *learningRepository) ReplaceTechs(ctx context.Context, learningID uuid.UUID, techIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM learning_techs WHERE learning_id = ?", learningID).Error; err != nil {
			return err
		}
		for _, techID := range techIDs {
			if err := tx.Exec(
				"INSERT INTO learning_techs (learning_id, tech_id) VALUES (?, ?)",
				learningID, techID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *learningRepository) AddLearner(ctx context.Context, learningID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO learning_learners (learning_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING", learningID, userID).Error
}

func (r *learningRepository) RemoveLearner(ctx context.Context, learningID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM learning_learners WHERE learning_id = ? AND user_id = ?", learningID, userID).Error
}
