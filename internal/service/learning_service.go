package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/internal/repository"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/apperror"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateLearningRequest, cover *AvatarFile) (*model.Learning, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Learning, error)
	GetAll(ctx context.Context, filter dto.LearningFilter) (*dto.PaginatedLearningResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateLearningRequest, cover *AvatarFile) (*model.Learning, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	ReplaceTechs(ctx context.Context, actorID, id uuid.UUID, techIDs []uuid.UUID) (*model.Learning, error)
	Join(ctx context.Context, userID, id uuid.UUID) error
	Leave(ctx context.Context, userID, id uuid.UUID) error
}

type learningService struct {
	learningRepo repository.LearningRepository
	techRepo     repository.TechRepository
	userRepo     repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewLearningService(
	learningRepo repository.LearningRepository,
	techRepo repository.TechRepository,
	userRepo repository.UserRepository,
	imageStorage storage.ImageStorage,
) LearningService {
	return &learningService{
		learningRepo: learningRepo,
		techRepo:     techRepo,
		userRepo:     userRepo,
		imageStorage: imageStorage,
	}
}

func (s *learningService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateLearningRequest, cover *AvatarFile) (*model.Learning, error) {
	if _, err := requireActor(ctx, s.userRepo, actorID, model.RoleAdmin); err != nil {
		return nil, err
	}

	var coverURL *string
	if cover != nil && cover.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, cover.Reader, "learning-covers", cover.FileName, "")
		if err != nil {
			return nil, err
		}
		coverURL = &url
	}

	learning := &model.Learning{
		Title:       req.Title,
		Description: req.Description,
		Period:      req.Period,
		Link:        req.Link,
		CoverURL:    coverURL,
		Featured:    req.Featured,
	}

	if err := s.learningRepo.Create(ctx, learning); err != nil {
		return nil, err
	}
	return learning, nil
}

func (s *learningService) GetByID(ctx context.Context, id uuid.UUID) (*model.Learning, error) {
	learning, err := s.learningRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: learning %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}
	return learning, nil
}

func (s *learningService) GetAll(ctx context.Context, filter dto.LearningFilter) (*dto.PaginatedLearningResponse, error) {
	learnings, total, err := s.learningRepo.FindAll(ctx, filter.Search, filter.Offset(), filter.PageSize)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedLearningResponse{
		Data: learnings,
		Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *learningService) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateLearningRequest, cover *AvatarFile) (*model.Learning, error) {
	if _, err := requireActor(ctx, s.userRepo, actorID, model.RoleAdmin); err != nil {
		return nil, err
	}

	learning, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		learning.Title = *req.Title
	}
	if req.Description != nil {
		learning.Description = *req.Description
	}
	if req.Period != nil {
		learning.Period = *req.Period
	}
	if req.Link != nil {
		learning.Link = req.Link
	}
	if req.Featured != nil {
		learning.Featured = *req.Featured
	}

	if cover != nil && cover.Reader != nil && s.imageStorage != nil {
		oldURL := ""
		if learning.CoverURL != nil {
			oldURL = *learning.CoverURL
		}
		url, err := s.imageStorage.UploadImage(ctx, cover.Reader, "learning-covers", cover.FileName, oldURL)
		if err != nil {
			return nil, err
		}
		learning.CoverURL = &url
	}

	if err := s.learningRepo.Update(ctx, learning); err != nil {
		return nil, err
	}
	return learning, nil
}

func (s *learningService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := requireActor(ctx, s.userRepo, actorID, model.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	return s.learningRepo.Delete(ctx, id)
}

func (s *learningService) ReplaceTechs(ctx context.Context, actorID, id uuid.UUID, techIDs []uuid.UUID) (*model.Learning, error) {
	if _, err := requireActor(ctx, s.userRepo, actorID, model.RoleAdmin); err != nil {
		return nil, err
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	techIDs = dedupe(techIDs)

	if len(techIDs) > 0 {
		techs, err := s.techRepo.FindByIDs(ctx, techIDs)
		if err != nil {
			return nil, err
		}
		if len(techs) != len(techIDs) {
			return nil, fmt.Errorf("%w: one or more techs do not exist", apperror.ErrNotFound)
		}
	}

	if err := s.learningRepo.ReplaceTechs(ctx, id, techIDs); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *learningService) Join(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := requireActor(ctx, s.userRepo, userID, model.RoleUser); err != nil {
		return err
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	return s.learningRepo.AddLearner(ctx, id, userID)
}

// Leave is a silent no-op when the user never joined.
func (s *learningService) Leave(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	return s.learningRepo.RemoveLearner(ctx, id, userID)
}
