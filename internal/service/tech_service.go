package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skb111/Community-API-Backend-sub001/internal/cache"
	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/internal/repository"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/apperror"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TechService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateTechRequest, icon *AvatarFile) (*model.Tech, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tech, error)
	GetAll(ctx context.Context, filter dto.TechFilter) (*dto.PaginatedTechResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateTechRequest, icon *AvatarFile) (*model.Tech, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type techService struct {
	techRepo     repository.TechRepository
	userRepo     repository.UserRepository
	techCache    *cache.TechCache
	projectCache *cache.ProjectCache
	imageStorage storage.ImageStorage
}

func NewTechService(
	techRepo repository.TechRepository,
	userRepo repository.UserRepository,
	techCache *cache.TechCache,
	projectCache *cache.ProjectCache,
	imageStorage storage.ImageStorage,
) TechService {
	return &techService{
		techRepo:     techRepo,
		userRepo:     userRepo,
		techCache:    techCache,
		projectCache: projectCache,
		imageStorage: imageStorage,
	}
}

func (s *techService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateTechRequest, icon *AvatarFile) (*model.Tech, error) {
	actor, err := requireActor(ctx, s.userRepo, actorID, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", apperror.ErrInvalidInput)
	}

	if err := s.ensureNameAvailable(ctx, name, nil); err != nil {
		return nil, err
	}

	var iconURL *string
	if icon != nil && icon.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, icon.Reader, "tech-icons", icon.FileName, "")
		if err != nil {
			return nil, err
		}
		iconURL = &url
	}

	tech := &model.Tech{
		Name:        name,
		IconURL:     iconURL,
		Description: req.Description,
		CreatorID:   &actor.ID,
	}

	if err := s.techRepo.Create(ctx, tech); err != nil {
		// The unique index is authoritative; a racing create loses here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: tech named %q already exists", apperror.ErrConflict, name)
		}
		return nil, err
	}

	s.techCache.InvalidateAll(ctx)
	return tech, nil
}

func (s *techService) GetByID(ctx context.Context, id uuid.UUID) (*model.Tech, error) {
	if tech, ok := s.techCache.GetTech(ctx, id); ok {
		return tech, nil
	}

	tech, err := s.techRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tech %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}

	s.techCache.SetTech(ctx, tech)
	return tech, nil
}

func (s *techService) GetAll(ctx context.Context, filter dto.TechFilter) (*dto.PaginatedTechResponse, error) {
	filters := filter.FilterMap()

	techs, listOK := s.techCache.GetList(ctx, filter.Page, filter.PageSize, filters)
	total, countOK := s.techCache.GetCount(ctx, filters)
	if listOK && countOK {
		return &dto.PaginatedTechResponse{
			Data: techs,
			Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
		}, nil
	}

	techs, total, err := s.techRepo.FindAll(ctx, filter.Search, filter.Offset(), filter.PageSize)
	if err != nil {
		return nil, err
	}

	s.techCache.SetList(ctx, filter.Page, filter.PageSize, filters, techs)
	s.techCache.SetCount(ctx, filters, total)

	return &dto.PaginatedTechResponse{
		Data: techs,
		Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *techService) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateTechRequest, icon *AvatarFile) (*model.Tech, error) {
	if _, err := requireActor(ctx, s.userRepo, actorID, model.RoleAdmin); err != nil {
		return nil, err
	}

	tech, err := s.techRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tech %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be blank", apperror.ErrInvalidInput)
		}
		if name != tech.Name {
			if err := s.ensureNameAvailable(ctx, name, &id); err != nil {
				return nil, err
			}
			tech.Name = name
		}
	}

	if req.Description != nil {
		tech.Description = *req.Description
	}

	if icon != nil && icon.Reader != nil && s.imageStorage != nil {
		oldURL := ""
		if tech.IconURL != nil {
			oldURL = *tech.IconURL
		}
		url, err := s.imageStorage.UploadImage(ctx, icon.Reader, "tech-icons", icon.FileName, oldURL)
		if err != nil {
			return nil, err
		}
		tech.IconURL = &url
	}

	if err := s.techRepo.Update(ctx, tech); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: tech named %q already exists", apperror.ErrConflict, tech.Name)
		}
		return nil, err
	}

	// Tech rows are embedded in cached projects, so the fan-out crosses
	// entity classes.
	s.techCache.InvalidateTech(ctx, id)
	s.techCache.InvalidateAll(ctx)
	s.projectCache.InvalidateAll(ctx)

	return tech, nil
}

func (s *techService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := requireActor(ctx, s.userRepo, actorID, model.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.techRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: tech %s", apperror.ErrNotFound, id)
		}
		return err
	}

	if err := s.techRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.techCache.InvalidateTech(ctx, id)
	s.techCache.InvalidateAll(ctx)
	s.projectCache.InvalidateAll(ctx)

	return nil
}

// ensureNameAvailable implements the duplicate-name fast path: a warm
// name-lookup entry conflicts without a database round-trip; a database find
// backfills the entry before raising the conflict so the next attempt hits
// the fast path. Best effort only; the unique index decides races.
func (s *techService) ensureNameAvailable(ctx context.Context, name string, exclude *uuid.UUID) error {
	if id, ok := s.techCache.GetNameLookup(ctx, name); ok {
		if exclude == nil || id != *exclude {
			return fmt.Errorf("%w: tech named %q already exists", apperror.ErrConflict, name)
		}
		return nil
	}

	existing, err := s.techRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if exclude != nil && existing.ID == *exclude {
		return nil
	}

	s.techCache.SetNameLookup(ctx, name, existing.ID)
	return fmt.Errorf("%w: tech named %q already exists", apperror.ErrConflict, name)
}
