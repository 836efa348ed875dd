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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateSkillRequest) (*model.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Skill, error)
	GetAll(ctx context.Context, filter dto.SkillFilter) (*dto.PaginatedSkillResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateSkillRequest) (*model.Skill, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type skillService struct {
	skillRepo  repository.SkillRepository
	userRepo   repository.UserRepository
	skillCache *cache.SkillCache
}

func NewSkillService(skillRepo repository.SkillRepository, userRepo repository.UserRepository, skillCache *cache.SkillCache) SkillService {
	return &skillService{
		skillRepo:  skillRepo,
		userRepo:   userRepo,
		skillCache: skillCache,
	}
}

// Create is open to every authenticated user; skills are community-curated.
func (s *skillService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateSkillRequest) (*model.Skill, error) {
	actor, err := requireActor(ctx, s.userRepo, actorID, model.RoleUser)
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

	skill := &model.Skill{
		Name:        name,
		Description: req.Description,
		CreatorID:   &actor.ID,
	}

	if err := s.skillRepo.Create(ctx, skill); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: skill named %q already exists", apperror.ErrConflict, name)
		}
		return nil, err
	}

	s.skillCache.InvalidateAll(ctx)
	return skill, nil
}

func (s *skillService) GetByID(ctx context.Context, id uuid.UUID) (*model.Skill, error) {
	if skill, ok := s.skillCache.GetSkill(ctx, id); ok {
		return skill, nil
	}

	skill, err := s.skillRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: skill %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}

	s.skillCache.SetSkill(ctx, skill)
	return skill, nil
}

func (s *skillService) GetAll(ctx context.Context, filter dto.SkillFilter) (*dto.PaginatedSkillResponse, error) {
	filters := filter.FilterMap()

	skills, listOK := s.skillCache.GetList(ctx, filter.Page, filter.PageSize, filters)
	total, countOK := s.skillCache.GetCount(ctx, filters)
	if listOK && countOK {
		return &dto.PaginatedSkillResponse{
			Data: skills,
			Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
		}, nil
	}

	skills, total, err := s.skillRepo.FindAll(ctx, filter.Search, filter.Offset(), filter.PageSize)
	if err != nil {
		return nil, err
	}

	s.skillCache.SetList(ctx, filter.Page, filter.PageSize, filters, skills)
	s.skillCache.SetCount(ctx, filters, total)

	return &dto.PaginatedSkillResponse{
		Data: skills,
		Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *skillService) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateSkillRequest) (*model.Skill, error) {
	actor, err := requireActor(ctx, s.userRepo, actorID, model.RoleUser)
	if err != nil {
		return nil, err
	}

	skill, err := s.skillRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: skill %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}

	// Mutable by its creator or anyone ranked admin and above.
	isCreator := skill.CreatorID != nil && *skill.CreatorID == actor.ID
	if !isCreator && !actor.Role.AtLeast(model.RoleAdmin) {
		return nil, fmt.Errorf("%w: only the creator or an admin can update this skill", apperror.ErrForbidden)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be blank", apperror.ErrInvalidInput)
		}
		if name != skill.Name {
			if err := s.ensureNameAvailable(ctx, name, &id); err != nil {
				return nil, err
			}
			skill.Name = name
		}
	}

	if req.Description != nil {
		skill.Description = *req.Description
	}

	if err := s.skillRepo.Update(ctx, skill); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: skill named %q already exists", apperror.ErrConflict, skill.Name)
		}
		return nil, err
	}

	s.skillCache.InvalidateSkill(ctx, id)
	s.skillCache.InvalidateAll(ctx)

	return skill, nil
}

func (s *skillService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := requireActor(ctx, s.userRepo, actorID, model.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.skillRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: skill %s", apperror.ErrNotFound, id)
		}
		return err
	}

	if err := s.skillRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.skillCache.InvalidateSkill(ctx, id)
	s.skillCache.InvalidateAll(ctx)

	return nil
}

func (s *skillService) ensureNameAvailable(ctx context.Context, name string, exclude *uuid.UUID) error {
	if id, ok := s.skillCache.GetNameLookup(ctx, name); ok {
		if exclude == nil || id != *exclude {
			return fmt.Errorf("%w: skill named %q already exists", apperror.ErrConflict, name)
		}
		return nil
	}

	existing, err := s.skillRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if exclude != nil && existing.ID == *exclude {
		return nil
	}

	s.skillCache.SetNameLookup(ctx, name, existing.ID)
	return fmt.Errorf("%w: skill named %q already exists", apperror.ErrConflict, name)
}
