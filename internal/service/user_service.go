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

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetAll(ctx context.Context, actorID uuid.UUID, filter dto.UserFilter) (*dto.PaginatedUserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest, avatar *AvatarFile) (*model.User, error)
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role model.Role) error
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error
	ReplaceSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (*model.User, error)
}

type userService struct {
	userRepo     repository.UserRepository
	skillRepo    repository.SkillRepository
	imageStorage storage.ImageStorage
}

func NewUserService(userRepo repository.UserRepository, skillRepo repository.SkillRepository, imageStorage storage.ImageStorage) UserService {
	return &userService{
		userRepo:     userRepo,
		skillRepo:    skillRepo,
		imageStorage: imageStorage,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context, actorID uuid.UUID, filter dto.UserFilter) (*dto.PaginatedUserResponse, error) {
	if err := s.requireRole(ctx, actorID, model.RoleAdmin); err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.FindAll(ctx, filter.Search, filter.Offset(), filter.PageSize)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedUserResponse{
		Data: users,
		Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest, avatar *AvatarFile) (*model.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		oldURL := ""
		if user.AvatarURL != nil {
			oldURL = *user.AvatarURL
		}
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName, oldURL)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", apperror.ErrInvalidInput, role)
	}

	if err := s.requireRole(ctx, actorID, model.RoleRoot); err != nil {
		return err
	}

	if _, err := s.GetByID(ctx, targetID); err != nil {
		return err
	}

	return s.userRepo.UpdateRole(ctx, targetID, role)
}

func (s *userService) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	actor, err := s.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.Role.AtLeast(model.RoleAdmin) {
		return fmt.Errorf("%w: admin access required", apperror.ErrForbidden)
	}

	target, err := s.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	// Removing a fellow admin takes the top rank.
	if target.Role.AtLeast(model.RoleAdmin) && !actor.Role.AtLeast(model.RoleRoot) {
		return fmt.Errorf("%w: root access required to delete an admin", apperror.ErrForbidden)
	}

	return s.userRepo.Delete(ctx, targetID)
}

func (s *userService) ReplaceSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) (*model.User, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	skillIDs = dedupe(skillIDs)

	// Resolve every id; one unknown skill aborts the whole replacement.
	if len(skillIDs) > 0 {
		skills, err := s.skillRepo.FindByIDs(ctx, skillIDs)
		if err != nil {
			return nil, err
		}
		if len(skills) != len(skillIDs) {
			return nil, fmt.Errorf("%w: one or more skills do not exist", apperror.ErrNotFound)
		}
	}

	if err := s.userRepo.ReplaceSkills(ctx, userID, skillIDs); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID)
}

func (s *userService) requireRole(ctx context.Context, actorID uuid.UUID, min model.Role) error {
	_, err := requireActor(ctx, s.userRepo, actorID, min)
	return err
}
