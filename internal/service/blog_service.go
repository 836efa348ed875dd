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

type BlogService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateBlogRequest, cover *AvatarFile) (*model.Blog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	GetAll(ctx context.Context, filter dto.BlogFilter) (*dto.PaginatedBlogResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateBlogRequest, cover *AvatarFile) (*model.Blog, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type blogService struct {
	blogRepo     repository.BlogRepository
	userRepo     repository.UserRepository
	imageStorage storage.ImageStorage
	search       SearchService
}

func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository, imageStorage storage.ImageStorage, search SearchService) BlogService {
	return &blogService{
		blogRepo:     blogRepo,
		userRepo:     userRepo,
		imageStorage: imageStorage,
		search:       search,
	}
}

func (s *blogService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateBlogRequest, cover *AvatarFile) (*model.Blog, error) {
	actor, err := requireActor(ctx, s.userRepo, actorID, model.RoleUser)
	if err != nil {
		return nil, err
	}

	var coverURL *string
	if cover != nil && cover.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, cover.Reader, "blog-covers", cover.FileName, "")
		if err != nil {
			return nil, err
		}
		coverURL = &url
	}

	blog := &model.Blog{
		Title:       req.Title,
		Body:        req.Body,
		Description: req.Description,
		CoverURL:    coverURL,
		Topic:       req.Topic,
		Featured:    req.Featured,
		AuthorID:    actor.ID,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	s.search.IndexBlog(blog)
	return blog, nil
}

func (s *blogService) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: blog %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}
	return blog, nil
}

func (s *blogService) GetAll(ctx context.Context, filter dto.BlogFilter) (*dto.PaginatedBlogResponse, error) {
	repoFilter := repository.BlogFilter{
		Topic:    filter.Topic,
		Featured: filter.Featured,
		Search:   filter.Search,
	}
	if filter.AuthorID != "" {
		authorID := uuid.MustParse(filter.AuthorID)
		repoFilter.AuthorID = &authorID
	}

	blogs, total, err := s.blogRepo.FindAll(ctx, repoFilter, filter.Offset(), filter.PageSize)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedBlogResponse{
		Data: blogs,
		Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *blogService) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateBlogRequest, cover *AvatarFile) (*model.Blog, error) {
	blog, err := s.loadAuthored(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Body != nil {
		blog.Body = *req.Body
	}
	if req.Description != nil {
		blog.Description = *req.Description
	}
	if req.Topic != nil {
		blog.Topic = *req.Topic
	}
	if req.Featured != nil {
		blog.Featured = *req.Featured
	}

	if cover != nil && cover.Reader != nil && s.imageStorage != nil {
		oldURL := ""
		if blog.CoverURL != nil {
			oldURL = *blog.CoverURL
		}
		url, err := s.imageStorage.UploadImage(ctx, cover.Reader, "blog-covers", cover.FileName, oldURL)
		if err != nil {
			return nil, err
		}
		blog.CoverURL = &url
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}

	s.search.IndexBlog(blog)
	return blog, nil
}

func (s *blogService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	blog, err := s.loadAuthored(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.blogRepo.Delete(ctx, blog.ID); err != nil {
		return err
	}

	s.search.DeleteBlog(blog.ID.String())
	return nil
}

func (s *blogService) loadAuthored(ctx context.Context, actorID, blogID uuid.UUID) (*model.Blog, error) {
	actor, err := requireActor(ctx, s.userRepo, actorID, model.RoleUser)
	if err != nil {
		return nil, err
	}

	blog, err := s.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if blog.AuthorID != actor.ID && !actor.Role.AtLeast(model.RoleAdmin) {
		return nil, fmt.Errorf("%w: only the author can modify this blog", apperror.ErrForbidden)
	}

	return blog, nil
}
