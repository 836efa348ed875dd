package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skb111/Community-API-Backend-sub001/internal/cache"
	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/internal/repository"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/apperror"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateProjectRequest, cover *AvatarFile) (*model.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetAll(ctx context.Context, filter dto.ProjectFilter) (*dto.PaginatedProjectResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateProjectRequest, cover *AvatarFile) (*model.Project, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error

	ReplaceTechs(ctx context.Context, actorID, projectID uuid.UUID, techIDs []uuid.UUID) (*model.Project, error)
	AddTechs(ctx context.Context, actorID, projectID uuid.UUID, techIDs []uuid.UUID) (*model.Project, error)
	RemoveTech(ctx context.Context, actorID, projectID, techID uuid.UUID) (*model.Project, error)

	ReplaceContributors(ctx context.Context, actorID, projectID uuid.UUID, userIDs []uuid.UUID) (*model.Project, error)
	AddContributors(ctx context.Context, actorID, projectID uuid.UUID, userIDs []uuid.UUID) (*model.Project, error)
	RemoveContributor(ctx context.Context, actorID, projectID, userID uuid.UUID) (*model.Project, error)
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	techRepo     repository.TechRepository
	userRepo     repository.UserRepository
	projectCache *cache.ProjectCache
	imageStorage storage.ImageStorage
	search       SearchService
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	techRepo repository.TechRepository,
	userRepo repository.UserRepository,
	projectCache *cache.ProjectCache,
	imageStorage storage.ImageStorage,
	search SearchService,
) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		techRepo:     techRepo,
		userRepo:     userRepo,
		projectCache: projectCache,
		imageStorage: imageStorage,
		search:       search,
	}
}

func (s *projectService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateProjectRequest, cover *AvatarFile) (*model.Project, error) {
	actor, err := requireActor(ctx, s.userRepo, actorID, model.RoleUser)
	if err != nil {
		return nil, err
	}

	// Upload before insert: an upload failure must abort the mutation with
	// no row persisted.
	var coverURL *string
	if cover != nil && cover.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, cover.Reader, "project-covers", cover.FileName, "")
		if err != nil {
			return nil, err
		}
		coverURL = &url
	}

	project := &model.Project{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    coverURL,
		RepoLink:    req.RepoLink,
		Featured:    req.Featured,
		OwnerID:     actor.ID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.projectCache.InvalidateAll(ctx)
	s.search.IndexProject(project)

	return s.GetByID(ctx, project.ID)
}

// GetByID serves from the item cache when warm; a miss reads the store and
// repopulates, so a second call inside the TTL window does no database read.
func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	if project, ok := s.projectCache.GetProject(ctx, id); ok {
		return project, nil
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %s", apperror.ErrNotFound, id)
		}
		return nil, err
	}

	s.projectCache.SetProject(ctx, project)
	return project, nil
}

func (s *projectService) GetAll(ctx context.Context, filter dto.ProjectFilter) (*dto.PaginatedProjectResponse, error) {
	filters := filter.FilterMap()

	// Lists scoped to exactly one related entity live under that entity's
	// secondary index so attach/detach can invalidate them precisely.
	relation, relatedID := listRelation(filter)

	var projects []model.Project
	var listOK bool
	if relation != "" {
		projects, listOK = s.projectCache.GetRelationList(ctx, relation, relatedID, filter.Page, filter.PageSize, filters)
	} else {
		projects, listOK = s.projectCache.GetList(ctx, filter.Page, filter.PageSize, filters)
	}
	total, countOK := s.projectCache.GetCount(ctx, filters)

	if listOK && countOK {
		return &dto.PaginatedProjectResponse{
			Data: projects,
			Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
		}, nil
	}

	repoFilter := repository.ProjectFilter{
		Featured: filter.Featured,
		Search:   filter.Search,
	}
	if filter.TechID != "" {
		techID := uuid.MustParse(filter.TechID)
		repoFilter.TechID = &techID
	}
	if filter.UserID != "" {
		ownerID := uuid.MustParse(filter.UserID)
		repoFilter.OwnerID = &ownerID
	}

	projects, total, err := s.projectRepo.FindAll(ctx, repoFilter, filter.Offset(), filter.PageSize)
	if err != nil {
		return nil, err
	}

	if relation != "" {
		s.projectCache.SetRelationList(ctx, relation, relatedID, filter.Page, filter.PageSize, filters, projects)
	} else {
		s.projectCache.SetList(ctx, filter.Page, filter.PageSize, filters, projects)
	}
	s.projectCache.SetCount(ctx, filters, total)

	return &dto.PaginatedProjectResponse{
		Data: projects,
		Meta: dto.NewPaginationMeta(filter.Page, filter.PageSize, total),
	}, nil
}

func (s *projectService) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateProjectRequest, cover *AvatarFile) (*model.Project, error) {
	project, err := s.loadOwned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.RepoLink != nil {
		project.RepoLink = req.RepoLink
	}
	if req.Featured != nil {
		project.Featured = *req.Featured
	}

	if cover != nil && cover.Reader != nil && s.imageStorage != nil {
		oldURL := ""
		if project.CoverURL != nil {
			oldURL = *project.CoverURL
		}
		url, err := s.imageStorage.UploadImage(ctx, cover.Reader, "project-covers", cover.FileName, oldURL)
		if err != nil {
			return nil, err
		}
		project.CoverURL = &url
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.invalidateProject(ctx, project)
	s.search.IndexProject(project)

	return project, nil
}

func (s *projectService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	project, err := s.loadOwned(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateProject(ctx, project)
	s.search.DeleteProject(id.String())

	return nil
}

func (s *projectService) ReplaceTechs(ctx context.Context, actorID, projectID uuid.UUID, techIDs []uuid.UUID) (*model.Project, error) {
	project, err := s.loadOwned(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	techIDs = dedupe(techIDs)

	// Every id must resolve or nothing is persisted.
	if err := s.resolveTechs(ctx, techIDs); err != nil {
		return nil, err
	}

	if err := s.projectRepo.ReplaceTechs(ctx, projectID, techIDs); err != nil {
		return nil, err
	}

	affected := make([]uuid.UUID, 0, len(project.Techs)+len(techIDs))
	for _, t := range project.Techs {
		affected = append(affected, t.ID)
	}
	affected = append(affected, techIDs...)

	s.invalidateProject(ctx, project)
	for _, techID := range dedupe(affected) {
		s.projectCache.InvalidateRelation(ctx, cache.RelationTech, techID)
	}

	return s.GetByID(ctx, projectID)
}

func (s *projectService) AddTechs(ctx context.Context, actorID, projectID uuid.UUID, techIDs []uuid.UUID) (*model.Project, error) {
	project, err := s.loadOwned(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	techIDs = dedupe(techIDs)
	if len(techIDs) == 0 {
		return project, nil
	}

	if err := s.resolveTechs(ctx, techIDs); err != nil {
		return nil, err
	}

	if err := s.projectRepo.AddTechs(ctx, projectID, techIDs); err != nil {
		return nil, err
	}

	s.invalidateProject(ctx, project)
	for _, techID := range techIDs {
		s.projectCache.InvalidateRelation(ctx, cache.RelationTech, techID)
	}

	return s.GetByID(ctx, projectID)
}

// RemoveTech detaches one tech; removing an id that is not associated is a
// silent no-op.
func (s *projectService) RemoveTech(ctx context.Context, actorID, projectID, techID uuid.UUID) (*model.Project, error) {
	project, err := s.loadOwned(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.RemoveTech(ctx, projectID, techID); err != nil {
		return nil, err
	}

	s.invalidateProject(ctx, project)
	s.projectCache.InvalidateRelation(ctx, cache.RelationTech, techID)

	return s.GetByID(ctx, projectID)
}

func (s *projectService) ReplaceContributors(ctx context.Context, actorID, projectID uuid.UUID, userIDs []uuid.UUID) (*model.Project, error) {
	project, err := s.loadOwned(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	// A project never lists its own owner as a contributor.
	userIDs = filterOut(dedupe(userIDs), project.OwnerID)

	if err := s.resolveUsers(ctx, userIDs); err != nil {
		return nil, err
	}

	if err := s.projectRepo.ReplaceContributors(ctx, projectID, userIDs); err != nil {
		return nil, err
	}

	affected := make([]uuid.UUID, 0, len(project.Contributors)+len(userIDs))
	for _, u := range project.Contributors {
		affected = append(affected, u.ID)
	}
	affected = append(affected, userIDs...)

	s.invalidateProject(ctx, project)
	for _, userID := range dedupe(affected) {
		s.projectCache.InvalidateRelation(ctx, cache.RelationUser, userID)
	}

	return s.GetByID(ctx, projectID)
}

func (s *projectService) AddContributors(ctx context.Context, actorID, projectID uuid.UUID, userIDs []uuid.UUID) (*model.Project, error) {
	project, err := s.loadOwned(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	// Filtering the owner may empty the set; that is a successful no-op.
	userIDs = filterOut(dedupe(userIDs), project.OwnerID)
	if len(userIDs) == 0 {
		return project, nil
	}

	if err := s.resolveUsers(ctx, userIDs); err != nil {
		return nil, err
	}

	if err := s.projectRepo.AddContributors(ctx, projectID, userIDs); err != nil {
		return nil, err
	}

	s.invalidateProject(ctx, project)
	for _, userID := range userIDs {
		s.projectCache.InvalidateRelation(ctx, cache.RelationUser, userID)
	}

	return s.GetByID(ctx, projectID)
}

func (s *projectService) RemoveContributor(ctx context.Context, actorID, projectID, userID uuid.UUID) (*model.Project, error) {
	project, err := s.loadOwned(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.RemoveContributor(ctx, projectID, userID); err != nil {
		return nil, err
	}

	s.invalidateProject(ctx, project)
	s.projectCache.InvalidateRelation(ctx, cache.RelationUser, userID)

	return s.GetByID(ctx, projectID)
}

// loadOwned fetches the project and checks the actor may mutate it: the
// owner, or a role at admin and above.
func (s *projectService) loadOwned(ctx context.Context, actorID, projectID uuid.UUID) (*model.Project, error) {
	actor, err := requireActor(ctx, s.userRepo, actorID, model.RoleUser)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %s", apperror.ErrNotFound, projectID)
		}
		return nil, err
	}

	if project.OwnerID != actor.ID && !actor.Role.AtLeast(model.RoleAdmin) {
		return nil, fmt.Errorf("%w: only the project owner can modify it", apperror.ErrForbidden)
	}

	return project, nil
}

func (s *projectService) resolveTechs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	techs, err := s.techRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(techs) != len(ids) {
		return fmt.Errorf("%w: one or more techs do not exist", apperror.ErrNotFound)
	}
	return nil
}

func (s *projectService) resolveUsers(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(users) != len(ids) {
		return fmt.Errorf("%w: one or more users do not exist", apperror.ErrNotFound)
	}
	return nil
}

// invalidateProject is the write-side fan-out: the item key plus the sweep
// over lists, counts and secondary indices.
func (s *projectService) invalidateProject(ctx context.Context, project *model.Project) {
	s.projectCache.InvalidateProject(ctx, project.ID)
	s.projectCache.InvalidateAll(ctx)
	s.projectCache.InvalidateRelation(ctx, cache.RelationUser, project.OwnerID)
}

func listRelation(filter dto.ProjectFilter) (string, uuid.UUID) {
	if filter.TechID != "" && filter.UserID == "" {
		return cache.RelationTech, uuid.MustParse(filter.TechID)
	}
	if filter.UserID != "" && filter.TechID == "" {
		return cache.RelationUser, uuid.MustParse(filter.UserID)
	}
	return "", uuid.Nil
}

func filterOut(ids []uuid.UUID, exclude uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}
