package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/apperror"
	"github.com/google/uuid"
)

type projectFixture struct {
	svc         ProjectService
	projectRepo *fakeProjectRepo
	techRepo    *fakeTechRepo
	userRepo    *fakeUserRepo
	owner       *model.User
	project     *model.Project
}

func newProjectFixture(users ...*model.User) *projectFixture {
	owner := plainUser()
	project := &model.Project{ID: uuid.New(), Title: "devhub", OwnerID: owner.ID}

	userRepo := newFakeUserRepo(append(users, owner)...)
	projectRepo := newFakeProjectRepo(project)
	techRepo := newFakeTechRepo()
	_, projectCache := testCaches()

	return &projectFixture{
		svc:         NewProjectService(projectRepo, techRepo, userRepo, projectCache, nil, noopSearch{}),
		projectRepo: projectRepo,
		techRepo:    techRepo,
		userRepo:    userRepo,
		owner:       owner,
		project:     project,
	}
}

func TestProjectUpdateForbiddenForNonOwner(t *testing.T) {
	ctx := context.Background()
	stranger := plainUser()
	f := newProjectFixture(stranger)

	title := "hijacked"
	_, err := f.svc.Update(ctx, stranger.ID, f.project.ID, dto.UpdateProjectRequest{Title: &title}, nil)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestProjectUpdateAllowedForAdmin(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()
	f := newProjectFixture(admin)

	title := "moderated"
	project, err := f.svc.Update(ctx, admin.ID, f.project.ID, dto.UpdateProjectRequest{Title: &title}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if project.Title != "moderated" {
		t.Fatalf("title = %q, want %q", project.Title, "moderated")
	}
}

func TestProjectDeleteForbiddenForNonOwnerKeepsRow(t *testing.T) {
	ctx := context.Background()
	stranger := plainUser()
	f := newProjectFixture(stranger)

	err := f.svc.Delete(ctx, stranger.ID, f.project.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, ok := f.projectRepo.projects[f.project.ID]; !ok {
		t.Fatal("a forbidden delete must leave the row in place")
	}
}

func TestProjectGetByIDReadThrough(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	if _, err := f.svc.GetByID(ctx, f.project.ID); err != nil {
		t.Fatal(err)
	}
	if f.projectRepo.findByIDCalls != 1 {
		t.Fatalf("cold read should hit the store once, got %d", f.projectRepo.findByIDCalls)
	}

	if _, err := f.svc.GetByID(ctx, f.project.ID); err != nil {
		t.Fatal(err)
	}
	if f.projectRepo.findByIDCalls != 1 {
		t.Fatalf("warm read should not touch the store, got %d calls", f.projectRepo.findByIDCalls)
	}
}

func TestProjectGetAllCachesList(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	filter := dto.ProjectFilter{PaginationQuery: dto.PaginationQuery{Page: 1, PageSize: 10}}

	if _, err := f.svc.GetAll(ctx, filter); err != nil {
		t.Fatal(err)
	}
	if f.projectRepo.findAllCalls != 1 {
		t.Fatalf("cold list should read the store once, got %d", f.projectRepo.findAllCalls)
	}

	if _, err := f.svc.GetAll(ctx, filter); err != nil {
		t.Fatal(err)
	}
	if f.projectRepo.findAllCalls != 1 {
		t.Fatalf("warm list should not touch the store, got %d calls", f.projectRepo.findAllCalls)
	}
}

func TestReplaceTechsUnknownIDPersistsNothing(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	known := &model.Tech{ID: uuid.New(), Name: "Go"}
	f.techRepo.techs[known.ID] = known

	_, err := f.svc.ReplaceTechs(ctx, f.owner.ID, f.project.ID, []uuid.UUID{known.ID, uuid.New()})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(f.projectRepo.projects[f.project.ID].Techs) != 0 {
		t.Fatal("a failed reconciliation must not persist a partial set")
	}
}

func TestReplaceTechsDeduplicates(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	tech := &model.Tech{ID: uuid.New(), Name: "Go"}
	f.techRepo.techs[tech.ID] = tech

	project, err := f.svc.ReplaceTechs(ctx, f.owner.ID, f.project.ID, []uuid.UUID{tech.ID, tech.ID, tech.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(project.Techs) != 1 {
		t.Fatalf("tech set size = %d, want 1", len(project.Techs))
	}
}

func TestAddContributorsFiltersOwner(t *testing.T) {
	ctx := context.Background()
	other := plainUser()
	f := newProjectFixture(other)

	project, err := f.svc.AddContributors(ctx, f.owner.ID, f.project.ID, []uuid.UUID{f.owner.ID, other.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(project.Contributors) != 1 || project.Contributors[0].ID != other.ID {
		t.Fatalf("contributors = %+v, want just %s", project.Contributors, other.ID)
	}
}

func TestAddContributorsOwnerOnlyIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	// The owner filters out of the set; an empty remainder succeeds without
	// touching the junction table.
	project, err := f.svc.AddContributors(ctx, f.owner.ID, f.project.ID, []uuid.UUID{f.owner.ID})
	if err != nil {
		t.Fatalf("owner-only add should be a successful no-op, got %v", err)
	}
	if len(project.Contributors) != 0 {
		t.Fatalf("contributors = %+v, want none", project.Contributors)
	}
}

func TestReplaceContributorsOwnerOnlyClears(t *testing.T) {
	ctx := context.Background()
	other := plainUser()
	f := newProjectFixture(other)

	if _, err := f.svc.AddContributors(ctx, f.owner.ID, f.project.ID, []uuid.UUID{other.ID}); err != nil {
		t.Fatal(err)
	}

	// Replacing with only the owner filters to the empty set, which clears
	// the association just like an explicit empty replace.
	project, err := f.svc.ReplaceContributors(ctx, f.owner.ID, f.project.ID, []uuid.UUID{f.owner.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(project.Contributors) != 0 {
		t.Fatalf("contributors = %+v, want none", project.Contributors)
	}
}

func TestRemoveTechIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	if _, err := f.svc.RemoveTech(ctx, f.owner.ID, f.project.ID, uuid.New()); err != nil {
		t.Fatalf("removing an unattached tech should be a no-op, got %v", err)
	}
}

func TestProjectMutationInvalidatesItemCache(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()

	// Warm the item cache.
	if _, err := f.svc.GetByID(ctx, f.project.ID); err != nil {
		t.Fatal(err)
	}

	title := "renamed"
	if _, err := f.svc.Update(ctx, f.owner.ID, f.project.ID, dto.UpdateProjectRequest{Title: &title}, nil); err != nil {
		t.Fatal(err)
	}

	// The next read must come from the store and see the new title.
	calls := f.projectRepo.findByIDCalls
	project, err := f.svc.GetByID(ctx, f.project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if f.projectRepo.findByIDCalls == calls {
		t.Fatal("read after write should miss the cache")
	}
	if project.Title != "renamed" {
		t.Fatalf("title = %q, want %q", project.Title, "renamed")
	}
}
