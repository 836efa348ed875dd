package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Skb111/Community-API-Backend-sub001/internal/cache"
	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/apperror"
	"github.com/google/uuid"
)

func testCaches() (*cache.TechCache, *cache.ProjectCache) {
	ttl := cache.TTLPolicy{Item: time.Minute, List: time.Minute, Count: time.Minute, Name: time.Minute}
	store := cache.NewMemoryStore()
	return cache.NewTechCache(store, ttl), cache.NewProjectCache(store, ttl)
}

func adminUser() *model.User {
	return &model.User{ID: uuid.New(), FullName: "Admin", Email: "admin@example.com", Role: model.RoleAdmin}
}

func plainUser() *model.User {
	return &model.User{ID: uuid.New(), FullName: "Dev", Email: "dev@example.com", Role: model.RoleUser}
}

func TestTechCreateRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	user := plainUser()
	techCache, projectCache := testCaches()
	svc := NewTechService(newFakeTechRepo(), newFakeUserRepo(user), techCache, projectCache, nil)

	_, err := svc.Create(ctx, user.ID, dto.CreateTechRequest{Name: "Go"}, nil)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestTechCreateTrimsAndRejectsBlank(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()
	techCache, projectCache := testCaches()
	svc := NewTechService(newFakeTechRepo(), newFakeUserRepo(admin), techCache, projectCache, nil)

	tech, err := svc.Create(ctx, admin.ID, dto.CreateTechRequest{Name: "  Go  "}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if tech.Name != "Go" {
		t.Fatalf("name should be trimmed, got %q", tech.Name)
	}

	_, err = svc.Create(ctx, admin.ID, dto.CreateTechRequest{Name: "   "}, nil)
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("blank name should be invalid input, got %v", err)
	}
}

func TestTechDuplicateNameFastPath(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()
	existing := &model.Tech{ID: uuid.New(), Name: "Go"}
	repo := newFakeTechRepo(existing)
	techCache, projectCache := testCaches()
	svc := NewTechService(repo, newFakeUserRepo(admin), techCache, projectCache, nil)

	// First duplicate attempt: name cache is cold, so the check reads the
	// store and backfills the lookup entry.
	_, err := svc.Create(ctx, admin.ID, dto.CreateTechRequest{Name: "Go"}, nil)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if repo.findByNameCalls != 1 {
		t.Fatalf("findByName calls = %d, want 1", repo.findByNameCalls)
	}

	// Second attempt: the warm lookup conflicts without a database read.
	_, err = svc.Create(ctx, admin.ID, dto.CreateTechRequest{Name: "Go"}, nil)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if repo.findByNameCalls != 1 {
		t.Fatalf("findByName calls = %d, want 1 (fast path should skip the store)", repo.findByNameCalls)
	}
}

func TestTechRenameToOwnNameIsAllowed(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()
	existing := &model.Tech{ID: uuid.New(), Name: "Go", Description: "old"}
	repo := newFakeTechRepo(existing)
	techCache, projectCache := testCaches()
	svc := NewTechService(repo, newFakeUserRepo(admin), techCache, projectCache, nil)

	desc := "new"
	name := "Go"
	tech, err := svc.Update(ctx, admin.ID, existing.ID, dto.UpdateTechRequest{Name: &name, Description: &desc}, nil)
	if err != nil {
		t.Fatalf("keeping the current name should not conflict: %v", err)
	}
	if tech.Description != "new" {
		t.Fatalf("description = %q, want %q", tech.Description, "new")
	}
}

func TestTechGetByIDReadThrough(t *testing.T) {
	ctx := context.Background()
	existing := &model.Tech{ID: uuid.New(), Name: "Go"}
	repo := newFakeTechRepo(existing)
	techCache, projectCache := testCaches()
	svc := NewTechService(repo, newFakeUserRepo(), techCache, projectCache, nil)

	if _, err := svc.GetByID(ctx, existing.ID); err != nil {
		t.Fatal(err)
	}
	if repo.findByIDCalls != 1 {
		t.Fatalf("cold read should hit the store once, got %d", repo.findByIDCalls)
	}

	if _, err := svc.GetByID(ctx, existing.ID); err != nil {
		t.Fatal(err)
	}
	if repo.findByIDCalls != 1 {
		t.Fatalf("warm read should not touch the store, got %d calls", repo.findByIDCalls)
	}
}

func TestTechUpdateInvalidatesProjectCache(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()
	existing := &model.Tech{ID: uuid.New(), Name: "Go"}
	repo := newFakeTechRepo(existing)
	techCache, projectCache := testCaches()
	svc := NewTechService(repo, newFakeUserRepo(admin), techCache, projectCache, nil)

	projectID := uuid.New()
	projectCache.SetProject(ctx, &model.Project{ID: projectID, Techs: []model.Tech{*existing}})

	name := "Golang"
	if _, err := svc.Update(ctx, admin.ID, existing.ID, dto.UpdateTechRequest{Name: &name}, nil); err != nil {
		t.Fatal(err)
	}

	if _, ok := projectCache.GetProject(ctx, projectID); ok {
		t.Fatal("cached projects embed tech rows and must be swept on tech update")
	}
}

func TestTechGetAllCachesListAndCount(t *testing.T) {
	ctx := context.Background()
	existing := &model.Tech{ID: uuid.New(), Name: "Go"}
	repo := newFakeTechRepo(existing)
	techCache, projectCache := testCaches()
	svc := NewTechService(repo, newFakeUserRepo(), techCache, projectCache, nil)

	filter := dto.TechFilter{PaginationQuery: dto.PaginationQuery{Page: 1, PageSize: 10}}

	res, err := svc.GetAll(ctx, filter)
	if err != nil {
		t.Fatal(err)
	}
	if res.Meta.TotalItems != 1 {
		t.Fatalf("total = %d, want 1", res.Meta.TotalItems)
	}
	if repo.findAllCalls != 1 {
		t.Fatalf("cold list should read the store once, got %d", repo.findAllCalls)
	}

	if _, err := svc.GetAll(ctx, filter); err != nil {
		t.Fatal(err)
	}
	if repo.findAllCalls != 1 {
		t.Fatalf("warm list should not touch the store, got %d calls", repo.findAllCalls)
	}
}
