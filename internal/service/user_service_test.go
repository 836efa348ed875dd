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

func rootUser() *model.User {
	return &model.User{ID: uuid.New(), FullName: "Root", Email: "root@example.com", Role: model.RoleRoot}
}

func TestUpdateRoleRequiresRoot(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()
	target := plainUser()
	svc := NewUserService(newFakeUserRepo(admin, target), newFakeSkillRepo(), nil)

	err := svc.UpdateRole(ctx, admin.ID, target.ID, model.RoleAdmin)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("admin promoting a user should be forbidden, got %v", err)
	}
}

func TestUpdateRoleByRoot(t *testing.T) {
	ctx := context.Background()
	root := rootUser()
	target := plainUser()
	repo := newFakeUserRepo(root, target)
	svc := NewUserService(repo, newFakeSkillRepo(), nil)

	if err := svc.UpdateRole(ctx, root.ID, target.ID, model.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	if repo.users[target.ID].Role != model.RoleAdmin {
		t.Fatalf("role = %s, want ADMIN", repo.users[target.ID].Role)
	}
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	root := rootUser()
	target := plainUser()
	svc := NewUserService(newFakeUserRepo(root, target), newFakeSkillRepo(), nil)

	err := svc.UpdateRole(ctx, root.ID, target.ID, model.Role("SUPERVISOR"))
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("unknown role should be invalid input, got %v", err)
	}
}

func TestDeleteAdminRequiresRoot(t *testing.T) {
	ctx := context.Background()
	actor := adminUser()
	target := adminUser()
	target.Email = "other-admin@example.com"
	repo := newFakeUserRepo(actor, target)
	svc := NewUserService(repo, newFakeSkillRepo(), nil)

	err := svc.Delete(ctx, actor.ID, target.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("admin deleting an admin should be forbidden, got %v", err)
	}

	root := rootUser()
	repo.users[root.ID] = root
	if err := svc.Delete(ctx, root.ID, target.ID); err != nil {
		t.Fatalf("root deleting an admin should succeed, got %v", err)
	}
	if _, ok := repo.users[target.ID]; ok {
		t.Fatal("target should be gone")
	}
}

func TestDeleteUserByAdmin(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()
	target := plainUser()
	repo := newFakeUserRepo(admin, target)
	svc := NewUserService(repo, newFakeSkillRepo(), nil)

	if err := svc.Delete(ctx, admin.ID, target.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.users[target.ID]; ok {
		t.Fatal("target should be gone")
	}
}

func TestReplaceSkillsUnknownIDFails(t *testing.T) {
	ctx := context.Background()
	user := plainUser()
	known := &model.Skill{ID: uuid.New(), Name: "Debugging"}
	svc := NewUserService(newFakeUserRepo(user), newFakeSkillRepo(known), nil)

	_, err := svc.ReplaceSkills(ctx, user.ID, []uuid.UUID{known.ID, uuid.New()})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetAllRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	user := plainUser()
	svc := NewUserService(newFakeUserRepo(user), newFakeSkillRepo(), nil)

	_, err := svc.GetAll(ctx, user.ID, dto.UserFilter{PaginationQuery: dto.PaginationQuery{Page: 1, PageSize: 10}})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("listing users should require admin, got %v", err)
	}
}
