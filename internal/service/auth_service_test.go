package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Skb111/Community-API-Backend-sub001/internal/dto"
	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/apperror"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "test-secret", time.Hour)

	res, err := svc.Register(ctx, dto.RegisterRequest{
		FullName: "Dev",
		Email:    "dev@example.com",
		Password: "longenough",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.AccessToken == "" {
		t.Fatal("registration should issue a token")
	}
	if res.User.Role != model.RoleUser {
		t.Fatalf("new accounts start as USER, got %s", res.User.Role)
	}

	if _, err := svc.Login(ctx, dto.LoginRequest{Email: "dev@example.com", Password: "longenough"}); err != nil {
		t.Fatalf("login with the registered password failed: %v", err)
	}

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "dev@example.com", Password: "wrong-password"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("wrong password should be unauthorized, got %v", err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "test-secret", time.Hour)

	req := dto.RegisterRequest{FullName: "Dev", Email: "dev@example.com", Password: "longenough"}
	if _, err := svc.Register(ctx, req, nil); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Register(ctx, req, nil)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("duplicate email should conflict, got %v", err)
	}
}

func TestRegisterSurfacesEmailLookupFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	repo.findByEmailErr = errors.New("connection refused")
	svc := NewAuthService(repo, nil, "test-secret", time.Hour)

	// A failed lookup must not read as "email free" and reach Create.
	_, err := svc.Register(ctx, dto.RegisterRequest{
		FullName: "Dev",
		Email:    "dev@example.com",
		Password: "longenough",
	}, nil)
	if err == nil {
		t.Fatal("expected the lookup error to surface")
	}
	if errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("a lookup failure is not a conflict, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatal("no user should be created when the duplicate check fails")
	}
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), nil, "test-secret", time.Hour)

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("unknown email should be unauthorized, got %v", err)
	}
}
