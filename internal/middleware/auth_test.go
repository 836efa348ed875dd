package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (r *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	return nil, nil
}

func (r *stubUserRepo) FindAll(ctx context.Context, search string, offset, limit int) ([]*model.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *model.User) error { return nil }

func (r *stubUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubUserRepo) ReplaceSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) error {
	return nil
}

func signToken(t *testing.T, secret string, sub uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func testRouter(m *AuthMiddleware, min model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", m.RequireAuth(), m.RequireRole(min), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	m := NewAuthMiddleware(&stubUserRepo{}, "secret")
	r := testRouter(m, model.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireRoleBlocksBelowMinimum(t *testing.T) {
	userID := uuid.New()
	repo := &stubUserRepo{users: map[uuid.UUID]*model.User{
		userID: {ID: userID, Role: model.RoleUser},
	}}
	m := NewAuthMiddleware(repo, "secret")
	r := testRouter(m, model.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", userID))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireRoleAllowsAtLeast(t *testing.T) {
	adminID := uuid.New()
	repo := &stubUserRepo{users: map[uuid.UUID]*model.User{
		adminID: {ID: adminID, Role: model.RoleAdmin},
	}}
	m := NewAuthMiddleware(repo, "secret")
	r := testRouter(m, model.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", adminID))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRoleRejectsUnknownUser(t *testing.T) {
	m := NewAuthMiddleware(&stubUserRepo{}, "secret")
	r := testRouter(m, model.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", uuid.New()))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
