package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodie/internal/config"
	"foodie/internal/domain/model"
	"foodie/internal/middleware"
	"foodie/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Message string `json:"message"`
}

type mwActorResponse struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// =====================
// UserRepository モック
// =====================

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context, f repository.UserListFilter) ([]model.User, int64, error) {
	panic("not used in middleware tests")
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, userID int64, in repository.UserProfileUpdate) error {
	panic("not used in middleware tests")
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, userID int64, role model.Role, restaurantID *int64) error {
	panic("not used in middleware tests")
}

func (m *MockUserRepo) SetAvailability(ctx context.Context, userID int64, available bool) error {
	panic("not used in middleware tests")
}

func (m *MockUserRepo) IncrementTokenVersion(ctx context.Context, id int64) (int, error) {
	panic("not used in middleware tests")
}

func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	panic("not used in middleware tests")
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

// =====================
// helper
// =====================

const testSecret = "test-secret"

func mustSign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func mustMakeJWT(t *testing.T, secret string, sub int64, role string, tv int, method jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"tv":   tv,
		"iat":  1,
		"exp":  9999999999,
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func runRequest(t *testing.T, e *echo.Echo, path string, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var r mwErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r.Message
}

func actorHandler(c echo.Context) error {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return c.NoContent(http.StatusTeapot)
	}
	return c.JSON(http.StatusOK, mwActorResponse{UserID: a.UserID, Role: string(a.Role)})
}

func newProtected(users repository.UserRepository, guards ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	cfg := config.Config{JWTSecret: testSecret}
	mws := append(middleware.Authenticated(cfg, users), guards...)
	e.GET("/protected", actorHandler, mws...)
	return e
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
		msg    string
	}{
		{"no header", "", "not authorized, no token"},
		{"bad scheme", "Token abc.def.ghi", "not authorized, no token"},
		{"garbage", "Bearer abc.def.ghi", "not authorized, token failed"},
		{"wrong secret", "Bearer " + mustMakeJWT(t, "other", 1, "user", 0, jwt.SigningMethodHS256), "not authorized, token failed"},
		{"wrong alg", "Bearer " + mustMakeJWT(t, testSecret, 1, "user", 0, jwt.SigningMethodHS512), "not authorized, token failed"},
		{"missing sub", "Bearer " + mustMakeJWT(t, testSecret, 0, "user", 0, jwt.SigningMethodHS256), "not authorized, token failed"},
		{"negative tv", "Bearer " + mustMakeJWT(t, testSecret, 1, "user", -1, jwt.SigningMethodHS256), "not authorized, token failed"},
		{"expired", "Bearer " + mustSign(t, jwt.MapClaims{"sub": 1, "tv": 0, "exp": 1}), "not authorized, token failed"},
		{"no exp", "Bearer " + mustSign(t, jwt.MapClaims{"sub": 1, "tv": 0}), "not authorized, token failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepo)
			e := newProtected(users)

			rec := runRequest(t, e, "/protected", tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.msg, decodeMessage(t, rec))
			users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		})
	}
}

// =====================
// TokenVersionGuard
// =====================

// DBのロールが使われる（トークンのroleは古くてもよい）
func TestTokenVersionGuard_SetsActorFromDB(t *testing.T) {
	rid := int64(9)
	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, int64(5)).Return(&model.User{
		ID:           5,
		Role:         model.RoleRestaurantAdmin,
		RestaurantID: &rid,
		TokenVersion: 2,
	}, nil)

	e := newProtected(users)
	rec := runRequest(t, e, "/protected", "Bearer "+mustMakeJWT(t, testSecret, 5, "user", 2, jwt.SigningMethodHS256))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body mwActorResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	assert.Equal(t, int64(5), body.UserID)
	assert.Equal(t, "restaurant_admin", body.Role)
	users.AssertExpectations(t)
}

func TestTokenVersionGuard_VersionMismatch(t *testing.T) {
	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, int64(5)).Return(&model.User{ID: 5, Role: model.RoleCustomer, TokenVersion: 3}, nil)

	e := newProtected(users)
	rec := runRequest(t, e, "/protected", "Bearer "+mustMakeJWT(t, testSecret, 5, "user", 2, jwt.SigningMethodHS256))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token revoked", decodeMessage(t, rec))
}

func TestTokenVersionGuard_UserGone(t *testing.T) {
	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)

	e := newProtected(users)
	rec := runRequest(t, e, "/protected", "Bearer "+mustMakeJWT(t, testSecret, 5, "user", 0, jwt.SigningMethodHS256))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVersionGuard_DBError(t *testing.T) {
	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, int64(5)).Return(nil, errors.New("boom"))

	e := newProtected(users)
	rec := runRequest(t, e, "/protected", "Bearer "+mustMakeJWT(t, testSecret, 5, "user", 0, jwt.SigningMethodHS256))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server error", decodeMessage(t, rec))
}

func TestTokenVersionGuard_UnknownRole(t *testing.T) {
	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, int64(5)).Return(&model.User{ID: 5, Role: model.Role("superuser")}, nil)

	e := newProtected(users)
	rec := runRequest(t, e, "/protected", "Bearer "+mustMakeJWT(t, testSecret, 5, "user", 0, jwt.SigningMethodHS256))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// =====================
// RequireRoles
// =====================

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name string
		role model.Role
		code int
	}{
		{"admin allowed", model.RolePlatformAdmin, http.StatusOK},
		{"courier allowed", model.RoleCourier, http.StatusOK},
		{"customer denied", model.RoleCustomer, http.StatusForbidden},
		{"restaurant admin denied", model.RoleRestaurantAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepo)
			users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Role: tt.role}, nil)

			e := newProtected(users, middleware.RequireRoles(model.RolePlatformAdmin, model.RoleCourier))
			rec := runRequest(t, e, "/protected", "Bearer "+mustMakeJWT(t, testSecret, 1, string(tt.role), 0, jwt.SigningMethodHS256))

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusForbidden {
				assert.Equal(t, "access denied", decodeMessage(t, rec))
			}
		})
	}
}

func TestRequireRoles_WithoutActor(t *testing.T) {
	e := echo.New()
	e.GET("/x", actorHandler, middleware.RequireRoles(model.RolePlatformAdmin))

	rec := runRequest(t, e, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
