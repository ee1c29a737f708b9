package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"booknest/internal/domain/entity"
	"booknest/internal/domain/service"
	mockSvc "booknest/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuthenticated(t *testing.T, tokenSvc service.TokenService, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	next := func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	}

	err := NewAuthMiddleware(tokenSvc).Authenticate(next)(c)
	require.NoError(t, err)

	return rec, reached
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	accountID := uuid.New()
	tokenSvc := new(mockSvc.MockTokenService)
	tokenSvc.On("ValidateToken", "good-token").Return(&service.Claims{
		AccountID: accountID,
		Roles:     []string{"reader"},
		Type:      "access",
	}, nil)

	rec, reached := runAuthenticated(t, tokenSvc, "Bearer good-token")

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)

	rec, reached := runAuthenticated(t, tokenSvc, "")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)

	rec, reached := runAuthenticated(t, tokenSvc, "Basic dXNlcjpwYXNz")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	tokenSvc.On("ValidateToken", "bad-token").Return(nil, errors.New("token is expired"))

	rec, reached := runAuthenticated(t, tokenSvc, "Bearer bad-token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_RefreshTokenRejected(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	tokenSvc.On("ValidateToken", "refresh-token").Return(&service.Claims{
		AccountID: uuid.New(),
		Type:      "refresh",
	}, nil)

	rec, reached := runAuthenticated(t, tokenSvc, "Bearer refresh-token")

	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	m := NewAuthMiddleware(tokenSvc)

	cases := []struct {
		name       string
		roles      any
		required   []entity.Role
		wantStatus int
		wantPassed bool
	}{
		{"admin allowed", []string{"admin"}, []entity.Role{entity.RoleAdmin}, http.StatusOK, true},
		{"seller or admin allows seller", []string{"seller"}, []entity.Role{entity.RoleSeller, entity.RoleAdmin}, http.StatusOK, true},
		{"reader denied", []string{"reader"}, []entity.Role{entity.RoleAdmin}, http.StatusForbidden, false},
		{"missing roles denied", nil, []entity.Role{entity.RoleAdmin}, http.StatusForbidden, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.roles != nil {
				c.Set(ContextKeyRoles, tc.roles)
			}

			passed := false
			next := func(c echo.Context) error {
				passed = true

				return c.NoContent(http.StatusOK)
			}

			err := m.RequireRole(tc.required...)(next)(c)
			require.NoError(t, err)

			assert.Equal(t, tc.wantPassed, passed)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
