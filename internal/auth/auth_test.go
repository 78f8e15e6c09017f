package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eventsphere/internal/auth"
	"eventsphere/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:   "test-secret",
		Issuer:      "eventsphere",
		TokenExpiry: time.Hour,
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	cfg := testAuthConfig()

	token, err := auth.IssueToken(cfg, "user-1", "Admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.VerifyToken(cfg, token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "eventsphere", claims.Issuer)
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = ""

	_, err := auth.IssueToken(cfg, "user-1", "Admin")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	cfg := testAuthConfig()

	token, err := auth.IssueToken(cfg, "user-1", "Admin")
	assert.NoError(t, err)

	other := cfg
	other.JWTSecret = "another-secret"
	_, err = auth.VerifyToken(other, token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenExpiry = -time.Minute

	token, err := auth.IssueToken(cfg, "user-1", "Admin")
	assert.NoError(t, err)

	_, err = auth.VerifyToken(cfg, token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testAuthConfig()
	token, err := auth.IssueToken(cfg, "user-1", "Admin")
	assert.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = auth.VerifyToken(other, token)
	assert.Error(t, err)
}

func TestExtractTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	token, err := auth.ExtractTokenFromRequest(req)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = auth.ExtractTokenFromRequest(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Basic abc123")
	_, err = auth.ExtractTokenFromRequest(req)
	assert.Error(t, err)
}

func protectedRouter(cfg config.AuthConfig, roles ...string) http.Handler {
	var next http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if len(roles) > 0 {
		next = auth.RequireRoles(roles...)(next)
	}
	return auth.Middleware(cfg)(next)
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	handler := protectedRouter(testAuthConfig())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := testAuthConfig()
	handler := protectedRouter(cfg)

	token, err := auth.IssueToken(cfg, "user-1", "Attendee")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	cfg := testAuthConfig()
	handler := protectedRouter(cfg, "Admin")

	token, err := auth.IssueToken(cfg, "user-1", "Attendee")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesAllowsAnyListedRole(t *testing.T) {
	cfg := testAuthConfig()
	handler := protectedRouter(cfg, "Admin", "Organizer")

	for _, role := range []string{"Admin", "Organizer"} {
		token, err := auth.IssueToken(cfg, "user-1", role)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
