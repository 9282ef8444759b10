package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/jwt"
)

func newProtectedRouter(jwtService jwt.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(AuthRequired(jwtService.JWTAuth()))

		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly)
			r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
	})
	return r
}

func doRequest(t *testing.T, router *chi.Mux, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key", "1h")
	router := newProtectedRouter(jwtService)

	rec := doRequest(t, router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, "/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := jwtService.GenerateAccessToken("emp-1", "worker@example.com", "employee")
	require.NoError(t, err)
	rec = doRequest(t, router, "/me", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequiredRejectsWrongSecret(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key", "1h")
	forged := jwt.NewJWTService("other-secret", "1h")
	router := newProtectedRouter(jwtService)

	token, _, err := forged.GenerateAccessToken("emp-1", "worker@example.com", "admin")
	require.NoError(t, err)

	rec := doRequest(t, router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key", "1h")
	router := newProtectedRouter(jwtService)

	employeeToken, _, err := jwtService.GenerateAccessToken("emp-1", "worker@example.com", "employee")
	require.NoError(t, err)
	rec := doRequest(t, router, "/admin", employeeToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, _, err := jwtService.GenerateAccessToken("emp-2", "boss@example.com", "admin")
	require.NoError(t, err)
	rec = doRequest(t, router, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
