package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shop-admin/internal/auth"
	"github.com/example/shop-admin/internal/model"
)

func seedUser(t *testing.T, srv *testServer, email, password, role string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	srv.store.UsersData = append(srv.store.UsersData, model.User{
		ID:           "u1",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" {
			return c
		}
	}
	return nil
}

func TestLogin_Success(t *testing.T) {
	srv := newTestServer()
	seedUser(t, srv, "admin@example.com", "super-secret-pw", model.RoleAdmin)

	rec := srv.request(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "super-secret-pw",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	claims, err := srv.jwtService.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := newTestServer()
	seedUser(t, srv, "admin@example.com", "super-secret-pw", model.RoleAdmin)

	rec := srv.request(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestLogin_UnknownEmail(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestLogout_ClearsCookie(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodPost, "/logout", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestMe(t *testing.T) {
	srv := newTestServer()

	rec := srv.request(t, http.MethodGet, "/me", model.RoleProductManager, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var user UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, model.RoleProductManager, user.Role)

	rec = srv.request(t, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
