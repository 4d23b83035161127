package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/example/shop-admin/internal/api/middleware"
	"github.com/example/shop-admin/internal/auth"
	"github.com/example/shop-admin/internal/infrastructure/store"
)

// AuthHandlers handles dashboard session requests.
type AuthHandlers struct {
	store      store.Store
	jwtService *auth.JWTService
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(s store.Store, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{store: s, jwtService: jwtService}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data in responses.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login verifies credentials against the user documents and sets the session
// cookie the authorization gate reads.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, found, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("[API] Error looking up user %q: %v", req.Email, err)
		respondJSONError(w, "Login failed", http.StatusInternalServerError)
		return
	}
	if !found || !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("[API] Error generating token for %q: %v", req.Email, err)
		respondJSONError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"user":    UserResponse{ID: user.ID, Email: user.Email, Role: user.Role},
		"message": "Login successful",
	})
}

// Logout clears the session cookie.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me returns the caller's session identity.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, UserResponse{ID: claims.UserID, Email: claims.Email, Role: claims.Role})
}
