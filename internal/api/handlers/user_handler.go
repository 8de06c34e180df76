package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thounda/employee-polls-be/internal/auth"
	"github.com/thounda/employee-polls-be/internal/services"
)

// UserHandler handles HTTP requests for login, logout and user listing.
type UserHandler struct {
	authService services.AuthServiceProvider
	pollService services.PollServiceProvider
	tokenTTL    time.Duration
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService services.AuthServiceProvider, pollService services.PollServiceProvider, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{
		authService: authService,
		pollService: pollService,
		tokenTTL:    tokenTTL,
	}
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	ID         string `json:"id"`
	Credential string `json:"credential"`
}

// Login handles the mock authentication check and token generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Authenticate(payload.ID, payload.Credential)
	if err != nil {
		log.Warn().Err(err).Str("user_id", payload.ID).Msg("Failed authentication attempt")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateJWT(user, h.tokenTTL)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout ends the session and clears the cookie.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout()

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
}

// GetMe returns the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser()
	if err != nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// GetAll lists every loaded user. Credentials are never serialized.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.pollService.Users())
}
