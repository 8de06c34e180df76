package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thounda/employee-polls-be/internal/models"
	"github.com/thounda/employee-polls-be/internal/state"
)

// AuthServiceProvider defines the interface for session management.
type AuthServiceProvider interface {
	Authenticate(userID, credential string) (models.User, error)
	Logout()
	CurrentUser() (models.User, error)
}

// AuthService performs the mock login check and owns the authed-user slice.
// Credentials are compared in plaintext against the loaded mock records;
// this is not a security boundary.
type AuthService struct {
	state *state.State
}

// NewAuthService creates a new AuthService.
func NewAuthService(st *state.State) *AuthService {
	return &AuthService{state: st}
}

// Authenticate checks the credential and starts a session for the user.
func (s *AuthService) Authenticate(userID, credential string) (models.User, error) {
	user, ok := s.state.User(userID)
	if !ok || user.Credential != credential {
		// Same error for unknown user and wrong credential.
		return models.User{}, fmt.Errorf("authenticate %q: %w", userID, models.ErrInvalidCredentials)
	}

	if err := s.state.SetAuthedUser(userID); err != nil {
		return models.User{}, fmt.Errorf("authenticate %q: %w", userID, err)
	}

	log.Info().Str("user_id", userID).Msg("User authenticated")
	return user, nil
}

// Logout ends the current session. Always succeeds.
func (s *AuthService) Logout() {
	s.state.ClearAuthedUser()
}

// CurrentUser returns the session user.
func (s *AuthService) CurrentUser() (models.User, error) {
	id, ok := s.state.AuthedUser()
	if !ok {
		return models.User{}, models.ErrNotAuthenticated
	}
	user, ok := s.state.User(id)
	if !ok {
		// The session references a user no longer in the state.
		return models.User{}, fmt.Errorf("current user %q: %w", id, models.ErrUnknownUser)
	}
	return user, nil
}
