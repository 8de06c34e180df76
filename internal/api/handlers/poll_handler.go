package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/thounda/employee-polls-be/internal/models"
	"github.com/thounda/employee-polls-be/internal/services"
)

// PollHandler handles HTTP requests for questions, votes and the dashboard.
type PollHandler struct {
	service  services.PollServiceProvider
	validate *validator.Validate
}

// NewPollHandler creates a new PollHandler.
func NewPollHandler(service services.PollServiceProvider) *PollHandler {
	return &PollHandler{
		service:  service,
		validate: validator.New(),
	}
}

// CreatePollPayload defines the structure for poll creation requests.
type CreatePollPayload struct {
	OptionOneText string `json:"optionOneText" validate:"required"`
	OptionTwoText string `json:"optionTwoText" validate:"required"`
}

// VotePayload defines the structure for vote requests.
type VotePayload struct {
	Option models.Option `json:"option" validate:"required,oneof=optionOne optionTwo"`
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrAlreadyAnswered):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnknownQuestion), errors.Is(err, models.ErrUnknownUser):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidOption),
		errors.Is(err, models.ErrUnknownAuthor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetAll handles the request to list every question.
func (h *PollHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.Questions())
}

// Get handles the request for a single question with its tally.
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	question, tally, err := h.service.Question(id)
	if err != nil {
		http.Error(w, "Question not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"question": question,
		"tally":    tally,
	})
}

// Create handles poll creation for the authenticated user.
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreatePollPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	question, err := h.service.CreatePoll(r.Context(), payload.OptionOneText, payload.OptionTwoText)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create poll")
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(question)
}

// Vote handles casting a vote on a question.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload VotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.CastVote(r.Context(), id, payload.Option); err != nil {
		log.Warn().Err(err).Str("question_id", id).Msg("Failed to cast vote")
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	_, tally, err := h.service.Question(id)
	if err != nil {
		http.Error(w, "Question not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Vote submitted successfully",
		"tally":   tally,
	})
}

// Dashboard handles the answered/unanswered partition for the session user.
func (h *PollHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard()
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dashboard)
}

// Leaderboard handles the engagement ranking request.
func (h *PollHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.Leaderboard())
}
