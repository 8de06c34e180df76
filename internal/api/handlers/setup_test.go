package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/thounda/employee-polls-be/internal/api"
	"github.com/thounda/employee-polls-be/internal/datastore"
	"github.com/thounda/employee-polls-be/internal/models"
	"github.com/thounda/employee-polls-be/internal/services"
	"github.com/thounda/employee-polls-be/internal/state"
	"github.com/thounda/employee-polls-be/internal/websocket"
)

func testUsers() map[string]models.User {
	return map[string]models.User{
		"u1": {ID: "u1", Name: "Alice", Credential: "pw1", Answers: map[string]models.Option{}, Questions: []string{"q1"}},
		"u2": {ID: "u2", Name: "Bob", Credential: "pw2", Answers: map[string]models.Option{}, Questions: []string{"q2"}},
	}
}

func testQuestions() map[string]models.Question {
	return map[string]models.Question{
		"q1": {
			ID:        "q1",
			Author:    "u1",
			Timestamp: 100,
			OptionOne: models.QuestionOption{Text: "Tabs", Votes: []string{}},
			OptionTwo: models.QuestionOption{Text: "Spaces", Votes: []string{}},
		},
		"q2": {
			ID:        "q2",
			Author:    "u2",
			Timestamp: 200,
			OptionOne: models.QuestionOption{Text: "Vim", Votes: []string{"u1"}},
			OptionTwo: models.QuestionOption{Text: "Emacs", Votes: []string{}},
		},
	}
}

// SetupTestEnvironment builds a full router over a zero-latency store.
func SetupTestEnvironment(t *testing.T) (*chi.Mux, *state.State) {
	t.Helper()

	users := testUsers()
	// Keep user answer bookkeeping consistent with q2's seeded vote.
	u1 := users["u1"]
	u1.Answers["q2"] = models.OptionOne
	users["u1"] = u1

	store := datastore.New(users, testQuestions(), datastore.Options{})
	st := state.New()

	hub := websocket.NewHub()
	go hub.Run()

	pollService := services.NewPollService(st, store, hub)
	authService := services.NewAuthService(st)
	require.NoError(t, pollService.InitialLoad(context.Background()))

	router := api.NewRouter(hub, pollService, authService, "http://localhost:3000", time.Hour)
	return router, st
}

// login authenticates the given user and returns a bearer token.
func login(t *testing.T, router *chi.Mux, userID, credential string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"id": userID, "credential": credential})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// doJSON issues a JSON request, optionally authenticated.
func doJSON(router *chi.Mux, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}
