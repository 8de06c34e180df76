package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/thounda/employee-polls-be/internal/datastore"
	"github.com/thounda/employee-polls-be/internal/models"
	"github.com/thounda/employee-polls-be/internal/state"
	"github.com/thounda/employee-polls-be/internal/views"
)

// DataStore is the backend contract the coordinator depends on. The mock
// in internal/datastore satisfies it; tests substitute failing stubs.
type DataStore interface {
	FetchUsers(ctx context.Context) (map[string]models.User, error)
	FetchQuestions(ctx context.Context) (map[string]models.Question, error)
	CreateQuestion(ctx context.Context, in datastore.NewQuestionInput) (models.Question, error)
	RecordAnswer(ctx context.Context, in datastore.AnswerInput) error
}

// Notifier publishes state changes to connected clients. The websocket hub
// satisfies it.
type Notifier interface {
	NotifyQuestionCreated(q models.Question)
	NotifyTallyChanged(questionID string, tally views.Tally)
}

// PollServiceProvider defines the interface for poll operations.
type PollServiceProvider interface {
	InitialLoad(ctx context.Context) error
	CreatePoll(ctx context.Context, optionOneText, optionTwoText string) (models.Question, error)
	CastVote(ctx context.Context, questionID string, option models.Option) error
	Questions() map[string]models.Question
	Question(id string) (models.Question, views.Tally, error)
	Dashboard() (views.Dashboard, error)
	Leaderboard() []views.RankedUser
	Users() []models.User
}

// PollService sequences data store calls with domain state transitions.
// Every operation checks its preconditions before any store call and
// leaves the state untouched when the store call fails.
type PollService struct {
	state    *state.State
	store    DataStore
	notifier Notifier
}

// NewPollService creates a new PollService. notifier may be nil when no
// live updates are wanted.
func NewPollService(st *state.State, store DataStore, notifier Notifier) *PollService {
	return &PollService{state: st, store: store, notifier: notifier}
}

// InitialLoad fetches users and questions concurrently and merges both
// into the state. If either fetch fails the state is left as it was; the
// caller decides whether to retry.
func (s *PollService) InitialLoad(ctx context.Context) error {
	var (
		users     map[string]models.User
		questions map[string]models.Question
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.store.FetchUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		questions, err = s.store.FetchQuestions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	s.state.LoadUsers(users)
	s.state.LoadQuestions(questions)
	log.Info().Int("users", len(users)).Int("questions", len(questions)).Msg("Initial load complete")
	return nil
}

// CreatePoll creates a question authored by the current session user. The
// data store assigns the ID and timestamp and sanitizes the text; the
// returned record is inserted into the state as-is.
func (s *PollService) CreatePoll(ctx context.Context, optionOneText, optionTwoText string) (models.Question, error) {
	author, ok := s.state.AuthedUser()
	if !ok {
		return models.Question{}, fmt.Errorf("create poll: %w", models.ErrNotAuthenticated)
	}
	if strings.TrimSpace(optionOneText) == "" || strings.TrimSpace(optionTwoText) == "" {
		return models.Question{}, fmt.Errorf("create poll: %w", models.ErrValidation)
	}

	q, err := s.store.CreateQuestion(ctx, datastore.NewQuestionInput{
		OptionOneText: optionOneText,
		OptionTwoText: optionTwoText,
		Author:        author,
	})
	if err != nil {
		return models.Question{}, fmt.Errorf("create poll: %w", err)
	}

	if err := s.state.InsertQuestion(q); err != nil {
		// The store accepted a question the state cannot hold. This is a
		// programming error, not something to retry.
		return models.Question{}, fmt.Errorf("create poll: %w", err)
	}

	log.Info().Str("question_id", q.ID).Str("author", author).Msg("Poll created")
	if s.notifier != nil {
		s.notifier.NotifyQuestionCreated(q)
	}
	return q, nil
}

// CastVote records the session user's vote on a question. The duplicate
// check runs locally first to avoid a pointless round trip, but the data
// store keeps its own bookkeeping as the source of truth.
func (s *PollService) CastVote(ctx context.Context, questionID string, option models.Option) error {
	voter, ok := s.state.AuthedUser()
	if !ok {
		return fmt.Errorf("cast vote: %w", models.ErrNotAuthenticated)
	}
	if !option.Valid() {
		return fmt.Errorf("cast vote: %q: %w", option, models.ErrInvalidOption)
	}
	if _, ok := s.state.Question(questionID); !ok {
		return fmt.Errorf("cast vote: %q: %w", questionID, models.ErrUnknownQuestion)
	}
	if user, ok := s.state.User(voter); ok && user.HasAnswered(questionID) {
		return fmt.Errorf("cast vote: %q: %w", questionID, models.ErrAlreadyAnswered)
	}

	err := s.store.RecordAnswer(ctx, datastore.AnswerInput{
		AuthedUser: voter,
		QuestionID: questionID,
		Answer:     option,
	})
	if err != nil {
		return fmt.Errorf("cast vote: %w", err)
	}

	if err := s.state.RecordVote(voter, questionID, option); err != nil {
		return fmt.Errorf("cast vote: %w", err)
	}

	log.Info().Str("question_id", questionID).Str("voter", voter).Str("option", string(option)).Msg("Vote recorded")
	if s.notifier != nil {
		if voted, ok := s.state.Question(questionID); ok {
			s.notifier.NotifyTallyChanged(questionID, views.NewTally(voted))
		}
	}
	return nil
}

// Questions returns a copy of every loaded question.
func (s *PollService) Questions() map[string]models.Question {
	return s.state.Questions()
}

// Question returns one question together with its current tally.
func (s *PollService) Question(id string) (models.Question, views.Tally, error) {
	q, ok := s.state.Question(id)
	if !ok {
		return models.Question{}, views.Tally{}, fmt.Errorf("question %q: %w", id, models.ErrUnknownQuestion)
	}
	return q, views.NewTally(q), nil
}

// Dashboard computes the answered/unanswered partition for the session user.
func (s *PollService) Dashboard() (views.Dashboard, error) {
	viewer, ok := s.state.AuthedUser()
	if !ok {
		return views.Dashboard{}, fmt.Errorf("dashboard: %w", models.ErrNotAuthenticated)
	}
	return views.NewDashboard(s.state.Questions(), viewer), nil
}

// Leaderboard ranks every loaded user by engagement.
func (s *PollService) Leaderboard() []views.RankedUser {
	return views.NewLeaderboard(s.state.Users())
}

// Users lists every loaded user.
func (s *PollService) Users() []models.User {
	users := s.state.Users()
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u)
	}
	return out
}
