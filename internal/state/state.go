// Package state holds the in-process mirror of the data store: the
// authenticated user, the users map and the questions map. All writes go
// through the transition methods below so the cross-slice invariants
// (vote/answer consistency, authorship bookkeeping) are enforced at a
// single choke point. Reads hand out deep copies.
package state

import (
	"fmt"
	"sync"

	"github.com/thounda/employee-polls-be/internal/models"
)

// State is the normalized domain state. The zero value is not usable;
// construct with New. Safe for concurrent use.
type State struct {
	mu         sync.RWMutex
	authedUser string
	users      map[string]models.User
	questions  map[string]models.Question
}

// New returns an empty State with no session.
func New() *State {
	return &State{
		users:     make(map[string]models.User),
		questions: make(map[string]models.Question),
	}
}

// AuthedUser returns the current session's user ID, if any.
func (s *State) AuthedUser() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authedUser, s.authedUser != ""
}

// User returns a copy of the user with the given ID.
func (s *State) User(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return u.Clone(), true
}

// Question returns a copy of the question with the given ID.
func (s *State) Question(id string) (models.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return models.Question{}, false
	}
	return q.Clone(), true
}

// Users returns a copy of the users slice.
func (s *State) Users() map[string]models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.User, len(s.users))
	for id, u := range s.users {
		out[id] = u.Clone()
	}
	return out
}

// Questions returns a copy of the questions slice.
func (s *State) Questions() map[string]models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Question, len(s.questions))
	for id, q := range s.questions {
		out[id] = q.Clone()
	}
	return out
}

// SetAuthedUser starts a session for the given user. The user must already
// be loaded.
func (s *State) SetAuthedUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("set authed user %q: %w", id, models.ErrUnknownUser)
	}
	s.authedUser = id
	return nil
}

// ClearAuthedUser ends the current session. Always succeeds.
func (s *State) ClearAuthedUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authedUser = ""
}

// LoadUsers merges the batch into the users slice. Existing entries are
// overwritten, never cleared.
func (s *State) LoadUsers(batch map[string]models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range batch {
		s.users[id] = u.Clone()
	}
}

// LoadQuestions merges the batch into the questions slice.
func (s *State) LoadQuestions(batch map[string]models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, q := range batch {
		s.questions[id] = q.Clone()
	}
}

// InsertQuestion adds a question and appends its ID to the author's
// authored list. Both slices update together or not at all.
func (s *State) InsertQuestion(q models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	author, ok := s.users[q.Author]
	if !ok {
		return fmt.Errorf("insert question %q: author %q: %w", q.ID, q.Author, models.ErrUnknownAuthor)
	}

	s.questions[q.ID] = q.Clone()
	author.Questions = append(author.Questions, q.ID)
	s.users[q.Author] = author
	return nil
}

// RecordVote appends the user to the chosen option's votes and records the
// answer on the user. A user votes on a question at most once; a second
// vote is rejected, never silently ignored. Both halves apply together or
// not at all.
func (s *State) RecordVote(userID, questionID string, option models.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("record vote by %q: %w", userID, models.ErrUnknownUser)
	}
	q, ok := s.questions[questionID]
	if !ok {
		return fmt.Errorf("record vote on %q: %w", questionID, models.ErrUnknownQuestion)
	}
	if !option.Valid() {
		return fmt.Errorf("record vote on %q: %q: %w", questionID, option, models.ErrInvalidOption)
	}
	if user.HasAnswered(questionID) {
		return fmt.Errorf("record vote on %q by %q: %w", questionID, userID, models.ErrAlreadyAnswered)
	}

	if option == models.OptionOne {
		q.OptionOne.Votes = append(q.OptionOne.Votes, userID)
	} else {
		q.OptionTwo.Votes = append(q.OptionTwo.Votes, userID)
	}
	user.Answers[questionID] = option

	s.questions[questionID] = q
	s.users[userID] = user
	return nil
}
