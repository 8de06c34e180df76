// Package datastore is the simulated backend. It owns the authoritative
// users and questions collections in memory, adds artificial latency to
// every call and validates inputs the way a remote API would. Nothing here
// survives a restart.
package datastore

import (
	"context"
	"fmt"
	"html"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thounda/employee-polls-be/internal/models"
)

// Store is the mock data store. Construct with New; safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	users      map[string]models.User
	questions  map[string]models.Question
	minLatency time.Duration
	maxLatency time.Duration
	lastStamp  int64
}

// Options tunes the simulated latency. Zero values disable the delay,
// which tests rely on.
type Options struct {
	MinLatency time.Duration
	MaxLatency time.Duration
}

// New returns a store populated with the given seed data.
func New(users map[string]models.User, questions map[string]models.Question, opts Options) *Store {
	s := &Store{
		users:      make(map[string]models.User, len(users)),
		questions:  make(map[string]models.Question, len(questions)),
		minLatency: opts.MinLatency,
		maxLatency: opts.MaxLatency,
	}
	for id, u := range users {
		s.users[id] = u.Clone()
	}
	for id, q := range questions {
		s.questions[id] = q.Clone()
		if q.Timestamp > s.lastStamp {
			s.lastStamp = q.Timestamp
		}
	}
	return s
}

// delay sleeps for a random interval within the configured latency window,
// or until the context is cancelled.
func (s *Store) delay(ctx context.Context) error {
	d := s.minLatency
	if s.maxLatency > s.minLatency {
		d += time.Duration(rand.Int63n(int64(s.maxLatency - s.minLatency)))
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FetchUsers returns a copy of every user.
func (s *Store) FetchUsers(ctx context.Context) (map[string]models.User, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.User, len(s.users))
	for id, u := range s.users {
		out[id] = u.Clone()
	}
	return out, nil
}

// FetchQuestions returns a copy of every question.
func (s *Store) FetchQuestions(ctx context.Context) (map[string]models.Question, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.Question, len(s.questions))
	for id, q := range s.questions {
		out[id] = q.Clone()
	}
	return out, nil
}

// NewQuestionInput is the payload for CreateQuestion.
type NewQuestionInput struct {
	OptionOneText string
	OptionTwoText string
	Author        string
}

// CreateQuestion validates the input, assigns an ID and timestamp,
// sanitizes the option text and saves the question. The returned question
// is the authoritative record.
func (s *Store) CreateQuestion(ctx context.Context, in NewQuestionInput) (models.Question, error) {
	if err := s.delay(ctx); err != nil {
		return models.Question{}, err
	}

	one := strings.TrimSpace(in.OptionOneText)
	two := strings.TrimSpace(in.OptionTwoText)
	if one == "" || two == "" || in.Author == "" {
		return models.Question{}, fmt.Errorf("create question: %w", models.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[in.Author]; !ok {
		return models.Question{}, fmt.Errorf("create question: author %q: %w", in.Author, models.ErrUnknownAuthor)
	}

	q := models.Question{
		ID:        uuid.New().String(),
		Author:    in.Author,
		Timestamp: s.nextStamp(),
		OptionOne: models.QuestionOption{Text: html.EscapeString(one), Votes: []string{}},
		OptionTwo: models.QuestionOption{Text: html.EscapeString(two), Votes: []string{}},
	}

	s.questions[q.ID] = q.Clone()
	author := s.users[in.Author]
	author.Questions = append(author.Questions, q.ID)
	s.users[in.Author] = author

	return q, nil
}

// nextStamp returns a timestamp strictly greater than any issued before,
// so creation order is a total order even within one millisecond.
// Callers must hold s.mu.
func (s *Store) nextStamp() int64 {
	now := time.Now().UnixMilli()
	if now <= s.lastStamp {
		now = s.lastStamp + 1
	}
	s.lastStamp = now
	return now
}

// AnswerInput is the payload for RecordAnswer.
type AnswerInput struct {
	AuthedUser string
	QuestionID string
	Answer     models.Option
}

// RecordAnswer validates the input and records the vote in the store's own
// bookkeeping. The store is the source of truth for votes; a duplicate is
// rejected here as well as client-side.
func (s *Store) RecordAnswer(ctx context.Context, in AnswerInput) error {
	if err := s.delay(ctx); err != nil {
		return err
	}

	if in.AuthedUser == "" || in.QuestionID == "" || in.Answer == "" {
		return fmt.Errorf("record answer: %w", models.ErrValidation)
	}
	if !in.Answer.Valid() {
		return fmt.Errorf("record answer: %q: %w", in.Answer, models.ErrInvalidOption)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[in.AuthedUser]
	if !ok {
		return fmt.Errorf("record answer: user %q: %w", in.AuthedUser, models.ErrUnknownUser)
	}
	q, ok := s.questions[in.QuestionID]
	if !ok {
		return fmt.Errorf("record answer: question %q: %w", in.QuestionID, models.ErrUnknownQuestion)
	}
	if user.HasAnswered(in.QuestionID) {
		return fmt.Errorf("record answer: question %q: %w", in.QuestionID, models.ErrAlreadyAnswered)
	}

	if in.Answer == models.OptionOne {
		q.OptionOne.Votes = append(q.OptionOne.Votes, in.AuthedUser)
	} else {
		q.OptionTwo.Votes = append(q.OptionTwo.Votes, in.AuthedUser)
	}
	user.Answers[in.QuestionID] = in.Answer

	s.questions[in.QuestionID] = q
	s.users[in.AuthedUser] = user
	return nil
}
