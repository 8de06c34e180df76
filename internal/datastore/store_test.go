package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thounda/employee-polls-be/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	// Zero latency keeps the suite fast.
	return New(SeedUsers(), SeedQuestions(), Options{})
}

func TestFetchUsers(t *testing.T) {
	s := testStore(t)

	users, err := s.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, len(SeedUsers()))
	assert.Contains(t, users, "sarahedo")
}

func TestFetchUsers_ReturnsCopies(t *testing.T) {
	s := testStore(t)

	users, err := s.FetchUsers(context.Background())
	require.NoError(t, err)
	users["sarahedo"].Answers["fake"] = models.OptionOne

	again, err := s.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, again["sarahedo"].Answers, "fake")
}

func TestFetchQuestions(t *testing.T) {
	s := testStore(t)

	questions, err := s.FetchQuestions(context.Background())
	require.NoError(t, err)
	assert.Len(t, questions, len(SeedQuestions()))
}

func TestCreateQuestion(t *testing.T) {
	s := testStore(t)

	q, err := s.CreateQuestion(context.Background(), NewQuestionInput{
		OptionOneText: "Pizza",
		OptionTwoText: "Burgers",
		Author:        "sarahedo",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "sarahedo", q.Author)
	assert.Equal(t, "Pizza", q.OptionOne.Text)
	assert.Equal(t, "Burgers", q.OptionTwo.Text)
	assert.Empty(t, q.OptionOne.Votes)
	assert.Empty(t, q.OptionTwo.Votes)
	assert.NotZero(t, q.Timestamp)

	// The store's own collections reflect the creation.
	questions, err := s.FetchQuestions(context.Background())
	require.NoError(t, err)
	assert.Contains(t, questions, q.ID)

	users, err := s.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Contains(t, users["sarahedo"].Questions, q.ID)
}

func TestCreateQuestion_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input NewQuestionInput
	}{
		{"empty option one", NewQuestionInput{OptionOneText: "", OptionTwoText: "B", Author: "sarahedo"}},
		{"empty option two", NewQuestionInput{OptionOneText: "A", OptionTwoText: "", Author: "sarahedo"}},
		{"whitespace only", NewQuestionInput{OptionOneText: "   ", OptionTwoText: "B", Author: "sarahedo"}},
		{"missing author", NewQuestionInput{OptionOneText: "A", OptionTwoText: "B", Author: ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testStore(t)
			before, err := s.FetchQuestions(context.Background())
			require.NoError(t, err)

			_, err = s.CreateQuestion(context.Background(), tc.input)
			assert.ErrorIs(t, err, models.ErrValidation)

			after, err := s.FetchQuestions(context.Background())
			require.NoError(t, err)
			assert.Len(t, after, len(before))
		})
	}
}

func TestCreateQuestion_SanitizesText(t *testing.T) {
	s := testStore(t)

	q, err := s.CreateQuestion(context.Background(), NewQuestionInput{
		OptionOneText: "<script>alert('x')</script>",
		OptionTwoText: "plain & simple",
		Author:        "johndoe",
	})
	require.NoError(t, err)

	assert.NotContains(t, q.OptionOne.Text, "<script>")
	assert.Equal(t, "plain &amp; simple", q.OptionTwo.Text)
}

func TestCreateQuestion_TimestampsStrictlyIncrease(t *testing.T) {
	s := testStore(t)

	var last int64
	for i := 0; i < 5; i++ {
		q, err := s.CreateQuestion(context.Background(), NewQuestionInput{
			OptionOneText: "A",
			OptionTwoText: "B",
			Author:        "sarahedo",
		})
		require.NoError(t, err)
		assert.Greater(t, q.Timestamp, last)
		last = q.Timestamp
	}
}

func TestRecordAnswer(t *testing.T) {
	s := testStore(t)

	err := s.RecordAnswer(context.Background(), AnswerInput{
		AuthedUser: "sarahedo",
		QuestionID: "loxhs1bqm25b708cmbf3g",
		Answer:     models.OptionOne,
	})
	require.NoError(t, err)

	questions, err := s.FetchQuestions(context.Background())
	require.NoError(t, err)
	assert.Contains(t, questions["loxhs1bqm25b708cmbf3g"].OptionOne.Votes, "sarahedo")

	users, err := s.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OptionOne, users["sarahedo"].Answers["loxhs1bqm25b708cmbf3g"])
}

func TestRecordAnswer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   AnswerInput
		wantErr error
	}{
		{"missing user", AnswerInput{QuestionID: "loxhs1bqm25b708cmbf3g", Answer: models.OptionOne}, models.ErrValidation},
		{"missing question", AnswerInput{AuthedUser: "sarahedo", Answer: models.OptionOne}, models.ErrValidation},
		{"missing answer", AnswerInput{AuthedUser: "sarahedo", QuestionID: "loxhs1bqm25b708cmbf3g"}, models.ErrValidation},
		{"bad option", AnswerInput{AuthedUser: "sarahedo", QuestionID: "loxhs1bqm25b708cmbf3g", Answer: "optionNine"}, models.ErrInvalidOption},
		{"unknown user", AnswerInput{AuthedUser: "ghost", QuestionID: "loxhs1bqm25b708cmbf3g", Answer: models.OptionOne}, models.ErrUnknownUser},
		{"unknown question", AnswerInput{AuthedUser: "sarahedo", QuestionID: "nope", Answer: models.OptionOne}, models.ErrUnknownQuestion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testStore(t)
			err := s.RecordAnswer(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRecordAnswer_Duplicate(t *testing.T) {
	s := testStore(t)

	// sarahedo already answered this one in the seed data.
	err := s.RecordAnswer(context.Background(), AnswerInput{
		AuthedUser: "sarahedo",
		QuestionID: "8xf0y6ziyjabvozdd253nd",
		Answer:     models.OptionTwo,
	})
	assert.ErrorIs(t, err, models.ErrAlreadyAnswered)
}

func TestDelay_HonorsContextCancellation(t *testing.T) {
	s := New(SeedUsers(), SeedQuestions(), Options{
		MinLatency: 5 * time.Second,
		MaxLatency: 10 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.FetchUsers(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
