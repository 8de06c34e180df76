package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thounda/employee-polls-be/internal/models"
)

func seededState(t *testing.T) *State {
	t.Helper()
	s := New()
	s.LoadUsers(map[string]models.User{
		"u1": {ID: "u1", Name: "Alice", Credential: "pw", Answers: map[string]models.Option{}},
		"u2": {ID: "u2", Name: "Bob", Credential: "pw", Answers: map[string]models.Option{}},
	})
	s.LoadQuestions(map[string]models.Question{
		"q1": {
			ID:        "q1",
			Author:    "u1",
			Timestamp: 100,
			OptionOne: models.QuestionOption{Text: "Tea", Votes: []string{}},
			OptionTwo: models.QuestionOption{Text: "Coffee", Votes: []string{}},
		},
	})
	return s
}

func TestSetAuthedUser(t *testing.T) {
	s := seededState(t)

	err := s.SetAuthedUser("u1")
	require.NoError(t, err)

	id, ok := s.AuthedUser()
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
}

func TestSetAuthedUser_Unknown(t *testing.T) {
	s := seededState(t)

	err := s.SetAuthedUser("ghost")
	assert.ErrorIs(t, err, models.ErrUnknownUser)

	_, ok := s.AuthedUser()
	assert.False(t, ok)
}

func TestClearAuthedUser(t *testing.T) {
	s := seededState(t)
	require.NoError(t, s.SetAuthedUser("u1"))

	s.ClearAuthedUser()

	_, ok := s.AuthedUser()
	assert.False(t, ok)
}

func TestLoadUsers_MergesAndOverwrites(t *testing.T) {
	s := seededState(t)

	s.LoadUsers(map[string]models.User{
		"u2": {ID: "u2", Name: "Bobby", Answers: map[string]models.Option{}},
		"u3": {ID: "u3", Name: "Cara", Answers: map[string]models.Option{}},
	})

	u2, ok := s.User("u2")
	require.True(t, ok)
	assert.Equal(t, "Bobby", u2.Name)

	_, ok = s.User("u3")
	assert.True(t, ok)

	// Existing entries that were not in the batch stay put.
	_, ok = s.User("u1")
	assert.True(t, ok)
}

func TestReadsReturnCopies(t *testing.T) {
	s := seededState(t)

	u1, ok := s.User("u1")
	require.True(t, ok)
	u1.Answers["q1"] = models.OptionOne
	u1.Questions = append(u1.Questions, "q1")

	fresh, _ := s.User("u1")
	assert.Empty(t, fresh.Answers)
	assert.Empty(t, fresh.Questions)
}

func TestReadsReturnCopies_Votes(t *testing.T) {
	s := seededState(t)
	require.NoError(t, s.RecordVote("u2", "q1", models.OptionOne))

	q, ok := s.Question("q1")
	require.True(t, ok)
	q.OptionOne.Votes[0] = "tampered"

	fresh, _ := s.Question("q1")
	assert.Equal(t, []string{"u2"}, fresh.OptionOne.Votes)
}

func TestInsertQuestion(t *testing.T) {
	s := seededState(t)

	q := models.Question{
		ID:        "q2",
		Author:    "u2",
		Timestamp: 200,
		OptionOne: models.QuestionOption{Text: "Cats", Votes: []string{}},
		OptionTwo: models.QuestionOption{Text: "Dogs", Votes: []string{}},
	}
	require.NoError(t, s.InsertQuestion(q))

	stored, ok := s.Question("q2")
	assert.True(t, ok)
	assert.Equal(t, "u2", stored.Author)

	author, _ := s.User("u2")
	assert.Contains(t, author.Questions, "q2")
}

func TestInsertQuestion_UnknownAuthor(t *testing.T) {
	s := seededState(t)

	q := models.Question{ID: "q2", Author: "ghost"}
	err := s.InsertQuestion(q)
	assert.ErrorIs(t, err, models.ErrUnknownAuthor)

	// Neither slice was touched.
	_, ok := s.Question("q2")
	assert.False(t, ok)
	for _, u := range s.Users() {
		assert.NotContains(t, u.Questions, "q2")
	}
}

func TestRecordVote(t *testing.T) {
	s := seededState(t)

	require.NoError(t, s.RecordVote("u2", "q1", models.OptionOne))

	q, _ := s.Question("q1")
	assert.Equal(t, []string{"u2"}, q.OptionOne.Votes)
	assert.Empty(t, q.OptionTwo.Votes)

	u, _ := s.User("u2")
	assert.Equal(t, models.OptionOne, u.Answers["q1"])
}

func TestRecordVote_Duplicate(t *testing.T) {
	s := seededState(t)
	require.NoError(t, s.RecordVote("u2", "q1", models.OptionOne))

	// Second vote, either option, must be rejected and change nothing.
	for _, opt := range []models.Option{models.OptionOne, models.OptionTwo} {
		err := s.RecordVote("u2", "q1", opt)
		assert.ErrorIs(t, err, models.ErrAlreadyAnswered)
	}

	q, _ := s.Question("q1")
	assert.Equal(t, []string{"u2"}, q.OptionOne.Votes)
	assert.Empty(t, q.OptionTwo.Votes)
	u, _ := s.User("u2")
	assert.Len(t, u.Answers, 1)
}

func TestRecordVote_Validation(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		qid     string
		option  models.Option
		wantErr error
	}{
		{"unknown user", "ghost", "q1", models.OptionOne, models.ErrUnknownUser},
		{"unknown question", "u1", "nope", models.OptionOne, models.ErrUnknownQuestion},
		{"invalid option", "u1", "q1", models.Option("optionThree"), models.ErrInvalidOption},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := seededState(t)
			err := s.RecordVote(tc.userID, tc.qid, tc.option)
			assert.ErrorIs(t, err, tc.wantErr)

			// Failed votes leave both slices untouched.
			q, _ := s.Question("q1")
			assert.Empty(t, q.OptionOne.Votes)
			assert.Empty(t, q.OptionTwo.Votes)
		})
	}
}

// Votes and answers must agree after every mutation: each recorded answer
// appears in exactly that option's votes, never the opposite one.
func TestVoteConsistency(t *testing.T) {
	s := New()
	users := map[string]models.User{}
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("u%d", i)
		users[id] = models.User{ID: id, Name: id, Answers: map[string]models.Option{}}
	}
	s.LoadUsers(users)
	questions := map[string]models.Question{}
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("q%d", i)
		questions[id] = models.Question{
			ID: id, Author: "u0", Timestamp: int64(i),
			OptionOne: models.QuestionOption{Text: "a", Votes: []string{}},
			OptionTwo: models.QuestionOption{Text: "b", Votes: []string{}},
		}
	}
	s.LoadQuestions(questions)

	step := 0
	for uid := range users {
		for qid := range questions {
			opt := models.OptionOne
			if step%2 == 1 {
				opt = models.OptionTwo
			}
			require.NoError(t, s.RecordVote(uid, qid, opt))
			step++

			assertConsistent(t, s)
		}
	}
}

func assertConsistent(t *testing.T, s *State) {
	t.Helper()
	qs := s.Questions()
	for _, u := range s.Users() {
		for qid, answer := range u.Answers {
			q, ok := qs[qid]
			require.True(t, ok, "answer references missing question %s", qid)
			assert.True(t, q.OptionFor(answer).HasVote(u.ID),
				"user %s answer on %s not present in %s votes", u.ID, qid, answer)
			assert.False(t, q.OptionFor(answer.Opposite()).HasVote(u.ID),
				"user %s appears in both options of %s", u.ID, qid)
		}
	}
}
