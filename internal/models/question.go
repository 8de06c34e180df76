package models

// QuestionOption holds the text of one choice and the IDs of the users
// who picked it.
type QuestionOption struct {
	Text  string   `json:"text"`
	Votes []string `json:"votes"`
}

// HasVote reports whether the given user voted for this option.
func (o QuestionOption) HasVote(userID string) bool {
	for _, id := range o.Votes {
		if id == userID {
			return true
		}
	}
	return false
}

// Question represents a single "would you rather" poll.
type Question struct {
	ID        string         `json:"id"`
	Author    string         `json:"author"`
	Timestamp int64          `json:"timestamp"` // Unix milliseconds
	OptionOne QuestionOption `json:"optionOne"`
	OptionTwo QuestionOption `json:"optionTwo"`
}

// OptionFor returns the named option of the question.
func (q Question) OptionFor(opt Option) QuestionOption {
	if opt == OptionOne {
		return q.OptionOne
	}
	return q.OptionTwo
}

// AnswerOf returns which option the user voted for, if any.
func (q Question) AnswerOf(userID string) (Option, bool) {
	if q.OptionOne.HasVote(userID) {
		return OptionOne, true
	}
	if q.OptionTwo.HasVote(userID) {
		return OptionTwo, true
	}
	return "", false
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	c := q
	c.OptionOne.Votes = append([]string(nil), q.OptionOne.Votes...)
	c.OptionTwo.Votes = append([]string(nil), q.OptionTwo.Votes...)
	return c
}
