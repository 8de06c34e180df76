package models

// Option identifies one of the two fixed choices on a question.
type Option string

const (
	OptionOne Option = "optionOne"
	OptionTwo Option = "optionTwo"
)

// Valid reports whether o is one of the two known options.
func (o Option) Valid() bool {
	return o == OptionOne || o == OptionTwo
}

// Opposite returns the other option.
func (o Option) Opposite() Option {
	if o == OptionOne {
		return OptionTwo
	}
	return OptionOne
}

// User represents an employee account in the system.
type User struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	AvatarURL  string            `json:"avatarURL,omitempty"`
	Credential string            `json:"-"` // Mock login secret, never serialized
	Answers    map[string]Option `json:"answers"`
	Questions  []string          `json:"questions"`
}

// Clone returns a deep copy so callers can never mutate shared state.
func (u User) Clone() User {
	c := u
	c.Answers = make(map[string]Option, len(u.Answers))
	for qid, opt := range u.Answers {
		c.Answers[qid] = opt
	}
	c.Questions = append([]string(nil), u.Questions...)
	return c
}

// HasAnswered reports whether the user has voted on the given question.
func (u User) HasAnswered(questionID string) bool {
	_, ok := u.Answers[questionID]
	return ok
}
