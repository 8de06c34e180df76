package models

import "errors"

// Domain errors. Handlers map these to HTTP statuses with errors.Is;
// services wrap them with context but never replace them.
var (
	// ErrValidation signals a missing or empty required input.
	ErrValidation = errors.New("missing required field")

	// ErrNotAuthenticated signals a mutation attempted without a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAlreadyAnswered signals a second vote on the same question by the
	// same user. The first vote is permanent.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrUnknownQuestion signals a reference to a question that does not exist.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrUnknownUser signals a reference to a user that does not exist.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownAuthor signals an insert whose author is not a known user.
	// This is a programming error in the caller, not a retryable condition.
	ErrUnknownAuthor = errors.New("unknown author")

	// ErrInvalidOption signals an option outside optionOne/optionTwo.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInvalidCredentials signals a failed mock login check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
