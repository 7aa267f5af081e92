package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username/password")
	ErrLoginUnavailable   = errors.New("please try again later")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
)

// User-facing validation messages.
const (
	MsgUsernameRequired = "You must provide a username."
	MsgUsernameAlnum    = "Username can only contain letters and numbers."
	MsgEmailInvalid     = "You must provide a valid email address."
	MsgPasswordRequired = "You must provide a password."
	MsgPasswordTooShort = "Password must be at least 12 characters."
	MsgPasswordTooLong  = "Password cannot exceed 50 characters."
	MsgUsernameTooShort = "Username must be at least 3 characters."
	MsgUsernameTooLong  = "Username cannot exceed 30 characters."
	MsgUsernameTaken    = "That username is already taken."
	MsgEmailTaken       = "That email is already being used."

	MsgTitleRequired = "You must provide a title."
	MsgBodyRequired  = "You must provide post content."

	MsgFollowSelf        = "You cannot follow yourself."
	MsgAlreadyFollowing  = "You are already following this user."
	MsgNotFollowing      = "You cannot stop following someone you do not already follow."
	MsgFollowUnknownUser = "You cannot follow a user that does not exist."

	MsgMustBeLoggedIn   = "You must be logged in to access that page!"
	MsgIncorrectLogin   = "Incorrect username/password."
	MsgTryAgainLater    = "Please try again later."
	MsgInvalidAPILogin  = "Sorry, your values are not correct."
	MsgInvalidUserQuery = "Invalid user requested."
)

// ValidationErrors is a list of user-correctable problems. It is returned
// instead of mutating storage whenever any rule fails.
type ValidationErrors struct {
	Messages []string
}

func (v *ValidationErrors) Error() string {
	return strings.Join(v.Messages, "; ")
}

// NewValidationErrors returns nil when msgs is empty.
func NewValidationErrors(msgs ...string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationErrors{Messages: msgs}
}

// ValidationMessages extracts the message list from err, if it is a ValidationErrors.
func ValidationMessages(err error) ([]string, bool) {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve.Messages, true
	}
	return nil, false
}
