package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 30
	PasswordMinLen = 12
	PasswordMaxLen = 50
)

// User models a registered account as stored in the users collection.
type User struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
}

// PublicUser is the only shape of a user that leaves the auth boundary.
// It never carries the password hash.
type PublicUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Gravatar string `json:"gravatar"`
}

// AuthenticatedUser is the result of a successful login.
type AuthenticatedUser struct {
	User     User
	Gravatar string
}

// Public projects the authenticated user to its public view.
func (a AuthenticatedUser) Public() PublicUser {
	return PublicUser{ID: a.User.ID, Username: a.User.Username, Gravatar: a.Gravatar}
}

// NormalizedUser is registration/login input after CleanUp.
type NormalizedUser struct {
	Username string
	Email    string
	Password string
}

// CleanUp keeps only username, email and password from raw input. Values that
// are not strings become empty; username and email are trimmed and lowercased.
func CleanUp(raw map[string]any) NormalizedUser {
	return NormalizedUser{
		Username: strings.ToLower(strings.TrimSpace(AsText(raw["username"]))),
		Email:    strings.ToLower(strings.TrimSpace(AsText(raw["email"]))),
		Password: AsText(raw["password"]),
	}
}

// AsText returns v when it is a string and "" otherwise.
func AsText(v any) string {
	s, _ := v.(string)
	return s
}

// Gravatar builds the avatar URL addressed by the md5 of the email.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("https://gravatar.com/avatar/%s?s=128", hex.EncodeToString(sum[:]))
}

// FormatResult is the outcome of the storage-independent validation pass.
// UsernameOK and EmailOK gate the uniqueness lookups.
type FormatResult struct {
	Errors     []string
	UsernameOK bool
	EmailOK    bool
}

var check = validator.New()

// CheckFormat applies every format rule and accumulates all failures.
func CheckFormat(u NormalizedUser) FormatResult {
	res := FormatResult{UsernameOK: true, EmailOK: true}
	fail := func(msg string) { res.Errors = append(res.Errors, msg) }

	// Lengths are in characters, not bytes.
	usernameLen := utf8.RuneCountInString(u.Username)
	passwordLen := utf8.RuneCountInString(u.Password)

	if u.Username == "" {
		fail(MsgUsernameRequired)
		res.UsernameOK = false
	}
	if u.Username != "" && check.Var(u.Username, "alphanum") != nil {
		fail(MsgUsernameAlnum)
		res.UsernameOK = false
	}
	if check.Var(u.Email, "required,email") != nil {
		fail(MsgEmailInvalid)
		res.EmailOK = false
	}
	if u.Password == "" {
		fail(MsgPasswordRequired)
	}
	if passwordLen > 0 && passwordLen < PasswordMinLen {
		fail(MsgPasswordTooShort)
	}
	if passwordLen > PasswordMaxLen {
		fail(MsgPasswordTooLong)
	}
	if usernameLen > 0 && usernameLen < UsernameMinLen {
		fail(MsgUsernameTooShort)
		res.UsernameOK = false
	}
	if usernameLen > UsernameMaxLen {
		fail(MsgUsernameTooLong)
		res.UsernameOK = false
	}
	return res
}
