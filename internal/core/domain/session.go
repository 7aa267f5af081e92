package domain

// Flash kinds used by the web routes.
const (
	FlashErrors    = "errors"
	FlashRegErrors = "regErrors"
	FlashSuccess   = "success"
)

// SessionUser is the identity bound to a logged-in session.
type SessionUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Gravatar string `json:"gravatar"`
}

// Session is the server-side state addressed by the session cookie.
type Session struct {
	User  *SessionUser        `json:"user,omitempty"`
	Flash map[string][]string `json:"flash,omitempty"`
}

// IsAuthenticated reports whether a user is bound to the session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil && s.User.ID != ""
}

// AddFlash appends a one-shot message under kind.
func (s *Session) AddFlash(kind string, msgs ...string) {
	if s.Flash == nil {
		s.Flash = make(map[string][]string)
	}
	s.Flash[kind] = append(s.Flash[kind], msgs...)
}

// Flashes returns and removes the messages stored under kind.
func (s *Session) Flashes(kind string) []string {
	msgs := s.Flash[kind]
	delete(s.Flash, kind)
	if msgs == nil {
		return []string{}
	}
	return msgs
}

// HasFlash reports whether any messages are pending.
func (s *Session) HasFlash() bool {
	for _, msgs := range s.Flash {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// SignIn binds u to the session.
func (s *Session) SignIn(u PublicUser) {
	s.User = &SessionUser{ID: u.ID, Username: u.Username, Gravatar: u.Gravatar}
}
