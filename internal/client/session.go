package client

import "errors"

// View names mirror the pages the server ships.
type View string

const (
	ViewLanding   View = "landing"
	ViewLogin     View = "login"
	ViewRegister  View = "register"
	ViewDashboard View = "dashboard"
	ViewDiet      View = "diet"
	ViewExpert    View = "expert"
)

// State is the client session: either a credential is held or it is not.
// The token is never verified client-side beyond presence; an expired one
// surfaces as a failed API call.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

var ErrEmptyToken = errors.New("empty token")

// TokenStore persists the credential across invocations, the terminal
// analog of browser local storage.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// IsProtected reports whether a view requires an authenticated session.
func IsProtected(v View) bool {
	switch v {
	case ViewDashboard, ViewDiet, ViewExpert:
		return true
	}
	return false
}

// Resolve is the pure navigation transition: a protected target while
// unauthenticated redirects to login and the original attempt is dropped,
// not queued.
func Resolve(state State, target View) View {
	if IsProtected(target) && state != StateAuthenticated {
		return ViewLogin
	}
	return target
}

type Session struct {
	state State
	token string
	store TokenStore
}

// NewSession restores state from the token store; a present token means
// authenticated.
func NewSession(store TokenStore) (*Session, error) {
	s := &Session{state: StateUnauthenticated, store: store}
	if store == nil {
		return s, nil
	}
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	if token != "" {
		s.token = token
		s.state = StateAuthenticated
	}
	return s, nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Token() string { return s.token }

func (s *Session) Authenticated() bool { return s.state == StateAuthenticated }

// LoginSucceeded is the unauthenticated -> authenticated transition,
// persisting the credential as it goes.
func (s *Session) LoginSucceeded(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if s.store != nil {
		if err := s.store.Save(token); err != nil {
			return err
		}
	}
	s.token = token
	s.state = StateAuthenticated
	return nil
}

// Logout clears both the stored and in-memory credential.
func (s *Session) Logout() error {
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			return err
		}
	}
	s.token = ""
	s.state = StateUnauthenticated
	return nil
}

// Navigate applies the view gate against the current state.
func (s *Session) Navigate(target View) View {
	return Resolve(s.state, target)
}
