// Package session holds the client's authentication state: the bearer
// token issued by the backend and the role decoded from it. Exactly one
// Session is created per process and passed to everything that makes
// authorized calls.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the authority embedded in the token's role claim.
type Role string

const (
	RoleNone  Role = ""
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// State is the persisted authentication state.
type State struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Token           string `json:"token"`
	Role            Role   `json:"role"`
}

// Store persists State between runs.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// Session wraps the current State and writes every transition through
// the Store. Only the authentication flows mutate it; everything else
// reads.
type Session struct {
	state State
	store Store
}

// New restores the session from the store. A missing or unreadable
// state starts unauthenticated.
func New(store Store) *Session {
	s := &Session{store: store}
	if store != nil {
		if state, err := store.Load(); err == nil {
			s.state = state
		}
	}
	return s
}

// tokenClaims is the payload shape the backend signs: the registered
// claims plus a role claim holding a list of granted authorities.
type tokenClaims struct {
	Roles []struct {
		Authority string `json:"authority"`
	} `json:"role"`
	jwt.RegisteredClaims
}

func decodeClaims(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	// The backend verifies the signature; the client only reads claims.
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}

// SetToken installs a freshly issued token, decodes its role claim and
// persists the new state. Used by both login and registration.
func (s *Session) SetToken(token string) error {
	claims, err := decodeClaims(token)
	if err != nil {
		return err
	}

	role := RoleNone
	if len(claims.Roles) > 0 {
		role = Role(claims.Roles[0].Authority)
	}

	s.state = State{IsAuthenticated: true, Token: token, Role: role}
	return s.persist()
}

// Logout resets to the unauthenticated state and persists it.
func (s *Session) Logout() error {
	s.state = State{}
	return s.persist()
}

func (s *Session) persist() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(s.state)
}

// State returns a copy of the current state.
func (s *Session) State() State { return s.state }

func (s *Session) IsAuthenticated() bool { return s.state.IsAuthenticated }
func (s *Session) Token() string         { return s.state.Token }
func (s *Session) Role() Role            { return s.state.Role }
func (s *Session) IsAdmin() bool         { return s.state.Role == RoleAdmin }

// Subject returns the token's sub claim, the account email.
func (s *Session) Subject() string {
	if !s.state.IsAuthenticated {
		return ""
	}
	claims, err := decodeClaims(s.state.Token)
	if err != nil {
		return ""
	}
	return claims.Subject
}

// Expired reports whether the token's exp claim has passed. Tokens
// without an exp claim never expire.
func (s *Session) Expired() bool {
	if !s.state.IsAuthenticated {
		return false
	}
	claims, err := decodeClaims(s.state.Token)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Now().After(claims.ExpiresAt.Time)
}
