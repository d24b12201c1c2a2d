// Package session tracks the authenticated user of one browser session and
// decides where the browser goes after authentication events.
package session

import (
	"encoding/json"
	"maps"
	"strconv"
	"sync"
)

// CookieName is the cookie that carries the browser's session id.
const CookieName = "staffsync_session"

// User is the opaque user object handed over by the auth provider.
type User map[string]any

// ID returns the provider's user id, looked up under the keys providers
// commonly use.
func (u User) ID() string {
	for _, key := range []string{"userId", "id", "Id", "sub", "emailAddress", "email"} {
		switch v := u[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

type Store struct {
	mu   sync.RWMutex
	user User
}

func NewStore() *Store {
	return &Store{}
}

// SetUser stores a deep copy of user.
func (s *Store) SetUser(user User) error {
	cp, err := deepCopy(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = cp
	return nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Snapshot returns a copy of the user and whether one is set.
func (s *Store) Snapshot() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	return maps.Clone(s.user), true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func deepCopy(user User) (User, error) {
	if user == nil {
		return nil, nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	var out User
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
