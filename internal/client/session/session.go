// Package session keeps the client's credentials between runs. The session is
// an explicit object handed to whoever needs it, never package-level state.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Session is the persisted login state. Token is the bearer token issued at
// signup or login; Name and Email are kept for display only.
type Session struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store reads and writes a Session at a fixed file path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Active reports whether s holds a token. It says nothing about whether the
// token is still accepted by the server.
func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

// Load reads the session file. A missing file is not an error: it returns an
// empty, inactive session.
func (st *Store) Load() (*Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Session{}, nil
		}
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt file is treated as logged out rather than wedging the
		// client; the next login overwrites it.
		return &Session{}, nil
	}
	return &s, nil
}

// Save writes the session with owner-only permissions. The token is a
// credential and must not be readable by other local users.
func (st *Store) Save(s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, data, 0o600)
}

// Clear removes the session file. Clearing an already absent session is fine.
func (st *Store) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
