// Package session holds the locally persisted identity of the current user:
// id, role, display name, and the gateway bearer token. Lookup is local and
// synchronous; only login/logout touch the network-free session file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Roles known to the gateway.
const (
	RoleStudent = "student"
	RoleCook    = "cook"
	RoleDoctor  = "doctor"
)

// Session is the persisted local session.
type Session struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Token    string `json:"token"`
}

// LoggedIn reports whether a user identity is present.
func (s Session) LoggedIn() bool {
	return s.UserID != ""
}

func sessionFile(dataDir string) string {
	return filepath.Join(dataDir, "session.json")
}

// Load reads the session file from the data directory. A missing file is not
// an error; it yields an empty (logged-out) session.
func Load(dataDir string) (Session, error) {
	raw, err := os.ReadFile(sessionFile(dataDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("parse session file: %w", err)
	}
	return s, nil
}

// Save writes the session file. The file holds the bearer token, so it is
// created user-readable only.
func Save(dataDir string, s Session) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(sessionFile(dataDir), raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is a no-op.
func Clear(dataDir string) error {
	err := os.Remove(sessionFile(dataDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
