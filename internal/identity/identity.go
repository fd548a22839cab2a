package identity

import (
	"strings"
	"sync"
)

// Profiles are the known household users selectable at the entry gate.
var Profiles = []string{"Mohamed", "Enji"}

// entryPIN is the static gate code shared by both profiles.
const entryPIN = "0"

// StorageKey derives the deterministic cloud-row key for a display name.
func StorageKey(name string) string {
	return "user-" + strings.ToLower(strings.TrimSpace(name))
}

// CheckPIN validates the static entry code.
func CheckPIN(pin string) bool {
	return pin == entryPIN
}

// KnownProfile reports whether the name is one of the selectable profiles.
func KnownProfile(name string) bool {
	for _, p := range Profiles {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// Session tracks the active identity. Sync is enabled only while an identity
// is set; without one the local store keeps working fully offline.
type Session struct {
	mu   sync.Mutex
	name string
	key  string
}

func NewSession() *Session {
	return &Session{}
}

// Set activates the given identity and returns its storage key. An empty name
// clears the session and disables sync.
func (s *Session) Set(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		s.name = ""
		s.key = ""
		return ""
	}
	s.name = name
	s.key = StorageKey(name)
	return s.key
}

// Name returns the active display name, or "" when signed out.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Key returns the active storage key, or "" when signed out.
func (s *Session) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Active reports whether sync operations are currently enabled.
func (s *Session) Active() bool {
	return s.Key() != ""
}
