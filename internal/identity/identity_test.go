package identity

import "testing"

func TestStorageKey(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Mohamed", "user-mohamed"},
		{"  Enji  ", "user-enji"},
		{"MOHAMED", "user-mohamed"},
	}
	for _, tc := range cases {
		if got := StorageKey(tc.name); got != tc.want {
			t.Errorf("StorageKey(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCheckPIN(t *testing.T) {
	if !CheckPIN("0") {
		t.Error("the entry PIN must be accepted")
	}
	for _, pin := range []string{"", "1", "00", "pin"} {
		if CheckPIN(pin) {
			t.Errorf("PIN %q accepted", pin)
		}
	}
}

func TestKnownProfile(t *testing.T) {
	if !KnownProfile("Mohamed") || !KnownProfile("Enji") {
		t.Error("stock profiles not recognized")
	}
	if KnownProfile("Stranger") {
		t.Error("unknown profile recognized")
	}
}

func TestSession(t *testing.T) {
	s := NewSession()
	if s.Active() {
		t.Error("fresh session must be inactive")
	}

	key := s.Set("Mohamed")
	if key != "user-mohamed" {
		t.Errorf("key = %q", key)
	}
	if !s.Active() || s.Name() != "Mohamed" || s.Key() != "user-mohamed" {
		t.Errorf("session state wrong: %q %q", s.Name(), s.Key())
	}

	s.Set("")
	if s.Active() || s.Key() != "" {
		t.Error("empty name must deactivate the session")
	}
}
