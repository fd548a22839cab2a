package credentials

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestStoreAndDSN(t *testing.T) {
	gokeyring.MockInit()

	want := "postgres://rafiq@localhost:5432/rafiq?sslmode=disable"
	if err := Store(want); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	got, err := DSN()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestStore_RejectsEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := Store(""); err == nil {
		t.Error("empty connection string stored without error")
	}
}

func TestDSN_NotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = Clear()

	if _, err := DSN(); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClear(t *testing.T) {
	gokeyring.MockInit()

	if err := Store("postgres://rafiq@localhost/rafiq"); err != nil {
		t.Fatal(err)
	}
	if err := Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := Clear(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second clear error = %v, want ErrNotFound", err)
	}
}
