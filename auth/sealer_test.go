package auth

import (
	"errors"
	"testing"
)

func TestSealerRoundTrip(t *testing.T) {
	s, err := NewSealer("secret")
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}

	sealed, err := s.Seal("bearer-token")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if sealed == "bearer-token" {
		t.Fatalf("token stored in the clear")
	}

	got, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got != "bearer-token" {
		t.Fatalf("expected bearer-token, got %q", got)
	}
}

func TestSealerRejectsTamperedAndForeignValues(t *testing.T) {
	a, _ := NewSealer("a")
	b, _ := NewSealer("b")

	sealed, err := a.Seal("tok")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if _, err := b.Open(sealed); !errors.Is(err, ErrUnseal) {
		t.Fatalf("expected ErrUnseal for foreign key, got %v", err)
	}

	tampered := []byte(sealed)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}
	if _, err := a.Open(string(tampered)); !errors.Is(err, ErrUnseal) {
		t.Fatalf("expected ErrUnseal for tampered value, got %v", err)
	}

	if _, err := a.Open("short"); !errors.Is(err, ErrUnseal) {
		t.Fatalf("expected ErrUnseal for short value, got %v", err)
	}
}
