package token

import (
	"errors"
	"testing"
	"time"

	"taskflow/internal/domain"
)

func TestManager_IssueVerifyRoundtrip(t *testing.T) {
	m, err := NewManager(&Config{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	actor := domain.Actor{ID: 42, Role: domain.RoleManager}
	signed, err := m.Issue(actor)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != actor {
		t.Fatalf("got %+v, want %+v", got, actor)
	}
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewManager(&Config{Secret: "secret-a", TTL: time.Hour})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	verifier, err := NewManager(&Config{Secret: "secret-b", TTL: time.Hour})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	signed, err := issuer.Issue(domain.Actor{ID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m, err := NewManager(&Config{Secret: "test-secret", TTL: time.Nanosecond})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	signed, err := m.Issue(domain.Actor{ID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestManager_RejectsGarbage(t *testing.T) {
	m, err := NewManager(&Config{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("token %q: expected ErrInvalidCredentials, got %v", tok, err)
		}
	}
}

func TestNewManager_RequiresSecret(t *testing.T) {
	if _, err := NewManager(&Config{Secret: ""}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
