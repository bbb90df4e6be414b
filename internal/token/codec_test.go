package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"claimdesk/internal/models"
)

const testSecret = "test-secret-not-for-production"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	c := New(testSecret, time.Hour)
	for _, role := range []models.Role{models.RoleAdmin, models.RoleHr, models.RoleAgent, models.RoleEmployee} {
		tok, err := c.Issue("user@corp.test", role)
		if err != nil {
			t.Fatalf("Issue(%s): %v", role, err)
		}
		id, err := c.Verify(tok)
		if err != nil {
			t.Fatalf("Verify(%s): %v", role, err)
		}
		if id.Subject != "user@corp.test" || id.Role != role {
			t.Errorf("round trip mismatch: got %+v", id)
		}
	}
}

func TestVerifyExpired(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New(testSecret, time.Hour)
	c.now = fixedClock(issued)

	tok, err := c.Issue("user@corp.test", models.RoleEmployee)
	if err != nil {
		t.Fatal(err)
	}

	// до истечения — валиден
	c.now = fixedClock(issued.Add(59 * time.Minute))
	if _, err := c.Verify(tok); err != nil {
		t.Errorf("expected token valid before expiry, got %v", err)
	}

	// после истечения — ErrExpired, не что-то другое
	c.now = fixedClock(issued.Add(61 * time.Minute))
	if _, err := c.Verify(tok); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyNoExpiryWhenTTLZero(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New(testSecret, 0)
	c.now = fixedClock(issued)

	tok, err := c.Issue("user@corp.test", models.RoleAgent)
	if err != nil {
		t.Fatal(err)
	}
	c.now = fixedClock(issued.AddDate(10, 0, 0))
	if _, err := c.Verify(tok); err != nil {
		t.Errorf("token without ttl must not expire, got %v", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	c := New(testSecret, time.Hour)
	tok, err := c.Issue("user@corp.test", models.RoleHr)
	if err != nil {
		t.Fatal(err)
	}
	// портим один символ подписи
	last := tok[len(tok)-1]
	repl := byte('A')
	if last == repl {
		repl = 'B'
	}
	tampered := tok[:len(tok)-1] + string(repl)
	if _, err := c.Verify(tampered); !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := New(testSecret, time.Hour).Issue("user@corp.test", models.RoleHr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New("another-secret", time.Hour).Verify(tok); !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	c := New(testSecret, time.Hour)
	for _, raw := range []string{"", "garbage", "a.b", strings.Repeat("x", 64)} {
		if _, err := c.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	c := New(testSecret, time.Hour)
	tok, err := c.Issue("user@corp.test", models.Role("SUPERUSER"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Verify(tok); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for unknown role, got %v", err)
	}
}
