package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

func TestIssueParse(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)

	token, err := iss.Issue(&models.User{ID: "u1", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(Claims{UserID: "u1", Role: models.RoleAdmin}, got); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejects(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)
	token, _ := iss.Issue(&models.User{ID: "u1", Role: models.RoleEmployee})

	other := NewIssuer("outro", time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret err = %v", err)
	}

	expired := NewIssuer("s3cret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := expired.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired err = %v", err)
	}

	if _, err := iss.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage err = %v", err)
	}
}
