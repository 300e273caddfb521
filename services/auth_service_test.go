package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/cricket-league/models"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Register(context.Background(), RegisterInput{
		Name:     "Second Admin",
		Email:    "admin@example.com",
		Password: "another-pass",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// The original account must be untouched.
	user, _, err := env.auth.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("original credentials must still work: %v", err)
	}
	if user.Name != "Admin" {
		t.Errorf("expected original name Admin, got %q", user.Name)
	}
}

func TestRegisterDefaultsToPlayerRole(t *testing.T) {
	env := newTestEnv(t)

	user, token, err := env.auth.Register(context.Background(), RegisterInput{
		Name:     "No Role",
		Email:    "norole@example.com",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != models.RolePlayer {
		t.Errorf("expected role %q, got %q", models.RolePlayer, user.Role)
	}
	if token == "" {
		t.Error("expected a session token")
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "secret-pass"}},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "secret-pass"}},
		{"short password", RegisterInput{Name: "A", Email: "a@b.com", Password: "abc"}},
		{"unknown role", RegisterInput{Name: "A", Email: "a@b.com", Password: "secret-pass", Role: "owner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.auth.Register(context.Background(), tt.input)
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	// Unknown email and wrong password must be indistinguishable.
	_, _, unknownErr := env.auth.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "secret-pass",
	})
	_, _, wrongPassErr := env.auth.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "wrong-pass",
	})

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)

	user, token, err := env.auth.Login(context.Background(), LoginInput{
		Email:    "Admin@Example.com",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != env.admin.ID {
		t.Errorf("expected user %s, got %s", env.admin.ID, user.ID)
	}
	if token == "" {
		t.Error("expected a session token")
	}
}
