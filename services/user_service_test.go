package services

import (
	"context"
	"errors"
	"testing"
)

func TestListUsersIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.users.List(ctx, env.manager); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("manager: expected ErrForbiddenOperation, got %v", err)
	}
	if _, err := env.users.List(ctx, env.player); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("player: expected ErrForbiddenOperation, got %v", err)
	}

	users, err := env.users.List(ctx, env.admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
}

func TestGetUserByID(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.GetByID(context.Background(), env.admin.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("unexpected email %q", user.Email)
	}

	if _, err := env.users.GetByID(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
