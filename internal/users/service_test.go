package users

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Alice ", "secret123", "IT")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("username = %q, want normalized alice", u.Username)
	}
	if u.PasswordHash == "secret123" || u.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	logged, err := svc.Login(ctx, "ALICE", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != u.ID {
		t.Fatalf("login returned wrong user")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "   ", "secret123", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank username err = %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "short", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("short password err = %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret123", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "Alice", "other-secret", ""); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate err = %v, want ErrUserExists", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret123", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	// Unknown user reports the same error so usernames cannot be probed.
	if _, err := svc.Login(ctx, "nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestUsernameByID(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "secret123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	name, err := svc.UsernameByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UsernameByID: %v", err)
	}
	if name != "alice" {
		t.Fatalf("name = %q", name)
	}
	if _, err := svc.UsernameByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user err = %v", err)
	}
}

// notFoundRepo wraps the sentinel the way a pg repo would.
type notFoundRepo struct{ Repo }

func (notFoundRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	return User{}, fmt.Errorf("get user %q: %w", username, ErrNotFound)
}

func TestLoginTreatsWrappedNotFoundAsBadCredentials(t *testing.T) {
	svc := NewService(notFoundRepo{NewMemoryRepo()})

	_, err := svc.Login(context.Background(), "ghost", "secret123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
