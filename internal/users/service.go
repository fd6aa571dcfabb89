package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"portal-backend/internal/shared/telemetry"
)

// Service implements account registration, login and identity lookups.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates an account. Usernames are normalized to lowercase and
// passwords stored as bcrypt hashes.
func (s *Service) Register(ctx context.Context, username, password, department string) (User, error) {
	username = normalizeUsername(username)
	if username == "" {
		return User{}, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < 6 {
		return User{}, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Department:   strings.TrimSpace(department),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	telemetry.Info("user.registered", map[string]any{"user_id": u.ID, "username": u.Username})
	return u, nil
}

// Login verifies credentials and returns the matching user. Unknown
// usernames and wrong passwords report the same error.
func (s *Service) Login(ctx context.Context, username, password string) (User, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return User{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns a user by id.
func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return s.Repo.GetByID(ctx, id)
}

// UsernameByID resolves the persisted username for an actor id. Ticket
// authorization guards rely on this instead of request-supplied names.
func (s *Service) UsernameByID(ctx context.Context, id string) (string, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
