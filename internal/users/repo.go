package users

import "context"

// Repo abstracts user persistence.
type Repo interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	// GetByUsername looks up by the normalized (lowercase) username.
	GetByUsername(ctx context.Context, username string) (User, error)
}
