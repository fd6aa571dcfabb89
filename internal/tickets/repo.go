package tickets

import (
	"context"
	"time"
)

// Repo defines persistence operations for tickets.
//
// GetByID is deliberately not scoped by owner: the affected user of an
// "other" ticket may resolve it without owning it.
type Repo interface {
	Create(ctx context.Context, t Ticket) error
	GetByID(ctx context.Context, id string) (Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]Ticket, error)
	// UpdateStatus performs a compare-and-swap on (id, from). It returns
	// false with no error when the ticket exists but its status no longer
	// equals from, so concurrent transitions cannot produce lost updates.
	UpdateStatus(ctx context.Context, id string, from, to Status, reason string, at time.Time) (bool, error)
}
