package tickets

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo used in dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Ticket // id -> ticket
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Ticket)}
}

// Create stores a new ticket.
func (r *MemoryRepo) Create(ctx context.Context, t Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[t.ID] = t
	return nil
}

// GetByID returns a ticket by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Ticket, error) {
	if err := ctx.Err(); err != nil {
		return Ticket{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.data[id]
	if !ok {
		return Ticket{}, ErrNotFound
	}
	return t, nil
}

// ListByUser returns the user's tickets, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Ticket{}
	for _, t := range r.data {
		if t.OwnerUserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus applies a compare-and-swap status change.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, from, to Status, reason string, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.data[id]
	if !ok {
		return false, ErrNotFound
	}
	if t.Status != from {
		return false, nil
	}
	t.Status = to
	t.UpdatedAt = at
	switch to {
	case StatusEscalated:
		t.EscalationReason = reason
	case StatusReopened:
		t.ReopenReason = reason
	}
	r.data[id] = t
	return true, nil
}

var _ Repo = (*MemoryRepo)(nil)
