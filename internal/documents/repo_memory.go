package documents

import (
	"context"
	"sort"
	"sync"

	"portal-backend/internal/workflow"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]Document)}
}

func (r *MemoryRepo) Create(_ context.Context, d Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[d.ID] = d
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Document, 0)
	for _, d := range r.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) ApplyEnrichment(_ context.Context, id string, e Enrichment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	d.Department = workflow.Department(e.Department)
	d.Summary = e.Summary
	d.Entities = e.Entities
	d.WorkflowOutcome = e.WorkflowOutcome
	d.WorkflowChecklist = e.WorkflowChecklist
	d.Status = StatusClassified
	r.docs[id] = d
	return nil
}
