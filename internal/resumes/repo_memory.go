package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(_ context.Context, res Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[res.ID] = res
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resumes[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return res, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string) ([]Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resume, 0)
	for _, res := range r.resumes {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) ApplyProfile(_ context.Context, id string, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[id]
	if !ok {
		return ErrNotFound
	}
	res.CandidateName = p.CandidateName
	res.ExperienceYears = p.ExperienceYears
	res.TechnicalSkills = p.TechnicalSkills
	res.Education = p.Education
	res.JobMatches = p.JobMatches
	res.Status = StatusAnalyzed
	r.resumes[id] = res
	return nil
}
