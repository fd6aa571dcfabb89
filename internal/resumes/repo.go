package resumes

import "context"

// Profile is the analysis result applied to a pending resume.
type Profile struct {
	CandidateName   string
	ExperienceYears float64
	TechnicalSkills []string
	Education       string
	JobMatches      []JobMatch
}

// Repo abstracts resume persistence.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	// ListByUser returns the user's resumes newest-first.
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	// ApplyProfile records the analysis and moves the resume to Analyzed.
	ApplyProfile(ctx context.Context, id string, p Profile) error
}
