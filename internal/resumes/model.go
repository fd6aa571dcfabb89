package resumes

import "time"

// Resume statuses. A resume is Pending from upload until profile extraction
// and job matching finish.
const (
	StatusPending  = "Pending"
	StatusAnalyzed = "Analyzed"
)

// Fit bands for a job match score.
const (
	FitHigh   = "High"
	FitMedium = "Medium"
	FitLow    = "Low"
)

// JobMatch scores a resume against one role.
type JobMatch struct {
	Role  string `json:"role"`
	Match int    `json:"match"`
	Fit   string `json:"fit"`
}

// FitForScore maps a 0-100 match score to its band.
func FitForScore(score int) string {
	switch {
	case score >= 80:
		return FitHigh
	case score >= 60:
		return FitMedium
	default:
		return FitLow
	}
}

// Resume is an uploaded candidate resume plus its extracted profile and
// role matches.
type Resume struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	FileName        string     `json:"fileName"`
	StorageKey      string     `json:"-"`
	CandidateName   string     `json:"candidateName,omitempty"`
	ExperienceYears float64    `json:"experienceYears"`
	TechnicalSkills []string   `json:"technicalSkills,omitempty"`
	Education       string     `json:"education,omitempty"`
	JobMatches      []JobMatch `json:"jobMatches,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
}
