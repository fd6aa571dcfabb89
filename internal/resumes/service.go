package resumes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"portal-backend/internal/extract"
	"portal-backend/internal/llm"
	"portal-backend/internal/queue"
	"portal-backend/internal/shared/metrics"
	"portal-backend/internal/shared/storage/object"
	"portal-backend/internal/shared/telemetry"
)

// Service contains the resume business logic: upload, profile extraction
// and candidate matching. Analysis runs off the request path, either on
// the queue or on an in-process goroutine.
type Service struct {
	Store          object.ObjectStore
	Repo           Repo
	LLM            llm.Client
	Queue          queue.Publisher
	AnalyzeTimeout time.Duration
	Metrics        *metrics.Metrics
}

// Upload saves the file, records a Pending resume and schedules analysis.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	if userID == "" {
		return Resume{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if fileName == "" {
		return Resume{}, fmt.Errorf("%w: file name is required", ErrValidation)
	}

	storageKey, _, _, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Resume{}, err
	}

	res := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		StorageKey: storageKey,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}

	s.schedule(ctx, res.ID)
	return res, nil
}

// Get returns a resume by id.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	if id == "" {
		return Resume{}, fmt.Errorf("%w: resume id is required", ErrValidation)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns the user's resumes newest-first.
func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Search ranks the user's resumes against a job role, filtered to
// candidates with at least minExperience years. An empty result is valid.
func (s *Service) Search(ctx context.Context, userID, jobRole string, minExperience float64) ([]Resume, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if strings.TrimSpace(jobRole) == "" {
		return nil, fmt.Errorf("%w: job role is required", ErrValidation)
	}
	if minExperience < 0 {
		return nil, fmt.Errorf("%w: minimum experience cannot be negative", ErrValidation)
	}

	all, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Rank(all, jobRole, minExperience), nil
}

func (s *Service) schedule(ctx context.Context, resumeID string) {
	if s.Queue != nil {
		err := s.Queue.Publish(ctx, queue.Job{Kind: queue.KindResume, ID: resumeID})
		if err == nil {
			return
		}
		telemetry.Warn("resume.enqueue", map[string]any{
			"resume_id": resumeID,
			"error":     err.Error(),
		})
	}
	go s.Complete(context.Background(), resumeID)
}

// Complete runs profile extraction and job matching for one pending
// resume. Analysis failure degrades the record: it still moves to
// Analyzed, with whatever profile data could be recovered.
func (s *Service) Complete(ctx context.Context, resumeID string) error {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("resume.analyze", map[string]any{
				"resume_id": resumeID,
				"error":     fmt.Sprintf("panic: %v", r),
			})
		}
	}()
	startedAt := time.Now().UTC()

	res, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return fmt.Errorf("resume lookup id=%s: %w", resumeID, err)
	}
	if res.Status != StatusPending {
		return nil
	}

	profile, result := s.analyze(ctx, res)
	if err := s.Repo.ApplyProfile(ctx, res.ID, profile); err != nil {
		return fmt.Errorf("apply profile id=%s: %w", res.ID, err)
	}

	telemetry.Info("resume.status", map[string]any{
		"resume_id":         res.ID,
		"user_id":           res.UserID,
		"status_transition": StatusPending + "->" + StatusAnalyzed,
	})
	if s.Metrics != nil {
		s.Metrics.ObserveResumeAnalysis(result)
		s.Metrics.ObserveEnrichmentDuration("resume", time.Since(startedAt))
	}
	return nil
}

// resumeProfile is the JSON shape requested from the model.
type resumeProfile struct {
	CandidateName   string   `json:"candidate_name"`
	ExperienceYears float64  `json:"experience_years"`
	TechnicalSkills []string `json:"technical_skills"`
	Education       string   `json:"education"`
}

func (s *Service) analyze(ctx context.Context, res Resume) (Profile, string) {
	text, err := s.loadText(ctx, res)
	if err != nil {
		telemetry.Warn("resume.extract", map[string]any{
			"resume_id": res.ID,
			"error":     err.Error(),
		})
		return Profile{}, "extract_error"
	}
	if s.LLM == nil {
		return Profile{}, "no_llm"
	}

	timeout := s.AnalyzeTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	analyzeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.LLM.Complete(analyzeCtx, profilePrompt(text))
	if err != nil {
		telemetry.Warn("resume.analyze", map[string]any{
			"resume_id": res.ID,
			"error":     err.Error(),
		})
		return Profile{}, "llm_error"
	}

	parsed, err := parseProfile(raw)
	if err != nil {
		telemetry.Warn("resume.parse", map[string]any{
			"resume_id": res.ID,
			"error":     err.Error(),
		})
		return Profile{}, "parse_error"
	}

	profile := Profile{
		CandidateName:   strings.TrimSpace(parsed.CandidateName),
		ExperienceYears: parsed.ExperienceYears,
		TechnicalSkills: parsed.TechnicalSkills,
		Education:       strings.TrimSpace(parsed.Education),
	}
	profile.JobMatches = matchesForSkills(profile.TechnicalSkills)
	return profile, "ok"
}

// matchesForSkills precomputes a match for every known role so search can
// serve stored scores without recomputation.
func matchesForSkills(skills []string) []JobMatch {
	if len(skills) == 0 {
		return nil
	}
	roles := make([]string, 0, len(roleSkills))
	for role := range roleSkills {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	matches := make([]JobMatch, 0, len(roles))
	for _, role := range roles {
		score := keywordScore(skills, role)
		if score == 0 {
			continue
		}
		matches = append(matches, JobMatch{Role: role, Match: score, Fit: FitForScore(score)})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Match > matches[j].Match })
	return matches
}

func profilePrompt(text string) string {
	const maxChars = 6000
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return "Extract the candidate profile from this resume. Respond with only a JSON object with keys " +
		`"candidate_name" (string), "experience_years" (number), "technical_skills" (array of strings), "education" (string).` +
		"\n\nResume:\n" + text
}

func parseProfile(raw string) (resumeProfile, error) {
	raw = strings.TrimSpace(raw)
	// Models wrap JSON in code fences; take the outermost object.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return resumeProfile{}, fmt.Errorf("no JSON object in response")
	}
	var p resumeProfile
	if err := json.Unmarshal([]byte(raw[start:end+1]), &p); err != nil {
		return resumeProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

func (s *Service) loadText(ctx context.Context, res Resume) (string, error) {
	rc, err := s.Store.Open(ctx, res.StorageKey)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", res.StorageKey, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", res.StorageKey, err)
	}
	return extract.Text(ctx, data, "", res.FileName)
}
