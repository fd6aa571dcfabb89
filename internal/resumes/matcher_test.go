package resumes

import (
	"testing"
	"time"
)

func resumeWith(id string, years float64, skills []string, createdAt time.Time) Resume {
	return Resume{
		ID:              id,
		UserID:          "u1",
		FileName:        id + ".pdf",
		ExperienceYears: years,
		TechnicalSkills: skills,
		Status:          StatusAnalyzed,
		CreatedAt:       createdAt,
	}
}

func TestRankFiltersByExperience(t *testing.T) {
	now := time.Now().UTC()
	all := []Resume{
		resumeWith("junior", 1, []string{"Go", "SQL"}, now),
		resumeWith("senior", 6, []string{"Go", "SQL"}, now),
	}

	out := Rank(all, "backend developer", 3)
	if len(out) != 1 || out[0].ID != "senior" {
		t.Fatalf("out = %v, want only senior", ids(out))
	}
	for _, r := range out {
		if r.ExperienceYears < 3 {
			t.Fatalf("resume %s below minimum experience", r.ID)
		}
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	now := time.Now().UTC()
	all := []Resume{
		resumeWith("weak", 5, []string{"Photoshop"}, now),
		resumeWith("strong", 5, []string{"Go", "Java", "Python", "Node", "SQL", "Postgres", "REST", "API"}, now),
		resumeWith("middle", 5, []string{"Go", "SQL"}, now),
	}

	out := Rank(all, "backend developer", 0)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].ID != "strong" {
		t.Fatalf("first = %s, want strong (order %v)", out[0].ID, ids(out))
	}
	if out[2].ID != "weak" {
		t.Fatalf("last = %s, want weak (order %v)", out[2].ID, ids(out))
	}
}

func TestRankTieBreaksByMostRecent(t *testing.T) {
	base := time.Now().UTC()
	older := resumeWith("older", 4, []string{"Go", "SQL"}, base.Add(-time.Hour))
	newer := resumeWith("newer", 4, []string{"Go", "SQL"}, base)

	out := Rank([]Resume{older, newer}, "backend developer", 0)
	if len(out) != 2 || out[0].ID != "newer" {
		t.Fatalf("order = %v, want newer first", ids(out))
	}
}

func TestRankPrefersStoredMatch(t *testing.T) {
	now := time.Now().UTC()
	stored := resumeWith("stored", 4, []string{"Photoshop"}, now)
	stored.JobMatches = []JobMatch{{Role: "backend developer", Match: 95, Fit: FitHigh}}
	keyword := resumeWith("keyword", 4, []string{"Go", "SQL"}, now)

	out := Rank([]Resume{keyword, stored}, "backend developer", 0)
	if out[0].ID != "stored" {
		t.Fatalf("order = %v, want stored match first", ids(out))
	}
}

func TestRankEmptyResultIsValid(t *testing.T) {
	out := Rank(nil, "backend developer", 10)
	if len(out) != 0 {
		t.Fatalf("out = %v, want empty", out)
	}
}

func TestScoreUnknownRoleFallsBackToRoleWords(t *testing.T) {
	r := resumeWith("r", 3, []string{"Rust", "Embedded"}, time.Now())
	if got := Score(r, "embedded rust"); got == 0 {
		t.Fatalf("Score = 0, want overlap on role words")
	}
}

func TestFitForScore(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{95, FitHigh}, {80, FitHigh}, {79, FitMedium}, {60, FitMedium}, {59, FitLow}, {0, FitLow},
	}
	for _, tc := range cases {
		if got := FitForScore(tc.score); got != tc.want {
			t.Errorf("FitForScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func ids(rs []Resume) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
