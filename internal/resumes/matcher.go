package resumes

import (
	"sort"
	"strings"
)

// roleSkills maps a normalized role name to the skills that signal a fit.
// Scores come from keyword overlap against the resume's technical skills
// when no stored match exists for the role.
var roleSkills = map[string][]string{
	"frontend developer":  {"javascript", "typescript", "react", "angular", "vue", "html", "css"},
	"backend developer":   {"go", "java", "python", "node", "sql", "postgres", "rest", "api"},
	"fullstack developer": {"javascript", "react", "node", "go", "java", "sql", "html", "css"},
	"data engineer":       {"python", "sql", "spark", "airflow", "etl", "kafka", "postgres"},
	"data scientist":      {"python", "pandas", "numpy", "tensorflow", "pytorch", "sql", "statistics"},
	"devops engineer":     {"docker", "kubernetes", "terraform", "aws", "ci/cd", "linux", "ansible"},
	"qa engineer":         {"selenium", "cypress", "testing", "automation", "junit", "pytest"},
}

// Score computes a 0-100 match strength between a resume and a job role. A
// stored match for the role wins over recomputation; otherwise the score is
// the overlap between the role's expected skills and the resume's skills.
func Score(r Resume, jobRole string) int {
	role := strings.ToLower(strings.TrimSpace(jobRole))
	for _, m := range r.JobMatches {
		if strings.EqualFold(strings.TrimSpace(m.Role), role) {
			return clampScore(m.Match)
		}
	}
	return keywordScore(r.TechnicalSkills, role)
}

func keywordScore(skills []string, role string) int {
	expected, ok := roleSkills[role]
	if !ok {
		// Unknown role: fall back to matching role words against skills.
		expected = strings.Fields(role)
	}
	if len(expected) == 0 || len(skills) == 0 {
		return 0
	}

	normalized := make(map[string]bool, len(skills))
	for _, s := range skills {
		normalized[strings.ToLower(strings.TrimSpace(s))] = true
	}
	hits := 0
	for _, want := range expected {
		if normalized[want] {
			hits++
			continue
		}
		for skill := range normalized {
			if strings.Contains(skill, want) {
				hits++
				break
			}
		}
	}
	return clampScore(hits * 100 / len(expected))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Rank filters resumes to experience_years >= minExperience and orders them
// by descending score for the role, ties broken by most recent first.
func Rank(all []Resume, jobRole string, minExperience float64) []Resume {
	type scored struct {
		resume Resume
		score  int
	}
	candidates := make([]scored, 0, len(all))
	for _, r := range all {
		if r.ExperienceYears < minExperience {
			continue
		}
		candidates = append(candidates, scored{resume: r, score: Score(r, jobRole)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].resume.CreatedAt.After(candidates[j].resume.CreatedAt)
	})
	out := make([]Resume, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.resume)
	}
	return out
}
