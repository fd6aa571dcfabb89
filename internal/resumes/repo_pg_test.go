package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

// A fresh upload has no profile yet; the insert must still satisfy the
// NOT NULL columns by writing empty strings and empty JSON arrays.
func TestPGRepoCreatePendingWritesZeroValues(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs("r1", "u1", "cv.pdf", "key-1",
			"", float64(0), []byte(`[]`), "", []byte(`[]`), StatusPending, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), Resume{
		ID:         "r1",
		UserID:     "u1",
		FileName:   "cv.pdf",
		StorageKey: "key-1",
		Status:     StatusPending,
		CreatedAt:  now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoApplyProfile(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE resumes").
		WithArgs("Dana Feld", 4.5,
			[]byte(`["go","sql"]`), "BSc Computer Science",
			[]byte(`[{"role":"Backend Developer","match":80,"fit":"High"}]`),
			StatusAnalyzed, "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplyProfile(context.Background(), "r1", Profile{
		CandidateName:   "Dana Feld",
		ExperienceYears: 4.5,
		TechnicalSkills: []string{"go", "sql"},
		Education:       "BSc Computer Science",
		JobMatches:      []JobMatch{{Role: "Backend Developer", Match: 80, Fit: FitHigh}},
	})
	if err != nil {
		t.Fatalf("ApplyProfile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

// Analysis failures complete the resume with an empty profile; the update
// still writes concrete values for every NOT NULL column.
func TestPGRepoApplyProfileEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE resumes").
		WithArgs("", float64(0), []byte(`[]`), "", []byte(`[]`), StatusAnalyzed, "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ApplyProfile(context.Background(), "r1", Profile{}); err != nil {
		t.Fatalf("ApplyProfile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoApplyProfileMissingResume(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE resumes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ApplyProfile(context.Background(), "missing", Profile{CandidateName: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "filename", "storage_key", "candidate_name",
		"experience_years", "technical_skills", "education", "job_matches",
		"status", "created_at",
	}).AddRow("r1", "u1", "cv.pdf", "key-1", "Dana Feld", 4.5,
		[]byte(`["go","sql"]`), "BSc Computer Science",
		[]byte(`[{"role":"Backend Developer","match":80,"fit":"High"}]`),
		StatusAnalyzed, now)
	mock.ExpectQuery("SELECT").WithArgs("r1").WillReturnRows(rows)

	res, err := repo.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if res.ExperienceYears != 4.5 {
		t.Fatalf("ExperienceYears = %v, want 4.5", res.ExperienceYears)
	}
	if len(res.TechnicalSkills) != 2 || res.TechnicalSkills[0] != "go" {
		t.Fatalf("TechnicalSkills = %v", res.TechnicalSkills)
	}
	if len(res.JobMatches) != 1 || res.JobMatches[0].Fit != FitHigh {
		t.Fatalf("JobMatches = %v", res.JobMatches)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
