package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo stores resumes in Postgres. Skills and job matches live in JSONB
// columns.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

const resumeColumns = `id, user_id, filename, storage_key, candidate_name, experience_years, technical_skills, education, job_matches, status, created_at`

func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	skills, err := marshalJSONList(len(res.TechnicalSkills), res.TechnicalSkills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	matches, err := marshalJSONList(len(res.JobMatches), res.JobMatches)
	if err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}
	const query = `
		INSERT INTO resumes (` + resumeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.DB.ExecContext(ctx, query,
		res.ID, res.UserID, res.FileName, res.StorageKey,
		res.CandidateName, res.ExperienceYears, skills,
		res.Education, matches, res.Status, res.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return scanResume(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
		SELECT ` + resumeColumns + `
		FROM resumes WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) ApplyProfile(ctx context.Context, id string, p Profile) error {
	skills, err := marshalJSONList(len(p.TechnicalSkills), p.TechnicalSkills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	matches, err := marshalJSONList(len(p.JobMatches), p.JobMatches)
	if err != nil {
		return fmt.Errorf("encode matches: %w", err)
	}
	const query = `
		UPDATE resumes
		SET candidate_name = $1, experience_years = $2, technical_skills = $3,
		    education = $4, job_matches = $5, status = $6
		WHERE id = $7`
	res, err := r.DB.ExecContext(ctx, query,
		p.CandidateName, p.ExperienceYears, skills,
		p.Education, matches, StatusAnalyzed, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		res       Resume
		name      sql.NullString
		education sql.NullString
		years     sql.NullFloat64
		skills    []byte
		matches   []byte
	)
	err := row.Scan(
		&res.ID, &res.UserID, &res.FileName, &res.StorageKey,
		&name, &years, &skills,
		&education, &matches, &res.Status, &res.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	if err != nil {
		return Resume{}, err
	}
	res.CandidateName = name.String
	res.Education = education.String
	res.ExperienceYears = years.Float64
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &res.TechnicalSkills); err != nil {
			return Resume{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	if len(matches) > 0 {
		if err := json.Unmarshal(matches, &res.JobMatches); err != nil {
			return Resume{}, fmt.Errorf("decode matches: %w", err)
		}
	}
	return res, nil
}

// The skills and matches columns are NOT NULL, so empty lists are stored
// as empty JSON arrays rather than SQL NULL.
func marshalJSONList(n int, v any) ([]byte, error) {
	if n == 0 {
		return []byte(`[]`), nil
	}
	return json.Marshal(v)
}
