package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"portal-backend/internal/workflow"
)

// PGRepo stores documents in Postgres. Entities and checklists live in
// JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

const documentColumns = `id, user_id, filename, storage_key, department, summary, entities, workflow_outcome, workflow_checklist, status, created_at`

func (r *PGRepo) Create(ctx context.Context, d Document) error {
	entities, err := marshalEntities(d.Entities)
	if err != nil {
		return fmt.Errorf("encode entities: %w", err)
	}
	checklist, err := marshalChecklist(d.WorkflowChecklist)
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}
	const query = `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.DB.ExecContext(ctx, query,
		d.ID, d.UserID, d.FileName, d.StorageKey,
		string(d.Department), d.Summary, entities,
		d.WorkflowOutcome, checklist, d.Status, d.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	const query = `
		SELECT ` + documentColumns + `
		FROM documents WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PGRepo) ApplyEnrichment(ctx context.Context, id string, e Enrichment) error {
	entities, err := marshalEntities(e.Entities)
	if err != nil {
		return fmt.Errorf("encode entities: %w", err)
	}
	checklist, err := marshalChecklist(e.WorkflowChecklist)
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}
	const query = `
		UPDATE documents
		SET department = $1, summary = $2, entities = $3,
		    workflow_outcome = $4, workflow_checklist = $5, status = $6
		WHERE id = $7`
	res, err := r.DB.ExecContext(ctx, query,
		e.Department, e.Summary, entities,
		e.WorkflowOutcome, checklist, StatusClassified, id,
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

func scanDocument(row rowScanner) (Document, error) {
	var (
		d          Document
		department sql.NullString
		summary    sql.NullString
		outcome    sql.NullString
		entities   []byte
		checklist  []byte
	)
	err := row.Scan(
		&d.ID, &d.UserID, &d.FileName, &d.StorageKey,
		&department, &summary, &entities,
		&outcome, &checklist, &d.Status, &d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	d.Department = workflow.Department(department.String)
	d.Summary = summary.String
	d.WorkflowOutcome = outcome.String
	if len(entities) > 0 {
		if err := json.Unmarshal(entities, &d.Entities); err != nil {
			return Document{}, fmt.Errorf("decode entities: %w", err)
		}
	}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &d.WorkflowChecklist); err != nil {
			return Document{}, fmt.Errorf("decode checklist: %w", err)
		}
	}
	return d, nil
}

// The entities and checklist columns are NOT NULL, so empty values are
// stored as empty JSON rather than SQL NULL.
func marshalEntities(m map[string][]string) ([]byte, error) {
	if len(m) == 0 {
		return []byte(`{}`), nil
	}
	return json.Marshal(m)
}

func marshalChecklist(items []string) ([]byte, error) {
	if len(items) == 0 {
		return []byte(`[]`), nil
	}
	return json.Marshal(items)
}
