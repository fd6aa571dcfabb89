package tickets

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo backed by the given database handle.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

// Create inserts a new ticket.
func (r *PGRepo) Create(ctx context.Context, t Ticket) error {
	const query = `
INSERT INTO tickets (
    id,
    owner_user_id,
    description,
    category,
    ticket_type,
    affected_user,
    status,
    ai_summary,
    ai_suggestion,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var affected sql.NullString
	if t.AffectedUser != "" {
		affected = sql.NullString{String: t.AffectedUser, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		t.ID,
		t.OwnerUserID,
		t.Description,
		t.Category,
		string(t.Type),
		affected,
		string(t.Status),
		t.AISummary,
		t.AISuggestion,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

const ticketColumns = `
id, owner_user_id, description, category, ticket_type, affected_user, status, ai_summary, ai_suggestion, escalation_reason, reopen_reason, created_at, updated_at`

// GetByID fetches a ticket by id. Not scoped by owner; transition guards
// decide who may act on it.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Ticket, error) {
	const query = `
SELECT` + ticketColumns + `
FROM tickets
WHERE id = $1
LIMIT 1`
	t, err := scanTicket(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ticket{}, ErrNotFound
		}
		return Ticket{}, err
	}
	return t, nil
}

// ListByUser lists a user's tickets newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Ticket, error) {
	const query = `
SELECT` + ticketColumns + `
FROM tickets
WHERE owner_user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatus performs the compare-and-swap transition write. Zero rows
// affected with an existing ticket means the status moved concurrently.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from, to Status, reason string, at time.Time) (bool, error) {
	var (
		res sql.Result
		err error
	)
	switch to {
	case StatusEscalated:
		const query = `UPDATE tickets SET status = $1, escalation_reason = $2, updated_at = $3 WHERE id = $4 AND status = $5`
		res, err = r.DB.ExecContext(ctx, query, string(to), reason, at, id, string(from))
	case StatusReopened:
		const query = `UPDATE tickets SET status = $1, reopen_reason = $2, updated_at = $3 WHERE id = $4 AND status = $5`
		res, err = r.DB.ExecContext(ctx, query, string(to), reason, at, id, string(from))
	default:
		const query = `UPDATE tickets SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
		res, err = r.DB.ExecContext(ctx, query, string(to), at, id, string(from))
	}
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}

	// Distinguish a lost CAS race from a missing ticket.
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (Ticket, error) {
	var (
		t          Ticket
		ticketType string
		status     string
		affected   sql.NullString
		escReason  sql.NullString
		reopReason sql.NullString
	)
	err := row.Scan(
		&t.ID,
		&t.OwnerUserID,
		&t.Description,
		&t.Category,
		&ticketType,
		&affected,
		&status,
		&t.AISummary,
		&t.AISuggestion,
		&escReason,
		&reopReason,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return Ticket{}, err
	}
	t.Type = Type(ticketType)
	t.Status = Status(status)
	if affected.Valid {
		t.AffectedUser = affected.String
	}
	if escReason.Valid {
		t.EscalationReason = escReason.String
	}
	if reopReason.Valid {
		t.ReopenReason = reopReason.String
	}
	return t, nil
}

var _ Repo = (*PGRepo)(nil)
