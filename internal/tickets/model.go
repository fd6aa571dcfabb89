package tickets

import "time"

// Type says who the ticket concerns: the reporter or somebody else.
type Type string

const (
	TypeSelf  Type = "self"
	TypeOther Type = "other"
)

// Ticket is a tracked IT support request.
type Ticket struct {
	ID          string
	OwnerUserID string
	Description string
	Category    string
	Type        Type
	// AffectedUser is set iff Type == TypeOther.
	AffectedUser     string
	Status           Status
	AISummary        string
	AISuggestion     string
	EscalationReason string
	ReopenReason     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
