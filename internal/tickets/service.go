package tickets

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"portal-backend/internal/classify"
	"portal-backend/internal/llm"
	"portal-backend/internal/shared/metrics"
	"portal-backend/internal/shared/telemetry"
)

// UsernameLookup resolves an actor id to the persisted username. Transition
// guards go through this rather than trusting anything from the request.
type UsernameLookup interface {
	UsernameByID(ctx context.Context, userID string) (string, error)
}

// Service contains the ticket business logic: creation with AI enrichment
// and the lifecycle state machine with per-transition authorization.
type Service struct {
	Repo             Repo
	Users            UsernameLookup
	LLM              llm.Client
	SummarizeTimeout time.Duration
	Metrics          *metrics.Metrics

	locks sync.Map // ticket id -> *sync.Mutex
}

// Create validates inputs, classifies the category and enriches the ticket
// with an AI summary and suggestion. Enrichment failure degrades to empty
// fields; it never fails creation.
func (s *Service) Create(ctx context.Context, ownerUserID, description string, ticketType Type, affectedUser string) (Ticket, error) {
	description = strings.TrimSpace(description)
	affectedUser = strings.TrimSpace(affectedUser)

	if ownerUserID == "" {
		return Ticket{}, fmt.Errorf("%w: owner user id is required", ErrValidation)
	}
	if description == "" {
		return Ticket{}, fmt.Errorf("%w: description is required", ErrValidation)
	}
	switch ticketType {
	case TypeSelf:
		if affectedUser != "" {
			return Ticket{}, fmt.Errorf("%w: affected user is only valid for ticket type %q", ErrValidation, TypeOther)
		}
	case TypeOther:
		if affectedUser == "" {
			return Ticket{}, fmt.Errorf("%w: affected user is required for ticket type %q", ErrValidation, TypeOther)
		}
	default:
		return Ticket{}, fmt.Errorf("%w: unknown ticket type %q", ErrValidation, ticketType)
	}

	now := time.Now().UTC()
	t := Ticket{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Description:  description,
		Category:     classify.TicketCategory(description),
		Type:         ticketType,
		AffectedUser: affectedUser,
		Status:       StatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	t.AISummary, t.AISuggestion = s.enrich(ctx, t)

	if err := s.Repo.Create(ctx, t); err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// Get returns a ticket by id.
func (s *Service) Get(ctx context.Context, ticketID string) (Ticket, error) {
	if ticketID == "" {
		return Ticket{}, fmt.Errorf("%w: ticket id is required", ErrValidation)
	}
	return s.Repo.GetByID(ctx, ticketID)
}

// List returns the user's tickets newest-first.
func (s *Service) List(ctx context.Context, userID string) ([]Ticket, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Transition applies a lifecycle action on behalf of an actor. Exactly one
// state change happens per successful call; guard and validation failures
// leave the ticket untouched. Concurrent calls on one ticket serialize on a
// per-ticket mutex, so the loser of a race observes the post-transition
// state and fails its table lookup against the new status.
func (s *Service) Transition(ctx context.Context, ticketID, actorID string, action Action, reason string) (Ticket, error) {
	reason = strings.TrimSpace(reason)
	if actorID == "" {
		return Ticket{}, fmt.Errorf("%w: actor user id is required", ErrValidation)
	}
	if action == ActionReopen || action == ActionEscalate {
		if reason == "" {
			s.observe(action, "validation_error")
			return Ticket{}, fmt.Errorf("%w: a non-empty reason is required to %s a ticket", ErrValidation, action)
		}
	}

	mu := s.lockFor(ticketID)
	mu.Lock()
	defer mu.Unlock()

	t, err := s.Repo.GetByID(ctx, ticketID)
	if err != nil {
		s.observe(action, "not_found")
		return Ticket{}, err
	}

	next, ok := Next(t.Status, action)
	if !ok {
		s.observe(action, "invalid_transition")
		return Ticket{}, fmt.Errorf("%w: cannot %s a ticket in status %s", ErrInvalidTransition, action, t.Status)
	}

	if err := s.authorize(ctx, t, actorID, action); err != nil {
		s.observe(action, "authorization_error")
		return Ticket{}, err
	}

	now := time.Now().UTC()
	applied, err := s.Repo.UpdateStatus(ctx, ticketID, t.Status, next, reason, now)
	if err != nil {
		s.observe(action, "error")
		return Ticket{}, err
	}
	if !applied {
		s.observe(action, "invalid_transition")
		return Ticket{}, fmt.Errorf("%w: ticket status changed concurrently", ErrInvalidTransition)
	}

	telemetry.Info("ticket.status", map[string]any{
		"ticket_id":         t.ID,
		"actor_id":          actorID,
		"action":            string(action),
		"status_transition": fmt.Sprintf("%s->%s", t.Status, next),
	})
	s.observe(action, "ok")

	t.Status = next
	t.UpdatedAt = now
	switch next {
	case StatusEscalated:
		t.EscalationReason = reason
	case StatusReopened:
		t.ReopenReason = reason
	}
	return t, nil
}

// authorize evaluates the per-transition guard against persisted identity.
func (s *Service) authorize(ctx context.Context, t Ticket, actorID string, action Action) error {
	switch action {
	case ActionResolve:
		// The affected user resolves. Self tickets and tickets without an
		// affected user fall back to anyone acting on their own behalf.
		if t.Type == TypeSelf || t.AffectedUser == "" {
			return nil
		}
		username, err := s.Users.UsernameByID(ctx, actorID)
		if err != nil {
			return fmt.Errorf("%w: only the affected user can resolve this ticket", ErrAuthorization)
		}
		if !strings.EqualFold(strings.TrimSpace(t.AffectedUser), strings.TrimSpace(username)) {
			return fmt.Errorf("%w: only the affected user can resolve this ticket", ErrAuthorization)
		}
		return nil
	case ActionReopen, ActionEscalate:
		if t.OwnerUserID != actorID {
			return fmt.Errorf("%w: only the ticket owner can %s this ticket", ErrAuthorization, action)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
}

func (s *Service) enrich(ctx context.Context, t Ticket) (summary, suggestion string) {
	if s.LLM == nil {
		return "", ""
	}
	timeout := s.SummarizeTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	enrichCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	summary, err := s.LLM.Complete(enrichCtx, summarizePrompt(t))
	if err != nil {
		telemetry.Warn("ticket.enrich", map[string]any{"ticket_id": t.ID, "step": "summary", "error": err.Error()})
		return "", ""
	}
	suggestion, err = s.LLM.Complete(enrichCtx, suggestionPrompt(t))
	if err != nil {
		telemetry.Warn("ticket.enrich", map[string]any{"ticket_id": t.ID, "step": "suggestion", "error": err.Error()})
		return summary, ""
	}
	return summary, suggestion
}

func summarizePrompt(t Ticket) string {
	desc := t.Description
	const maxChars = 2000
	if len(desc) > maxChars {
		desc = desc[:maxChars]
	}
	return "Summarize this IT ticket: " + desc
}

func suggestionPrompt(t Ticket) string {
	return fmt.Sprintf(
		"Category: %s\nIssue: %s\n\nProvide numbered step-by-step troubleshooting instructions for this issue, ending with when to escalate to the IT support team.",
		t.Category, t.Description,
	)
}

func (s *Service) lockFor(ticketID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(ticketID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Service) observe(action Action, result string) {
	if s.Metrics != nil {
		s.Metrics.ObserveTransition(string(action), result)
	}
}
