// Package query answers natural-language questions over a user's
// documents and tickets.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portal-backend/internal/documents"
	"portal-backend/internal/llm"
	"portal-backend/internal/tickets"
)

// Scopes restrict which records feed the answer.
const (
	ScopeDocuments = "documents"
	ScopeTickets   = "tickets"
	ScopeAll       = "all"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("query service unavailable")
)

// Service builds a corpus from the user's records and asks the model.
type Service struct {
	Documents documents.Repo
	Tickets   tickets.Repo
	LLM       llm.Client
	Timeout   time.Duration
}

// Answer responds to a question using only the user's own records in the
// given scope. An empty scope means all.
func (s *Service) Answer(ctx context.Context, userID, question, scope string) (string, error) {
	question = strings.TrimSpace(question)
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if question == "" {
		return "", fmt.Errorf("%w: question is required", ErrValidation)
	}
	switch scope {
	case "", ScopeAll, ScopeDocuments, ScopeTickets:
	default:
		return "", fmt.Errorf("%w: unknown scope %q", ErrValidation, scope)
	}
	if s.LLM == nil {
		return "", ErrUnavailable
	}

	corpus, err := s.buildCorpus(ctx, userID, scope)
	if err != nil {
		return "", err
	}
	if corpus == "" {
		return "No documents or tickets found to answer from.", nil
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	answerCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	answer, err := s.LLM.Complete(answerCtx, answerPrompt(corpus, question))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(answer), nil
}

func (s *Service) buildCorpus(ctx context.Context, userID, scope string) (string, error) {
	var b strings.Builder

	if scope == "" || scope == ScopeAll || scope == ScopeDocuments {
		docs, err := s.Documents.ListByUser(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("list documents: %w", err)
		}
		for _, d := range docs {
			if d.Summary == "" {
				continue
			}
			fmt.Fprintf(&b, "Document %q (%s): %s\n", d.FileName, d.Department, d.Summary)
		}
	}

	if scope == "" || scope == ScopeAll || scope == ScopeTickets {
		ts, err := s.Tickets.ListByUser(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("list tickets: %w", err)
		}
		for _, t := range ts {
			fmt.Fprintf(&b, "Ticket %s [%s, %s]: %s\n", t.ID, t.Category, t.Status, t.Description)
		}
	}

	const maxChars = 8000
	corpus := b.String()
	if len(corpus) > maxChars {
		corpus = corpus[:maxChars]
	}
	return corpus, nil
}

func answerPrompt(corpus, question string) string {
	return "Answer the question using only the context below. If the context does not contain the answer, say so.\n\nContext:\n" +
		corpus + "\nQuestion: " + question
}
