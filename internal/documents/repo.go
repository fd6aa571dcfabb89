package documents

import "context"

// Enrichment is the classification and workflow result applied to a
// pending document.
type Enrichment struct {
	Department        string
	Summary           string
	Entities          map[string][]string
	WorkflowOutcome   string
	WorkflowChecklist []string
}

// Repo abstracts document persistence.
type Repo interface {
	Create(ctx context.Context, d Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	// ListByUser returns the user's documents newest-first.
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	// ApplyEnrichment records the result and moves the document to Classified.
	ApplyEnrichment(ctx context.Context, id string, e Enrichment) error
}
