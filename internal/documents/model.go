package documents

import (
	"time"

	"portal-backend/internal/workflow"
)

// Document statuses. A document is Pending from upload until classification
// and workflow evaluation finish.
const (
	StatusPending    = "Pending"
	StatusClassified = "Classified"
)

// Document is an uploaded file plus its classification and workflow outcome.
type Document struct {
	ID                string              `json:"id"`
	UserID            string              `json:"userId"`
	FileName          string              `json:"fileName"`
	StorageKey        string              `json:"-"`
	Department        workflow.Department `json:"department,omitempty"`
	Summary           string              `json:"summary,omitempty"`
	Entities          map[string][]string `json:"entities,omitempty"`
	WorkflowOutcome   string              `json:"workflowOutcome,omitempty"`
	WorkflowChecklist []string            `json:"workflowChecklist,omitempty"`
	Status            string              `json:"status"`
	CreatedAt         time.Time           `json:"createdAt"`
}
