package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portal-backend/internal/llm"
	"portal-backend/internal/workflow"
)

// ErrClassification signals the collaborator could not classify a document.
var ErrClassification = errors.New("classification failed")

// Classification is the collaborator's view of a document.
type Classification struct {
	Department workflow.Department
	Summary    string
	Entities   map[string][]string
}

// Classifier derives department, summary and entities from document text.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// KeywordClassifier routes departments and extracts entities with
// deterministic rules and delegates the free-text summary to the LLM.
type KeywordClassifier struct {
	LLM llm.Client
}

// Classify never partially fails on the deterministic part; only an LLM
// summary failure is surfaced, wrapped in ErrClassification.
func (c *KeywordClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	if strings.TrimSpace(text) == "" {
		return Classification{}, fmt.Errorf("%w: empty document text", ErrClassification)
	}

	result := Classification{
		Department: DepartmentFromText(text),
		Entities:   ExtractEntities(text),
	}

	if c.LLM == nil {
		return Classification{}, fmt.Errorf("%w: no summarizer configured", ErrClassification)
	}
	summary, err := c.LLM.Complete(ctx, summaryPrompt(text))
	if err != nil {
		return Classification{}, fmt.Errorf("%w: summarize: %v", ErrClassification, err)
	}
	result.Summary = summary
	return result, nil
}

func summaryPrompt(text string) string {
	const maxChars = 2000
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return "Summarize this document:\n" + text
}

// DepartmentFromText routes a document to a department by keyword.
func DepartmentFromText(text string) workflow.Department {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "invoice", "payment", "amount", "finance"):
		return workflow.DeptFinance
	case containsAny(lower, "resignation", "joining", "salary", "employee", "onboarding"):
		return workflow.DeptHR
	case containsAny(lower, "complaint", "delay", "issue", "support"):
		return workflow.DeptCustomerSupport
	case containsAny(lower, "agreement", "contract", "clause", "legal"):
		return workflow.DeptLegal
	default:
		return workflow.DeptUnknown
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
