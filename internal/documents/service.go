package documents

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"portal-backend/internal/classify"
	"portal-backend/internal/extract"
	"portal-backend/internal/queue"
	"portal-backend/internal/shared/metrics"
	"portal-backend/internal/shared/storage/object"
	"portal-backend/internal/shared/telemetry"
	"portal-backend/internal/workflow"
)

// Service contains the document business logic: upload, classification and
// workflow evaluation. Enrichment runs off the request path, either on the
// queue or on an in-process goroutine.
type Service struct {
	Store           object.ObjectStore
	Repo            Repo
	Classifier      classify.Classifier
	Engine          workflow.Engine
	Queue           queue.Publisher
	ClassifyTimeout time.Duration
	Metrics         *metrics.Metrics
}

// Upload saves the file, records a Pending document and schedules
// enrichment. The response never waits for classification.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if fileName == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrValidation)
	}

	storageKey, _, _, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		StorageKey: storageKey,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	s.schedule(ctx, doc.ID)
	return doc, nil
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document id is required", ErrValidation)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns the user's documents newest-first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) schedule(ctx context.Context, documentID string) {
	if s.Queue != nil {
		err := s.Queue.Publish(ctx, queue.Job{Kind: queue.KindDocument, ID: documentID})
		if err == nil {
			return
		}
		telemetry.Warn("document.enqueue", map[string]any{
			"document_id": documentID,
			"error":       err.Error(),
		})
	}
	go s.Complete(context.Background(), documentID)
}

// Complete runs classification and workflow evaluation for one pending
// document. Classifier failure degrades the record instead of failing it:
// the department becomes Unknown and the workflow routes to manual review.
func (s *Service) Complete(ctx context.Context, documentID string) error {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("document.enrich", map[string]any{
				"document_id": documentID,
				"error":       fmt.Sprintf("panic: %v", r),
			})
		}
	}()
	startedAt := time.Now().UTC()

	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("document lookup id=%s: %w", documentID, err)
	}
	if doc.Status != StatusPending {
		return nil
	}

	text, err := s.loadText(ctx, doc)
	if err != nil {
		telemetry.Warn("document.extract", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		text = ""
	}

	enrichment := s.classifyAndEvaluate(ctx, doc, text)
	if err := s.Repo.ApplyEnrichment(ctx, doc.ID, enrichment); err != nil {
		return fmt.Errorf("apply enrichment id=%s: %w", doc.ID, err)
	}

	telemetry.Info("document.status", map[string]any{
		"document_id":       doc.ID,
		"user_id":           doc.UserID,
		"department":        enrichment.Department,
		"workflow_outcome":  enrichment.WorkflowOutcome,
		"status_transition": StatusPending + "->" + StatusClassified,
	})
	if s.Metrics != nil {
		s.Metrics.ObserveEnrichmentDuration("document", time.Since(startedAt))
	}
	return nil
}

func (s *Service) classifyAndEvaluate(ctx context.Context, doc Document, text string) Enrichment {
	timeout := s.ClassifyTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	classifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := s.Classifier.Classify(classifyCtx, text)
	if err != nil {
		telemetry.Warn("document.classify", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		if s.Metrics != nil {
			s.Metrics.ObserveClassification(string(workflow.DeptUnknown), "error")
		}
		fallback := s.Engine.Evaluate(workflow.DeptUnknown, nil, "")
		return Enrichment{
			Department:        string(workflow.DeptUnknown),
			WorkflowOutcome:   fallback.Outcome,
			WorkflowChecklist: fallback.Checklist,
		}
	}

	outcome := s.Engine.Evaluate(result.Department, result.Entities, result.Summary)
	if s.Metrics != nil {
		s.Metrics.ObserveClassification(string(result.Department), "ok")
	}
	return Enrichment{
		Department:        string(result.Department),
		Summary:           result.Summary,
		Entities:          result.Entities,
		WorkflowOutcome:   outcome.Outcome,
		WorkflowChecklist: outcome.Checklist,
	}
}

func (s *Service) loadText(ctx context.Context, doc Document) (string, error) {
	rc, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", doc.StorageKey, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", doc.StorageKey, err)
	}
	return extract.Text(ctx, data, "", doc.FileName)
}
