// Package workerproc dispatches queued enrichment jobs to the owning
// service.
package workerproc

import (
	"context"
	"fmt"

	"portal-backend/internal/queue"
	"portal-backend/internal/shared/telemetry"
)

// DocumentCompleter finishes pending document enrichment.
type DocumentCompleter interface {
	Complete(ctx context.Context, documentID string) error
}

// ResumeCompleter finishes pending resume analysis.
type ResumeCompleter interface {
	Complete(ctx context.Context, resumeID string) error
}

// Processor routes a job to the service that owns its kind.
type Processor struct {
	Documents DocumentCompleter
	Resumes   ResumeCompleter
}

// Process handles one job. Unknown kinds are an error so the queue layer
// logs them.
func (p *Processor) Process(ctx context.Context, job queue.Job) error {
	telemetry.Info("worker.job", map[string]any{"kind": job.Kind, "id": job.ID})

	switch job.Kind {
	case queue.KindDocument:
		if p.Documents == nil {
			return fmt.Errorf("no document service configured")
		}
		return p.Documents.Complete(ctx, job.ID)
	case queue.KindResume:
		if p.Resumes == nil {
			return fmt.Errorf("no resume service configured")
		}
		return p.Resumes.Complete(ctx, job.ID)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}
