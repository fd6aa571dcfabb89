// Package queue carries enrichment jobs from the API process to workers.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

// Job kinds understood by the worker.
const (
	KindDocument = "document"
	KindResume   = "resume"
)

// Job identifies one record awaiting enrichment.
type Job struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// Encode serializes a job for the wire.
func (j Job) Encode() ([]byte, error) {
	return json.Marshal(j)
}

// DecodeJob parses a wire message back into a Job.
func DecodeJob(data []byte) (Job, error) {
	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	if j.ID == "" {
		return Job{}, fmt.Errorf("decode job: missing id")
	}
	switch j.Kind {
	case KindDocument, KindResume:
		return j, nil
	default:
		return Job{}, fmt.Errorf("decode job: unknown kind %q", j.Kind)
	}
}

// Publisher hands jobs to the queue. Services fall back to in-process
// goroutines when no publisher is configured.
type Publisher interface {
	Publish(ctx context.Context, job Job) error
}
