package workerproc

import (
	"context"
	"errors"
	"testing"

	"portal-backend/internal/queue"
)

type recordingCompleter struct {
	ids []string
	err error
}

func (r *recordingCompleter) Complete(_ context.Context, id string) error {
	r.ids = append(r.ids, id)
	return r.err
}

func TestProcessDispatchesByKind(t *testing.T) {
	docs := &recordingCompleter{}
	res := &recordingCompleter{}
	p := &Processor{Documents: docs, Resumes: res}

	if err := p.Process(context.Background(), queue.Job{Kind: queue.KindDocument, ID: "d1"}); err != nil {
		t.Fatalf("document job: %v", err)
	}
	if err := p.Process(context.Background(), queue.Job{Kind: queue.KindResume, ID: "r1"}); err != nil {
		t.Fatalf("resume job: %v", err)
	}

	if len(docs.ids) != 1 || docs.ids[0] != "d1" {
		t.Fatalf("document completions = %v", docs.ids)
	}
	if len(res.ids) != 1 || res.ids[0] != "r1" {
		t.Fatalf("resume completions = %v", res.ids)
	}
}

func TestProcessUnknownKind(t *testing.T) {
	p := &Processor{Documents: &recordingCompleter{}, Resumes: &recordingCompleter{}}
	if err := p.Process(context.Background(), queue.Job{Kind: "video", ID: "v1"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestProcessPropagatesServiceError(t *testing.T) {
	wantErr := errors.New("lookup failed")
	p := &Processor{Documents: &recordingCompleter{err: wantErr}}

	if err := p.Process(context.Background(), queue.Job{Kind: queue.KindDocument, ID: "d1"}); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
