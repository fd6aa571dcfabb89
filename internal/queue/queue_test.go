package queue

import "testing"

func TestJobRoundTrip(t *testing.T) {
	job := Job{Kind: KindDocument, ID: "doc-1"}
	data, err := job.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := DecodeJob(data)
	if err != nil {
		t.Fatalf("DecodeJob: %v", err)
	}
	if decoded != job {
		t.Fatalf("decoded = %+v, want %+v", decoded, job)
	}
}

func TestDecodeJobRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "???"},
		{"missing id", `{"kind":"document"}`},
		{"unknown kind", `{"kind":"video","id":"v1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeJob([]byte(tc.data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
