package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextPlain(t *testing.T) {
	got, err := Text(context.Background(), []byte("hello invoice"), "text/plain", "note.txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "hello invoice" {
		t.Fatalf("got %q", got)
	}
}

func TestTextDocxByExtension(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?><document><body><p><r><t>First line</t></r></p><p><r><t>Second line</t></r></p></body></document>`)

	got, err := Text(context.Background(), data, "", "report.docx")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(got, "First line") || !strings.Contains(got, "Second line") {
		t.Fatalf("got %q", got)
	}
}

func TestTextDocxFromZipMime(t *testing.T) {
	data := buildDocx(t, `<document><body><p><r><t>zip sniffed</t></r></p></body></document>`)

	got, err := Text(context.Background(), data, "application/zip", "upload.bin")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(got, "zip sniffed") {
		t.Fatalf("got %q", got)
	}
}

func TestTextRejectsBinaryGarbage(t *testing.T) {
	if _, err := Text(context.Background(), []byte{0xff, 0xfe, 0x00, 0x81}, "application/octet-stream", "blob.bin"); err == nil {
		t.Fatal("expected error for non-utf8 binary data")
	}
}

func TestTextEmptyDocumentIsErrNoText(t *testing.T) {
	_, err := Text(context.Background(), []byte("   \n\t "), "text/plain", "empty.txt")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("err = %v, want ErrNoText", err)
	}
}

func TestTextHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, []byte("text"), "text/plain", "f.txt"); err == nil {
		t.Fatal("expected context error")
	}
}
