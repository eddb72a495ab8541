package pdftext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pdfchat/internal/domain"
)

func TestExtractor_Extract_Errors(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "note.pdf")
	if err := os.WriteFile(notPDF, []byte("just some plain text, no header"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	empty := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.pdf")},
		{name: "not a pdf", path: notPDF},
		{name: "empty file", path: empty},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := e.Extract(context.Background(), tt.path)
			if !errors.Is(err, domain.ErrDecode) {
				t.Errorf("Extract() error = %v, want ErrDecode", err)
			}
			if text != "" {
				t.Errorf("Extract() text = %q, want empty", text)
			}
		})
	}
}

func TestExtractor_Extract_TextLayer(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract(context.Background(), filepath.Join("testdata", "two_pages.pdf"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := "Refund policy: refunds are issued within 30 days.\nShipping takes five business days."
	if text != want {
		t.Errorf("Extract() text = %q, want %q", text, want)
	}
}

func TestExtractor_Extract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor().Extract(ctx, filepath.Join("testdata", "two_pages.pdf"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "valid text untouched", in: "naïve café", want: "naïve café"},
		{name: "surrounding whitespace trimmed", in: "\n  body \n", want: "body"},
		{name: "invalid bytes dropped", in: "ab\xffcd\xc3", want: "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanText(tt.in)
			if got != tt.want {
				t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
