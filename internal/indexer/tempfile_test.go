package indexer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWithTempFile_RemovesFile(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(f *os.File) error
		wantErr bool
	}{
		{
			name: "success",
			fn: func(f *os.File) error {
				_, err := f.WriteString("data")
				return err
			},
		},
		{
			name: "failure",
			fn: func(f *os.File) error {
				return errors.New("boom")
			},
			wantErr: true,
		},
		{
			name: "closed by callback",
			fn: func(f *os.File) error {
				return f.Close()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			var seenPath string
			err := withTempFile(dir, "doc.pdf", func(f *os.File) error {
				seenPath = f.Name()
				return tt.fn(f)
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("withTempFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if seenPath != filepath.Join(dir, "doc.pdf") {
				t.Errorf("temp path = %q, want %q", seenPath, filepath.Join(dir, "doc.pdf"))
			}
			if _, err := os.Stat(seenPath); !os.IsNotExist(err) {
				t.Errorf("temp file still exists after withTempFile()")
			}
		})
	}
}

func TestWithTempFile_RemovesFileOnPanic(t *testing.T) {
	dir := t.TempDir()
	func() {
		defer func() { _ = recover() }()
		_ = withTempFile(dir, "doc.pdf", func(f *os.File) error {
			panic("decoder exploded")
		})
	}()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir has %d entries after panic, want 0", len(entries))
	}
}

func TestWithTempFile_MissingDir(t *testing.T) {
	err := withTempFile(filepath.Join(t.TempDir(), "missing"), "doc.pdf", func(f *os.File) error {
		t.Error("callback should not run")
		return nil
	})
	if err == nil {
		t.Error("withTempFile() expected error for missing directory")
	}
}

func TestTempName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"1AbCdEf", "1AbCdEf.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd.pdf"},
		{`a\b`, "a_b.pdf"},
	}
	for _, tt := range tests {
		if got := tempName(tt.id); got != tt.want {
			t.Errorf("tempName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
