package indexer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// withTempFile creates dir/name, passes it to fn and removes it afterwards,
// whether fn succeeds, fails or panics.
func withTempFile(dir, name string, fn func(f *os.File) error) (err error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil && errors.Is(closeErr, os.ErrClosed) {
			closeErr = nil
		}
		removeErr := os.Remove(path)
		if removeErr != nil && errors.Is(removeErr, os.ErrNotExist) {
			removeErr = nil
		}
		if err == nil {
			err = errors.Join(closeErr, removeErr)
		}
	}()
	return fn(f)
}

// tempName maps a document id to a file name that cannot escape the temp dir.
func tempName(documentID string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, documentID)
	return name + ".pdf"
}
