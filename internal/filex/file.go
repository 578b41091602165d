// Package filex contains small filesystem helpers.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrFileTooLarge is returned when a file exceeds the caller-supplied limit.
var ErrFileTooLarge = errors.New("file too large")

// ReadLimited reads the file at path, refusing files larger than limit bytes.
// Used for image attachments so a mistyped path to a huge file does not end
// up buffered into a multipart request body.
func ReadLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%s is %d bytes: %w", path, info.Size(), ErrFileTooLarge)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// BaseName returns the final element of path, used as the multipart filename.
func BaseName(path string) string {
	return filepath.Base(path)
}
