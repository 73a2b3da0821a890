// Package output commits generated artifacts to disk. Content is always fully
// computed by the caller first; WriteFile then replaces the destination in one
// rename so readers never observe a truncated file.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteError reports an I/O failure while committing an output file.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteFile writes data to path via a temp file in the same directory.
// On any failure the temp file is removed and the destination is untouched.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return &WriteError{Path: path, Op: "create directory", Err: mkErr}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Op: "open", Err: err}
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, werr := tmp.Write(data); werr != nil {
		return &WriteError{Path: path, Op: "write", Err: werr}
	}
	if serr := tmp.Sync(); serr != nil {
		return &WriteError{Path: path, Op: "sync", Err: serr}
	}
	if cerr := tmp.Close(); cerr != nil {
		return &WriteError{Path: path, Op: "close", Err: cerr}
	}
	if cherr := os.Chmod(tmpPath, 0o644); cherr != nil {
		return &WriteError{Path: path, Op: "chmod", Err: cherr}
	}
	if rerr := os.Rename(tmpPath, path); rerr != nil {
		return &WriteError{Path: path, Op: "rename", Err: rerr}
	}

	return nil
}
