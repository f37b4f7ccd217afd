package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const tempFilePrefix = "codelab-tmp-"

// ErrPathOutsideRoot indicates a request tried to reach outside the store root.
var ErrPathOutsideRoot = errors.New("storage: path escapes store root")

// FilesystemStore writes artifacts beneath a root directory. Writes are
// atomic: content lands in a temp file in the destination directory and is
// renamed into place, so readers never observe partial files.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates a store rooted at dir. The directory is created
// lazily on first write.
func NewFilesystemStore(dir string) *FilesystemStore {
	return &FilesystemStore{root: filepath.Clean(dir)}
}

// Root returns the store's base directory.
func (s *FilesystemStore) Root() string { return s.root }

// EnsureDir creates the directory (and parents) beneath the root.
func (s *FilesystemStore) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

// WriteFile persists the request content atomically.
func (s *FilesystemStore) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("storage: write requires content reader")
	}
	target, err := s.resolve(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("storage: create parent for %s: %w", req.Path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, req.Content); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write %s: %w", req.Path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync %s: %w", req.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp for %s: %w", req.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("storage: chmod temp for %s: %w", req.Path, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("storage: rename into %s: %w", req.Path, err)
	}
	return nil
}

// ReadFile returns the content of a previously written artifact.
func (s *FilesystemStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(target)
}

// List walks the store beneath prefix and returns slash-separated relative
// file paths in lexical order.
func (s *FilesystemStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}

	var paths []string
	walkErr := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil && !os.IsNotExist(walkErr) {
		return nil, walkErr
	}
	return paths, nil
}

// Remove deletes a single artifact; missing files are not an error.
func (s *FilesystemStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveAll deletes an artifact subtree; an empty path clears the store root.
func (s *FilesystemStore) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	return os.RemoveAll(target)
}

func (s *FilesystemStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(strings.TrimSpace(path)))
	target := filepath.Join(s.root, cleaned)
	if target != s.root && !strings.HasPrefix(target, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideRoot, path)
	}
	return target, nil
}

var _ Store = (*FilesystemStore)(nil)
