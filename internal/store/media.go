package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveMedia copies the file at srcPath into the media directory and
// returns the opaque reference later attached to a wish. The caller never
// sees the storage layout, only the ref.
func (s *Store) SaveMedia(srcPath string) (string, error) {
	if s.mediaDir == "" {
		return "", fmt.Errorf("no media directory configured")
	}
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to open media file: %w", err)
	}
	defer src.Close()

	ref := uuid.NewString() + filepath.Ext(srcPath)
	dstPath := filepath.Join(s.mediaDir, ref)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create media copy: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to copy media file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to finish media copy: %w", err)
	}

	return ref, nil
}

// MediaPath resolves a media ref back to a readable path.
func (s *Store) MediaPath(ref string) (string, error) {
	if s.mediaDir == "" || ref == "" {
		return "", fmt.Errorf("no media attached")
	}
	// Refs are store-generated; reject anything that escapes the dir.
	if filepath.Base(ref) != ref {
		return "", fmt.Errorf("invalid media ref %q", ref)
	}
	p := filepath.Join(s.mediaDir, ref)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("media %q not found: %w", ref, err)
	}
	return p, nil
}
