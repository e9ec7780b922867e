package artifact

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/tailoring/pkg/document"
)

// Storage persists generated documents.
type Storage interface {
	Save(ctx context.Context, key string, f *document.File) (*Object, error)
	Open(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) bool
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Object describes a stored artifact.
type Object struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	URL         string `json:"url,omitempty"`
}

// Key builds the storage key "<tenant>/<version>/<filename>" of a document.
// Every segment is sanitised to a single path element.
func Key(tenantID, version string, f *document.File) (string, error) {
	if f == nil {
		return "", ErrNilFile
	}
	return KeyOf(tenantID, version, f.Filename())
}

// KeyOf builds the storage key of a stored file from its segments, e.g. as
// taken from a download URL.
func KeyOf(tenantID, version, filename string) (string, error) {
	segments := []string{tenantID, version, filename}
	for i, s := range segments {
		s = SanitizeSegment(s)
		if s == "" {
			return "", fmt.Errorf("%w: empty key segment", ErrInvalidPath)
		}
		segments[i] = s
	}
	return path.Join(segments...), nil
}

// SanitizeSegment reduces s to a single safe path element. It returns ""
// for names that cannot be used.
func SanitizeSegment(s string) string {
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.ReplaceAll(s, "\x00", "")
	s = filepath.Base(strings.TrimSpace(s))
	if s == "." || s == ".." || s == "/" {
		return ""
	}
	return s
}

// cleanKey normalises a storage key and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return key, nil
}
