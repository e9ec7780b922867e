package document

import (
	"mime"
	"path"
	"strings"
)

// Content types of generated documents.
const (
	ContentTypePDF   = "application/pdf"
	ContentTypeXHTML = "application/xhtml+xml"
)

// ContentTypeOf returns the content type of a stored document by its file
// name extension. Unknown extensions map to "application/octet-stream".
func ContentTypeOf(filename string) string {
	switch ext := strings.ToLower(path.Ext(filename)); ext {
	case ".pdf":
		return ContentTypePDF
	case ".xhtml":
		return ContentTypeXHTML
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}

// File is the terminal product of a generation call.
type File struct {
	Name        string
	Extension   string
	ContentType string
	Content     []byte
}

// Filename returns Name with its extension, e.g. "PL-Katalog_1.0.pdf".
func (f File) Filename() string {
	if f.Extension == "" {
		return f.Name
	}
	return f.Name + "." + f.Extension
}

// Size returns the content length in bytes.
func (f File) Size() int64 {
	return int64(len(f.Content))
}
