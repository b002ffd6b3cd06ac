// Package attachment converts attached files into text fragments that are
// appended to a task description before it is sent to the AI.
package attachment

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// Separator introduces the attachment section of a description.
const Separator = "\n\n--- ARCHIVOS ADJUNTOS ---\n"

// File is an attachment as received from the UI or read from disk.
type File struct {
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"contentType,omitempty"`
	Content     string `json:"content"`
}

// Convert returns the text representation of f: the literal content for
// text and JSON files, a placeholder naming the file otherwise.
func Convert(f File) string {
	contentType := f.MediaType()

	switch {
	case strings.HasPrefix(contentType, "text/"), contentType == "application/json":
		return f.Content
	case contentType == "application/pdf":
		return fmt.Sprintf("[PDF adjunto: %s]", f.Name)
	case strings.HasPrefix(contentType, "image/"):
		return fmt.Sprintf("[Imagen adjunta: %s]", f.Name)
	default:
		return fmt.Sprintf("[Archivo adjunto: %s (%s)]", f.Name, contentType)
	}
}

// MediaType is the declared content type without parameters, sniffed from
// the content when none was declared.
func (f File) MediaType() string {
	contentType := f.ContentType
	if contentType == "" {
		contentType = mimetype.Detect([]byte(f.Content)).String()
	}
	contentType, _, _ = strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(contentType))
}

// Combine converts every file and joins the fragments with a blank line.
func Combine(files []File) string {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		parts = append(parts, Convert(f))
	}
	return strings.Join(parts, "\n\n")
}

// AppendToDescription returns description followed by the attachment
// section. Without files the description is returned unchanged.
func AppendToDescription(description string, files []File) string {
	if len(files) == 0 {
		return description
	}
	return description + Separator + Combine(files)
}

// Load reads paths from fs and sniffs each file's content type.
func Load(fs afero.Fs, paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return nil, fmt.Errorf("read attachment %s: %w", p, err)
		}
		files = append(files, File{
			Name:        filepath.Base(p),
			ContentType: mimetype.Detect(data).String(),
			Content:     string(data),
		})
	}
	return files, nil
}
