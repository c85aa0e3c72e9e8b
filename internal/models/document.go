package models

import (
	"path/filepath"
	"strings"
)

type MediaType string

const (
	MediaTypePDF  MediaType = "application/pdf"
	MediaTypeWord MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func (m MediaType) IsSupported() bool {
	return m == MediaTypePDF || m == MediaTypeWord
}

// MediaTypeFromFilename maps the two accepted extensions to their media
// type. Any other extension yields "".
func MediaTypeFromFilename(name string) MediaType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaTypePDF
	case ".docx":
		return MediaTypeWord
	default:
		return ""
	}
}

// UploadedDocument is a resume file as received from the user. Data must not
// be modified once the document is built.
type UploadedDocument struct {
	FileName  string
	MediaType MediaType
	Data      []byte
}
