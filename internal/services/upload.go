package services

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type UploadService interface {
	ReadDocument(file *multipart.FileHeader) (*models.UploadedDocument, error)
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{
		maxFileSize: maxFileSize,
	}
}

// ReadDocument loads an uploaded resume into memory. The declared media type
// comes from the part header, falling back to the file extension when the
// client sent none.
func (s *uploadService) ReadDocument(file *multipart.FileHeader) (*models.UploadedDocument, error) {
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: max size is %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	mediaType := declaredMediaType(file)
	if !mediaType.IsSupported() {
		return nil, &UnsupportedFileTypeError{MediaType: mediaType}
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	reader := io.Reader(src)
	if s.maxFileSize > 0 {
		reader = io.LimitReader(src, s.maxFileSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: max size is %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	return &models.UploadedDocument{
		FileName:  file.Filename,
		MediaType: mediaType,
		Data:      data,
	}, nil
}

func declaredMediaType(file *multipart.FileHeader) models.MediaType {
	contentType := file.Header.Get("Content-Type")
	if contentType != "" {
		if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
			contentType = parsed
		}
	}

	if contentType == "" || contentType == "application/octet-stream" {
		return models.MediaTypeFromFilename(file.Filename)
	}
	return models.MediaType(contentType)
}
