package services

import (
	"context"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

type TextExtractor interface {
	Extract(ctx context.Context, doc *models.UploadedDocument) (string, error)
}

type textExtractor struct {
	pdfParser  PDFParserService
	wordParser WordParserService
	logger     *zap.Logger
}

func NewTextExtractor(pdfParser PDFParserService, wordParser WordParserService, log *zap.Logger) TextExtractor {
	return &textExtractor{
		pdfParser:  pdfParser,
		wordParser: wordParser,
		logger:     logger.OrNop(log),
	}
}

// Extract implements TextExtractor. Short or empty text is not an error
// here; the caller decides whether it is enough.
func (e *textExtractor) Extract(ctx context.Context, doc *models.UploadedDocument) (string, error) {
	if doc == nil {
		return "", &UnsupportedFileTypeError{}
	}
	if err := ctx.Err(); err != nil {
		return "", &ExtractionError{MediaType: doc.MediaType, Cause: err}
	}

	var (
		text string
		err  error
	)

	switch doc.MediaType {
	case models.MediaTypePDF:
		e.logger.Debug("extracting PDF text", zap.String("file", doc.FileName))
		text, err = e.pdfParser.ExtractText(doc.Data)
	case models.MediaTypeWord:
		e.logger.Debug("extracting Word text", zap.String("file", doc.FileName))
		text, err = e.wordParser.ExtractText(doc.Data)
	default:
		return "", &UnsupportedFileTypeError{MediaType: doc.MediaType}
	}

	if err != nil {
		e.logger.Warn("text extraction failed",
			zap.String("file", doc.FileName),
			zap.String("media_type", string(doc.MediaType)),
			zap.Error(err),
		)
		return "", &ExtractionError{MediaType: doc.MediaType, Cause: err}
	}

	e.logger.Info("text extracted",
		zap.String("file", doc.FileName),
		zap.Int("characters", len(text)),
	)
	return text, nil
}
