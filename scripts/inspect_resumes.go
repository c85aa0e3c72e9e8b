package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// Runs extraction and the presence checklist over local resume files,
// without calling the analysis backend.
//
//	go run ./scripts/inspect_resumes.go ./samples/cv.pdf ./samples/cv.docx
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect_resumes <file> [file...]")
		os.Exit(2)
	}

	extractor := services.NewTextExtractor(
		services.NewPDFParserService(),
		services.NewWordParserService(),
		log,
	)

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, path := range os.Args[1:] {
		log.Info("📄 Processing", zap.String("path", path))

		mediaType := models.MediaTypeFromFilename(path)
		if !mediaType.IsSupported() {
			log.Warn("⚠️  Unsupported file type, skipping", zap.String("path", path))
			failCount++
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("❌ Failed to read file", zap.String("path", path), zap.Error(err))
			failCount++
			continue
		}

		text, err := extractor.Extract(ctx, &models.UploadedDocument{
			FileName:  path,
			MediaType: mediaType,
			Data:      data,
		})
		if err != nil {
			log.Error("❌ Failed to extract text", zap.String("path", path), zap.Error(err))
			failCount++
			continue
		}

		chars := utf8.RuneCountInString(strings.TrimSpace(text))
		fmt.Printf("\n%s (%d characters)\n", path, chars)
		for _, item := range services.EvaluateChecklist(text) {
			mark := "✗"
			if item.Present {
				mark = "✓"
			}
			fmt.Printf("  %s %s\n", mark, item.Label)
		}

		if chars < cfg.Analysis.MinTextLength {
			log.Warn("⚠️  Not enough text for analysis",
				zap.String("path", path),
				zap.Int("characters", chars),
				zap.Int("minimum", cfg.Analysis.MinTextLength),
			)
			failCount++
			continue
		}
		successCount++
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Printf("📊 Inspection Summary: %d usable, %d failed\n", successCount, failCount)
	fmt.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}
