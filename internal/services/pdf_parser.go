package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	runSeparator  = "  "
	pageSeparator = "\n"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	// Pages holds the joined runs of every page, in page order.
	Pages []string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(data []byte) (content *PDFContent, err error) {
	// The reader panics on some malformed streams instead of returning errors.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := r.NumPage()
	pages := make([][]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}

		runs, err := pageRuns(page)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}
		pages = append(pages, runs)
	}

	joined := joinPageRuns(pages)
	return &PDFContent{
		Text:      assemblePages(joined),
		PageCount: totalPage,
		Pages:     joined,
	}, nil
}

// pageRuns returns the shown strings of a page, top row first and left to
// right within a row.
func pageRuns(page pdf.Page) ([]string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}

	var runs []string
	for _, row := range rows {
		for _, text := range row.Content {
			runs = append(runs, text.S)
		}
	}
	return runs, nil
}

func joinPageRuns(pages [][]string) []string {
	joined := make([]string, len(pages))
	for i, runs := range pages {
		joined[i] = strings.Join(runs, runSeparator)
	}
	return joined
}

func assemblePages(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, pageSeparator))
}
