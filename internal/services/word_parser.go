package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type WordParserService interface {
	ExtractText(data []byte) (string, error)
}

type wordParserService struct{}

func NewWordParserService() WordParserService {
	return &wordParserService{}
}

func (w *wordParserService) ExtractText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open Word document: %w", err)
	}
	defer doc.Close()

	text, err := documentXMLToText(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to read document body: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// documentXMLToText flattens word/document.xml into raw text: runs are
// concatenated, tabs and breaks kept, and each paragraph is followed by a
// blank line.
func documentXMLToText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	decoder.Strict = false

	var sb strings.Builder
	inText := false
	// Tabs and breaks only count inside runs; pPr holds tab stop
	// definitions that are also named "tab".
	runDepth := 0

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if runDepth > 0 {
					sb.WriteString("\t")
				}
			case "br", "cr":
				if runDepth > 0 {
					sb.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				if runDepth > 0 {
					runDepth--
				}
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
