package services

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var pdfMagic = []byte("%PDF")

// DocumentExtractor turns uploaded resumes into plain text. PDF input is
// parsed page by page; UTF-8 text input is passed through.
type DocumentExtractor interface {
	ExtractText(data []byte) string
}

type documentContent struct {
	Text      string
	PageCount int
}

type documentExtractor struct {
	logger *zap.Logger
}

func NewDocumentExtractor(logger *zap.Logger) DocumentExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &documentExtractor{logger: logger}
}

// ExtractText implements DocumentExtractor. It never fails: documents that
// cannot be read yield an empty string.
func (e *documentExtractor) ExtractText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("pdf reader panicked", zap.Any("panic", r))
			text = ""
		}
	}()

	switch {
	case bytes.HasPrefix(data, pdfMagic):
		content, err := extractPDF(data)
		if err != nil {
			e.logger.Warn("failed to extract pdf text", zap.Error(err))
			return ""
		}
		e.logger.Debug("pdf text extracted",
			zap.Int("pages", content.PageCount),
			zap.Int("characters", len(content.Text)),
		)
		return content.Text
	case utf8.Valid(data):
		return string(data)
	default:
		e.logger.Debug("unsupported document content", zap.Int("bytes", len(data)))
		return ""
	}
}

func extractPDF(data []byte) (*documentContent, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return &documentContent{
		Text:      strings.TrimSpace(textBuilder.String()),
		PageCount: totalPage,
	}, nil
}
