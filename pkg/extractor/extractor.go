package extractor

import (
	"context"
	"fmt"
	"mime"
	"os"
	"strings"

	"lessoncraft-be/internal/pkg/logger"

	"github.com/gen2brain/go-fitz"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
	ContentTypeGIF  = "image/gif"
)

const logModule = "extractor"

// OCR turns an image on disk into text. PlaceholderOCR is the only implementation for now.
type OCR interface {
	ExtractText(ctx context.Context, filePath string) (string, error)
}

type PlaceholderOCR struct{}

func (PlaceholderOCR) ExtractText(_ context.Context, filePath string) (string, error) {
	return fmt.Sprintf("[Image content from %s - OCR would extract text here]", filePath), nil
}

// Extractor converts a stored file into a single text blob. It never returns an error:
// unreadable or unsupported input yields "" and a log line.
type Extractor struct {
	ocr    OCR
	logger logger.ILogger
}

func New(ocr OCR, log logger.ILogger) *Extractor {
	if ocr == nil {
		ocr = PlaceholderOCR{}
	}
	return &Extractor{ocr: ocr, logger: log}
}

func (e *Extractor) Extract(ctx context.Context, filePath string, contentType string) string {
	switch normalizeContentType(contentType) {
	case ContentTypePDF:
		return e.extractPDF(filePath)
	case ContentTypeText:
		return e.extractPlainText(filePath)
	case ContentTypePNG, ContentTypeJPEG, ContentTypeGIF:
		text, err := e.ocr.ExtractText(ctx, filePath)
		if err != nil {
			e.logger.Warn(logModule, "OCR failed", map[string]interface{}{"path": filePath, "error": err.Error()})
			return ""
		}
		return text
	default:
		e.logger.Info(logModule, "Unsupported content type, nothing to extract", map[string]interface{}{
			"path":         filePath,
			"content_type": contentType,
		})
		return ""
	}
}

func (e *Extractor) extractPDF(filePath string) string {
	doc, err := fitz.New(filePath)
	if err != nil {
		e.logger.Warn(logModule, "Failed to open PDF", map[string]interface{}{"path": filePath, "error": err.Error()})
		return ""
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			e.logger.Debug(logModule, "Skipping unreadable PDF page", map[string]interface{}{
				"path":  filePath,
				"page":  i,
				"error": err.Error(),
			})
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String()
}

func (e *Extractor) extractPlainText(filePath string) string {
	data, err := os.ReadFile(filePath)
	if err != nil {
		e.logger.Warn(logModule, "Failed to read text file", map[string]interface{}{"path": filePath, "error": err.Error()})
		return ""
	}
	return string(data)
}

// normalizeContentType drops parameters such as "; charset=utf-8".
func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}
