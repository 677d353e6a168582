package fileproc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF yields no extractable text, which
// usually means a scanned or image-based document.
var ErrNoText = errors.New("no text could be extracted from PDF")

// ExtractPDFText extracts plain text from an in-memory PDF.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var b bytes.Buffer
	if _, err := io.Copy(&b, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// ExtractText extracts and cleans document text based on the file name
// extension. PDFs go through text extraction; everything else is treated
// as UTF-8 text.
func ExtractText(name string, data []byte) (string, error) {
	var text string

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		extracted, err := ExtractPDFText(data)
		if err != nil {
			return "", err
		}
		text = extracted
	default:
		text = string(data)
	}

	return CleanText(text), nil
}
