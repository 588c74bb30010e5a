package ingestion_engine

import (
	"errors"
	"strings"
)

// ErrUnsupportedFormat is returned when a locator resolves to an extension
// no extractor can handle. The pipeline fails before downloading anything.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// FormatKind classifies a document by its resolved file extension.
type FormatKind int

const (
	FormatUnknown FormatKind = iota
	FormatBinary
	FormatArchive
	FormatImage
	FormatSpreadsheet
	FormatSlideDeck
	FormatPDF
	FormatWord
	FormatPlainText
	FormatEmail
)

// ResolveFormat maps a file extension (with leading dot) to its FormatKind.
// Unrecognized extensions map to FormatUnknown.
func ResolveFormat(ext string) FormatKind {
	switch strings.ToLower(ext) {
	case ".bin":
		return FormatBinary
	case ".zip":
		return FormatArchive
	case ".png", ".jpeg", ".jpg", ".bmp", ".gif":
		return FormatImage
	case ".xlsx":
		return FormatSpreadsheet
	case ".pptx":
		return FormatSlideDeck
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatWord
	case ".txt":
		return FormatPlainText
	case ".eml":
		return FormatEmail
	default:
		return FormatUnknown
	}
}
