package ingestion_engine

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/jhillyerd/enmime"
	"github.com/otiai10/gosseract/v2"
)

// UnitKind tells the pipeline whether extracted text is real document content
// to chunk or a short descriptive stub to store as-is.
type UnitKind int

const (
	UnitPlainText UnitKind = iota
	UnitOCRText
	UnitSpreadsheetText
	UnitSlideText
	UnitArchiveSummary
	UnitBinaryStub
)

// Chunkable reports whether text of this kind goes through the chunker.
func (k UnitKind) Chunkable() bool {
	switch k {
	case UnitArchiveSummary, UnitBinaryStub:
		return false
	default:
		return true
	}
}

// ExtractedUnit is the outcome of format-specific extraction for one document.
type ExtractedUnit struct {
	Kind UnitKind
	Text string
}

// Extractor turns a downloaded file into an ExtractedUnit based on its format.
type Extractor struct {
	// ocrText is swappable so tests do not need a tesseract install.
	ocrText func(path string) (string, error)
}

func NewExtractor() *Extractor {
	return &Extractor{ocrText: tesseractText}
}

// Extract dispatches on the format kind. Every supported kind has a handler;
// anything else fails with ErrUnsupportedFormat.
func (e *Extractor) Extract(path string, kind FormatKind, basename, ext string) (ExtractedUnit, error) {
	switch kind {
	case FormatArchive:
		return archiveSummary(path)
	case FormatImage:
		return e.imageText(path, basename, ext)
	case FormatSpreadsheet:
		return spreadsheetText(path)
	case FormatSlideDeck:
		return slideText(path)
	case FormatPDF, FormatWord:
		return convertedText(path)
	case FormatPlainText:
		return plainText(path)
	case FormatEmail:
		return emailText(path)
	default:
		return ExtractedUnit{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// archiveSummary lists zip entry names without extracting any member.
func archiveSummary(path string) (ExtractedUnit, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return ExtractedUnit{}, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	text := fmt.Sprintf("Archive contains %d files: %s", len(names), strings.Join(names, ", "))
	return ExtractedUnit{Kind: UnitArchiveSummary, Text: text}, nil
}

// imageText runs OCR over the image. When OCR yields nothing useful the
// document is represented by a stub so retrieval can still name the file.
func (e *Extractor) imageText(path, basename, ext string) (ExtractedUnit, error) {
	text, err := e.ocrText(path)
	if err != nil {
		return ExtractedUnit{}, fmt.Errorf("ocr %s: %w", path, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		stub := fmt.Sprintf("Image file %s%s, OCR returned no useful text.", basename, ext)
		return ExtractedUnit{Kind: UnitBinaryStub, Text: stub}, nil
	}
	return ExtractedUnit{Kind: UnitOCRText, Text: text}, nil
}

func tesseractText(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", err
	}
	return client.Text()
}

// convertedText handles PDFs and Word documents through docconv.
func convertedText(path string) (ExtractedUnit, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return ExtractedUnit{}, fmt.Errorf("convert %s: %w", path, err)
	}
	return ExtractedUnit{Kind: UnitPlainText, Text: res.Body}, nil
}

func plainText(path string) (ExtractedUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExtractedUnit{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ExtractedUnit{Kind: UnitPlainText, Text: string(data)}, nil
}

// emailText keeps only the plain-text body of the message.
func emailText(path string) (ExtractedUnit, error) {
	f, err := os.Open(path)
	if err != nil {
		return ExtractedUnit{}, fmt.Errorf("open email: %w", err)
	}
	defer f.Close()

	env, err := enmime.ReadEnvelope(f)
	if err != nil {
		return ExtractedUnit{}, fmt.Errorf("parse email: %w", err)
	}
	return ExtractedUnit{Kind: UnitPlainText, Text: env.Text}, nil
}
