package ingestion_engine

import (
	"context"
	"fmt"
	"log"

	"docquery/internal/core"
	"docquery/internal/models"
)

// NewIngestor constructs the ingestor. The resolver and fetcher share one
// HTTP client so the fetch time budget applies to both requests.
func NewIngestor(store core.VectorStore, ledger core.Ledger, codec core.TokenCodec, cfg *IngestConfig) *Ingestor {
	fetcher := newContentFetcher()
	return &Ingestor{
		store:     store,
		ledger:    ledger,
		chunker:   NewChunker(codec, cfg.ChunkTokens, cfg.ChunkOverlap),
		resolver:  &ExtensionResolver{client: fetcher.client},
		fetcher:   fetcher,
		extractor: NewExtractor(),
	}
}

// EnsureIngested runs the full pipeline for a document URL unless the ledger
// already knows it. The locator is recorded only after every stage succeeded,
// so a failed attempt is retried from scratch on the next request.
func (i *Ingestor) EnsureIngested(ctx context.Context, docURL string) error {
	known, err := i.ledger.Contains(docURL)
	if err != nil {
		return fmt.Errorf("ledger lookup: %w", err)
	}
	if known {
		log.Printf("Ingestor: document already ingested, skipping: %s", docURL)
		return nil
	}

	if err := i.ingest(ctx, docURL); err != nil {
		return err
	}

	if err := i.ledger.Record(docURL); err != nil {
		return fmt.Errorf("ledger record: %w", err)
	}
	return nil
}

// ingest resolves, fetches, extracts, chunks and stores one document.
func (i *Ingestor) ingest(ctx context.Context, docURL string) error {
	ext, err := i.resolver.Resolve(ctx, docURL)
	if err != nil {
		return err
	}
	basename := BasenameFromURL(docURL)

	kind := ResolveFormat(ext)
	if kind == FormatUnknown {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	log.Printf("Ingestor: processing %s (ext %q)", docURL, ext)

	// Opaque binaries are represented by a stub; nothing is downloaded.
	if kind == FormatBinary {
		stub := fmt.Sprintf("Binary file %s%s; content not extractable.", basename, ext)
		return i.store.Upsert(ctx, docURL, []models.ChunkRecord{stubRecord(basename, stub)})
	}

	path, cleanup, err := i.fetcher.Fetch(ctx, docURL, ext)
	if err != nil {
		return err
	}
	defer cleanup()

	unit, err := i.extractor.Extract(path, kind, basename, ext)
	if err != nil {
		return err
	}

	var records []models.ChunkRecord
	if unit.Kind.Chunkable() {
		records = i.chunker.Chunk(unit.Text, basename)
	} else {
		records = []models.ChunkRecord{stubRecord(basename, unit.Text)}
	}
	if len(records) == 0 {
		log.Printf("Ingestor: no text extracted from %s, nothing to store", docURL)
		return nil
	}

	if err := i.store.Upsert(ctx, docURL, records); err != nil {
		return fmt.Errorf("store chunks: %w", err)
	}
	log.Printf("Ingestor: stored %d chunks for %s", len(records), docURL)
	return nil
}

// stubRecord wraps descriptive text in a single metadata-suffixed record.
func stubRecord(basename, text string) models.ChunkRecord {
	return models.ChunkRecord{
		ID:   fmt.Sprintf("%s::metadata", basename),
		Text: text,
	}
}
