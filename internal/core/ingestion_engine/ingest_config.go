package ingestion_engine

import (
	"docquery/internal/core"
)

// IngestConfig tunes the chunking pipeline.
//
// ChunkTokens:  tokens per chunk window (e.g., 2000).
// ChunkOverlap: token overlap between consecutive windows (e.g., 200).
type IngestConfig struct {
	ChunkTokens  int
	ChunkOverlap int
}

// Ingestor orchestrates the one-shot ingestion pipeline for a document URL:
//
// resolver:  resolves the file extension before anything is downloaded.
// fetcher:   downloads the document to a temp file.
// extractor: turns the file into text or a descriptive stub.
// chunker:   slices chunkable text into token windows.
// store:     persists chunk records for retrieval.
// ledger:    remembers which locators have been fully ingested.
type Ingestor struct {
	store     core.VectorStore
	ledger    core.Ledger
	chunker   *Chunker
	resolver  *ExtensionResolver
	fetcher   *ContentFetcher
	extractor *Extractor
}
