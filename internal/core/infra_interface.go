package core

import (
	"context"

	"docquery/internal/models"
)

// VectorStore defines the store-and-search operations the pipeline needs.
// It abstracts Chroma so higher layers never depend on a specific store.
type VectorStore interface {
	// Upsert writes chunk records tagged with their source document locator.
	// Records are written in input order; the first failed batch aborts the rest.
	Upsert(ctx context.Context, docURL string, records []models.ChunkRecord) error

	// Search returns the topK most similar snippets for the query, scoped to
	// one source document when docURL is non-empty.
	Search(ctx context.Context, query, docURL string, topK int) ([]models.Snippet, error)
}

// Ledger tracks which document locators have been fully ingested.
type Ledger interface {
	Contains(locator string) (bool, error)
	Record(locator string) error
}
