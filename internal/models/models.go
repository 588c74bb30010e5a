package models

// ChunkRecord is one unit of text persisted to the vector store, keyed by a
// deterministic ID so re-ingesting a document overwrites instead of duplicating.
type ChunkRecord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Snippet is one retrieved hit for a question, already reduced to plain text.
type Snippet struct {
	Text   string  `json:"text"`
	DocURL string  `json:"doc_url"` // source document locator
	Score  float64 `json:"score"`   // similarity distance reported by the store
}
