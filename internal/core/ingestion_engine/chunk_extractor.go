package ingestion_engine

import (
	"fmt"
	"log"
	"strings"

	"docquery/internal/core"
	"docquery/internal/models"
)

// Chunker slices a document's text into fixed token windows with overlap.
//
// Window boundaries are token offsets in the codec's encoding, and each
// chunk ID embeds its starting offset, so the same text always produces the
// same IDs. A 2000-token window with 200 overlap advances 1800 tokens per
// step: a 2500-token document yields chunk_0 and chunk_1800.
type Chunker struct {
	codec   core.TokenCodec
	size    int
	overlap int
}

func NewChunker(codec core.TokenCodec, size, overlap int) *Chunker {
	if size <= 0 {
		size = 2000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		log.Printf("WARN: chunk overlap %d >= window %d, shrinking overlap", overlap, size)
		overlap = size / 10
	}
	return &Chunker{codec: codec, size: size, overlap: overlap}
}

// Chunk normalizes whitespace, encodes the text and emits one record per
// window. Empty or whitespace-only text yields no records.
func (c *Chunker) Chunk(text, basename string) []models.ChunkRecord {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil
	}

	tokens := c.codec.Encode(normalized)
	step := c.size - c.overlap

	records := make([]models.ChunkRecord, 0, len(tokens)/step+1)
	for start := 0; start < len(tokens); start += step {
		end := min(start+c.size, len(tokens))
		records = append(records, models.ChunkRecord{
			ID:   fmt.Sprintf("%s::chunk_%d", basename, start),
			Text: c.codec.Decode(tokens[start:end]),
		})
	}
	return records
}
