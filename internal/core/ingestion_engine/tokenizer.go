package ingestion_engine

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"docquery/internal/core"
)

// encodingModel picks the BPE vocabulary for chunk windows. Chunk offsets are
// token indices in this encoding, so changing it invalidates existing IDs.
const encodingModel = "text-embedding-ada-002"

// TiktokenCodec implements core.TokenCodec on top of tiktoken's BPE tables.
type TiktokenCodec struct {
	enc *tiktoken.Tiktoken
}

var _ core.TokenCodec = (*TiktokenCodec)(nil)

func NewTiktokenCodec() (*TiktokenCodec, error) {
	enc, err := tiktoken.EncodingForModel(encodingModel)
	if err != nil {
		return nil, fmt.Errorf("load encoding for %s: %w", encodingModel, err)
	}
	return &TiktokenCodec{enc: enc}, nil
}

func (c *TiktokenCodec) Encode(text string) []int {
	return c.enc.Encode(text, nil, nil)
}

func (c *TiktokenCodec) Decode(tokens []int) string {
	return c.enc.Decode(tokens)
}
