package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docquery/internal/models"
)

type fakeCollection struct {
	addCalls int
	failOn   int // 1-based Add call to fail at, 0 means never
}

func (f *fakeCollection) Add(ctx context.Context, opts ...chroma.CollectionAddOption) error {
	f.addCalls++
	if f.failOn != 0 && f.addCalls == f.failOn {
		return errors.New("add failed")
	}
	return nil
}

func (f *fakeCollection) Query(ctx context.Context, opts ...chroma.CollectionQueryOption) (chroma.QueryResult, error) {
	return nil, errors.New("query not supported by fake")
}

func chunkRecords(n int) []models.ChunkRecord {
	records := make([]models.ChunkRecord, n)
	for i := range records {
		records[i] = models.ChunkRecord{
			ID:   fmt.Sprintf("doc::chunk_%d", i),
			Text: fmt.Sprintf("chunk %d", i),
		}
	}
	return records
}

func Test_BatchRecordsBoundedAndOrdered(t *testing.T) {
	cases := []struct {
		records   int
		batchSize int
		wantSizes []int
	}{
		{records: 0, batchSize: 96, wantSizes: nil},
		{records: 1, batchSize: 96, wantSizes: []int{1}},
		{records: 96, batchSize: 96, wantSizes: []int{96}},
		{records: 97, batchSize: 96, wantSizes: []int{96, 1}},
		{records: 200, batchSize: 96, wantSizes: []int{96, 96, 8}},
		{records: 5, batchSize: 2, wantSizes: []int{2, 2, 1}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d_records_batch_%d", c.records, c.batchSize), func(t *testing.T) {
			records := chunkRecords(c.records)

			batches := batchRecords(records, c.batchSize)

			require.Len(t, batches, len(c.wantSizes))
			rejoined := make([]models.ChunkRecord, 0, c.records)
			for i, batch := range batches {
				assert.LessOrEqual(t, len(batch), c.batchSize)
				assert.Equal(t, c.wantSizes[i], len(batch))
				rejoined = append(rejoined, batch...)
			}
			// Concatenating the batches in call order reproduces the input.
			assert.Equal(t, records, rejoined)
		})
	}
}

func Test_UpsertSplitsIntoBatches(t *testing.T) {
	cases := []struct {
		records   int
		batchSize int
		wantCalls int
	}{
		{records: 0, batchSize: 2, wantCalls: 0},
		{records: 1, batchSize: 2, wantCalls: 1},
		{records: 2, batchSize: 2, wantCalls: 1},
		{records: 5, batchSize: 2, wantCalls: 3},
		{records: 96, batchSize: 96, wantCalls: 1},
		{records: 97, batchSize: 96, wantCalls: 2},
	}

	for i, c := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			col := &fakeCollection{}
			store := &ChromaStore{col: col, batchSize: c.batchSize}

			err := store.Upsert(context.Background(), "https://example.com/doc.pdf", chunkRecords(c.records))

			require.NoError(t, err)
			assert.Equal(t, c.wantCalls, col.addCalls)
		})
	}
}

func Test_UpsertAbortsOnFirstFailedBatch(t *testing.T) {
	col := &fakeCollection{failOn: 2}
	store := &ChromaStore{col: col, batchSize: 2}

	err := store.Upsert(context.Background(), "https://example.com/doc.pdf", chunkRecords(6))

	assert.Error(t, err)
	assert.Equal(t, 2, col.addCalls, "batches after the failed one must not be sent")
}

func Test_SearchPropagatesQueryError(t *testing.T) {
	store := &ChromaStore{col: &fakeCollection{}, batchSize: 2}

	_, err := store.Search(context.Background(), "what is covered?", "https://example.com/doc.pdf", 10)

	assert.Error(t, err)
}

type fakeMeta map[string]string

func (m fakeMeta) GetString(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func Test_SnippetFrom(t *testing.T) {
	cases := []struct {
		name    string
		content string
		meta    attrGetter
		want    string
	}{
		{"document body wins", "body text", fakeMeta{ChunkTextAttr: "meta text"}, "body text"},
		{"falls back to chunk_text", "", fakeMeta{ChunkTextAttr: "meta text"}, "meta text"},
		{"no fallback available", "", fakeMeta{}, ""},
		{"nil metadata", "", nil, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, snippetFrom(c.content, c.meta))
		})
	}
}
