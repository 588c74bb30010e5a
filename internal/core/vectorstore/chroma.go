package vectorstore

import (
	"context"
	"fmt"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	gemini "github.com/amikos-tech/chroma-go/pkg/embeddings/gemini"

	"docquery/internal/core"
	"docquery/internal/models"
)

const (
	// DocURLAttr tags every record with its source document locator so
	// searches can be scoped to one document.
	DocURLAttr = "doc_url"
	// ChunkTextAttr is the metadata attribute older records kept their text
	// under; retrieval falls back to it when the document body is empty.
	ChunkTextAttr = "chunk_text"
)

// maxBatchSize caps how many records go into a single add request.
const maxBatchSize = 96

// collectionAPI is the slice of chroma.Collection the store actually uses.
type collectionAPI interface {
	Add(ctx context.Context, opts ...chroma.CollectionAddOption) error
	Query(ctx context.Context, opts ...chroma.CollectionQueryOption) (chroma.QueryResult, error)
}

// ChromaStore implements core.VectorStore on a Chroma collection. Embedding
// happens server-side through the collection's embedding function, so callers
// only ever exchange text.
type ChromaStore struct {
	client    chroma.Client
	col       collectionAPI
	batchSize int
}

type ChromaStoreConfig struct {
	BaseURL    string
	Collection string
	APIKey     string // Gemini key for the embedding function
	EmbedModel string
	BatchSize  int
}

var _ core.VectorStore = (*ChromaStore)(nil)

func NewChromaStore(ctx context.Context, cfg ChromaStoreConfig) (*ChromaStore, error) {
	ef, err := gemini.NewGeminiEmbeddingFunction(
		gemini.WithAPIKey(cfg.APIKey),
		gemini.WithDefaultModel(embeddings.EmbeddingModel(cfg.EmbedModel)))
	if err != nil {
		return nil, fmt.Errorf("create embedding function: %w", err)
	}

	client, err := chroma.NewHTTPClient(chroma.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect to chroma at %s: %w", cfg.BaseURL, err)
	}

	col, err := client.GetOrCreateCollection(ctx, cfg.Collection, chroma.WithEmbeddingFunctionCreate(ef))
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open collection %s: %w", cfg.Collection, err)
	}

	batch := cfg.BatchSize
	if batch <= 0 || batch > maxBatchSize {
		batch = maxBatchSize
	}

	return &ChromaStore{client: client, col: col, batchSize: batch}, nil
}

func (s *ChromaStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// batchRecords splits records into consecutive slices of at most size
// elements, keeping the input order within and across slices. Every Add call
// sends exactly one of these slices.
func batchRecords(records []models.ChunkRecord, size int) [][]models.ChunkRecord {
	if len(records) == 0 {
		return nil
	}
	batches := make([][]models.ChunkRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		batches = append(batches, records[start:end])
	}
	return batches
}

// Upsert writes records in input order in batches of at most batchSize.
// The first failed batch aborts the remainder so a retry re-runs the whole
// document; deterministic IDs make the rewrite overwrite, not duplicate.
func (s *ChromaStore) Upsert(ctx context.Context, docURL string, records []models.ChunkRecord) error {
	offset := 0
	for _, batch := range batchRecords(records, s.batchSize) {
		ids := make([]chroma.DocumentID, len(batch))
		texts := make([]string, len(batch))
		metas := make([]chroma.DocumentMetadata, len(batch))
		for i, rec := range batch {
			ids[i] = chroma.DocumentID(rec.ID)
			texts[i] = rec.Text
			metas[i] = chroma.NewDocumentMetadata(chroma.NewStringAttribute(DocURLAttr, docURL))
		}

		err := s.col.Add(ctx,
			chroma.WithIDs(ids...),
			chroma.WithTexts(texts...),
			chroma.WithMetadatas(metas...),
		)
		if err != nil {
			return fmt.Errorf("add batch at offset %d: %w", offset, err)
		}
		offset += len(batch)
	}
	return nil
}

// Search runs a similarity query, scoped to one document when docURL is set.
func (s *ChromaStore) Search(ctx context.Context, query, docURL string, topK int) ([]models.Snippet, error) {
	opts := []chroma.CollectionQueryOption{
		chroma.WithQueryTexts(query),
		chroma.WithNResults(topK),
	}
	if docURL != "" {
		opts = append(opts, chroma.WithWhereQuery(chroma.EqString(DocURLAttr, docURL)))
	}

	r, err := s.col.Query(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	docGroups := r.GetDocumentsGroups()
	if len(docGroups) == 0 {
		return nil, nil
	}
	docs := docGroups[0]
	metaGroups := r.GetMetadatasGroups()
	distGroups := r.GetDistancesGroups()

	snippets := make([]models.Snippet, 0, len(docs))
	for i := range docs {
		var meta attrGetter
		if len(metaGroups) > 0 && i < len(metaGroups[0]) {
			meta = metaGroups[0][i]
		}
		text := snippetFrom(docs[i].ContentString(), meta)
		if text == "" {
			continue
		}

		sn := models.Snippet{Text: text}
		if meta != nil {
			sn.DocURL, _ = meta.GetString(DocURLAttr)
		}
		if len(distGroups) > 0 && i < len(distGroups[0]) {
			sn.Score = float64(distGroups[0][i])
		}
		snippets = append(snippets, sn)
	}
	return snippets, nil
}

type attrGetter interface {
	GetString(key string) (string, bool)
}

// snippetFrom picks the hit text: the stored document body when present,
// otherwise the legacy chunk_text attribute.
func snippetFrom(content string, meta attrGetter) string {
	if content != "" {
		return content
	}
	if meta != nil {
		if text, ok := meta.GetString(ChunkTextAttr); ok {
			return text
		}
	}
	return ""
}
