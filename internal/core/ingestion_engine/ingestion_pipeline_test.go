package ingestion_engine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docquery/internal/models"
)

type upsertCall struct {
	docURL  string
	records []models.ChunkRecord
}

type fakeStore struct {
	mu      sync.Mutex
	upserts []upsertCall
	err     error
}

func (s *fakeStore) Upsert(ctx context.Context, docURL string, records []models.ChunkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, upsertCall{docURL: docURL, records: records})
	return nil
}

func (s *fakeStore) Search(ctx context.Context, query, docURL string, topK int) ([]models.Snippet, error) {
	return nil, nil
}

type fakeLedger struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{seen: map[string]bool{}}
}

func (l *fakeLedger) Contains(locator string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen[locator], nil
}

func (l *fakeLedger) Record(locator string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[locator] = true
	return nil
}

func newTestIngestor(client *http.Client, store *fakeStore, led *fakeLedger) *Ingestor {
	return &Ingestor{
		store:     store,
		ledger:    led,
		chunker:   NewChunker(&fakeCodec{}, 2000, 200),
		resolver:  &ExtensionResolver{client: client},
		fetcher:   &ContentFetcher{client: client},
		extractor: NewExtractor(),
	}
}

func textServer(body string, hits *atomic.Int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(body))
	}))
}

func Test_EnsureIngestedTextDocument(t *testing.T) {
	var hits atomic.Int64
	srv := textServer("alpha beta gamma", &hits)
	defer srv.Close()

	store := &fakeStore{}
	led := newFakeLedger()
	ing := newTestIngestor(srv.Client(), store, led)

	docURL := srv.URL + "/notes.txt"
	require.NoError(t, ing.EnsureIngested(context.Background(), docURL))

	require.Len(t, store.upserts, 1)
	assert.Equal(t, docURL, store.upserts[0].docURL)
	require.Len(t, store.upserts[0].records, 1)
	assert.Equal(t, "notes::chunk_0", store.upserts[0].records[0].ID)
	assert.Equal(t, "alpha beta gamma", store.upserts[0].records[0].Text)

	known, err := led.Contains(docURL)
	require.NoError(t, err)
	assert.True(t, known)
}

func Test_EnsureIngestedSkipsKnownDocument(t *testing.T) {
	var hits atomic.Int64
	srv := textServer("alpha", &hits)
	defer srv.Close()

	store := &fakeStore{}
	led := newFakeLedger()
	ing := newTestIngestor(srv.Client(), store, led)

	docURL := srv.URL + "/notes.txt"
	require.NoError(t, led.Record(docURL))

	require.NoError(t, ing.EnsureIngested(context.Background(), docURL))

	assert.Empty(t, store.upserts)
	assert.Equal(t, int64(0), hits.Load(), "a known document must not be fetched again")
}

func Test_EnsureIngestedRecordsOnlyAfterSuccess(t *testing.T) {
	var hits atomic.Int64
	srv := textServer("alpha", &hits)
	defer srv.Close()

	store := &fakeStore{err: errors.New("store down")}
	led := newFakeLedger()
	ing := newTestIngestor(srv.Client(), store, led)

	docURL := srv.URL + "/notes.txt"
	require.Error(t, ing.EnsureIngested(context.Background(), docURL))

	known, err := led.Contains(docURL)
	require.NoError(t, err)
	assert.False(t, known, "failed ingestion must not be recorded")

	// Retry succeeds once the store is healthy and runs the pipeline again.
	store.err = nil
	firstAttemptHits := hits.Load()
	require.NoError(t, ing.EnsureIngested(context.Background(), docURL))

	assert.Greater(t, hits.Load(), firstAttemptHits)
	known, err = led.Contains(docURL)
	require.NoError(t, err)
	assert.True(t, known)
}

func Test_EnsureIngestedBinaryStub(t *testing.T) {
	var hits atomic.Int64
	srv := textServer("raw bytes", &hits)
	defer srv.Close()

	store := &fakeStore{}
	led := newFakeLedger()
	ing := newTestIngestor(srv.Client(), store, led)

	docURL := srv.URL + "/blob.bin"
	require.NoError(t, ing.EnsureIngested(context.Background(), docURL))

	require.Len(t, store.upserts, 1)
	require.Len(t, store.upserts[0].records, 1)
	rec := store.upserts[0].records[0]
	assert.Equal(t, "blob::metadata", rec.ID)
	assert.Equal(t, "Binary file blob.bin; content not extractable.", rec.Text)

	assert.Equal(t, int64(1), hits.Load(), "binary documents are probed but never downloaded")
}

func Test_EnsureIngestedUnsupportedExtension(t *testing.T) {
	var hits atomic.Int64
	srv := textServer("whatever", &hits)
	defer srv.Close()

	store := &fakeStore{}
	led := newFakeLedger()
	ing := newTestIngestor(srv.Client(), store, led)

	docURL := srv.URL + "/data.xyz"
	err := ing.EnsureIngested(context.Background(), docURL)

	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Empty(t, store.upserts)
	assert.Equal(t, int64(1), hits.Load(), "unsupported formats fail before download")

	known, cerr := led.Contains(docURL)
	require.NoError(t, cerr)
	assert.False(t, known)
}

func Test_EnsureIngestedEmptyDocument(t *testing.T) {
	var hits atomic.Int64
	srv := textServer("   \n  ", &hits)
	defer srv.Close()

	store := &fakeStore{}
	led := newFakeLedger()
	ing := newTestIngestor(srv.Client(), store, led)

	docURL := srv.URL + "/blank.txt"
	require.NoError(t, ing.EnsureIngested(context.Background(), docURL))

	assert.Empty(t, store.upserts, "nothing to store for an empty document")

	known, err := led.Contains(docURL)
	require.NoError(t, err)
	assert.True(t, known, "an empty document still counts as ingested")
}

func Test_EnsureIngestedImageStub(t *testing.T) {
	var hits atomic.Int64
	srv := textServer("pretend-png-bytes", &hits)
	defer srv.Close()

	store := &fakeStore{}
	led := newFakeLedger()
	ing := newTestIngestor(srv.Client(), store, led)
	ing.extractor.ocrText = func(path string) (string, error) { return "", nil }

	docURL := srv.URL + "/scan.png"
	require.NoError(t, ing.EnsureIngested(context.Background(), docURL))

	require.Len(t, store.upserts, 1)
	require.Len(t, store.upserts[0].records, 1)
	rec := store.upserts[0].records[0]
	assert.Equal(t, "scan::metadata", rec.ID)
	assert.Equal(t, "Image file scan.png, OCR returned no useful text.", rec.Text)
	assert.Equal(t, int64(2), hits.Load(), "images are probed and downloaded")
}
