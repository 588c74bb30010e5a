package ingestion_engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// fetchTimeout bounds the whole download, connect included.
const fetchTimeout = 60 * time.Second

// ContentFetcher downloads a document to a temporary file so format-specific
// extractors that need a real path (OCR, workbooks, converters) can run on it.
type ContentFetcher struct {
	client *http.Client
}

func newContentFetcher() *ContentFetcher {
	return &ContentFetcher{client: &http.Client{Timeout: fetchTimeout}}
}

// Fetch downloads the document and returns the temp file path plus a cleanup
// function. The caller must run cleanup on every path once extraction is done.
// The temp file keeps the resolved extension because some extractors sniff it.
func (f *ContentFetcher) Fetch(ctx context.Context, docURL, ext string) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("fetch %s: %w", docURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch %s: %w", docURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, fmt.Errorf("fetch %s: unexpected status %s", docURL, resp.Status)
	}

	tmp, err := os.CreateTemp("", "docquery-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("download %s: %w", docURL, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}

	return tmp.Name(), cleanup, nil
}
