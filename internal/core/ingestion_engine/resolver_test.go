package ingestion_engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ResolveFromContentDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="Report Final.PDF"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := &ExtensionResolver{client: srv.Client()}
	ext, err := r.Resolve(context.Background(), srv.URL+"/download?id=42")

	require.NoError(t, err)
	assert.Equal(t, ".pdf", ext)
}

func Test_ResolveHintWinsOverPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="sheet.xlsx"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := &ExtensionResolver{client: srv.Client()}
	ext, err := r.Resolve(context.Background(), srv.URL+"/files/policy.pdf")

	require.NoError(t, err)
	assert.Equal(t, ".xlsx", ext)
}

func Test_ResolveFallsBackToPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cases := []struct {
		name string
		path string
		want string
	}{
		{"upper cased", "/files/Policy.PDF", ".pdf"},
		{"query ignored", "/files/policy.pdf?sig=abc", ".pdf"},
		{"no extension", "/files/policy", ""},
		{"bare root", "/", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := &ExtensionResolver{client: srv.Client()}
			ext, err := r.Resolve(context.Background(), srv.URL+c.path)

			require.NoError(t, err)
			assert.Equal(t, c.want, ext)
		})
	}
}

func Test_ResolveProbeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	r := &ExtensionResolver{client: srv.Client()}
	_, err := r.Resolve(context.Background(), srv.URL+"/files/policy.pdf")

	assert.Error(t, err)
}

func Test_BasenameFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://example.com/docs/policy.pdf", "policy"},
		{"https://example.com/docs/My%20Policy.pdf?sig=abc", "My Policy"},
		{"https://example.com/docs/archive.tar.zip", "archive.tar"},
		{"https://example.com/", ""},
		{"https://example.com/noext", "noext"},
	}

	for _, c := range cases {
		t.Run(c.url, func(t *testing.T) {
			assert.Equal(t, c.want, BasenameFromURL(c.url))
		})
	}
}
