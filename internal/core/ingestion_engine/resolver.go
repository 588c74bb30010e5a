package ingestion_engine

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// ExtensionResolver determines a document's file extension before download.
// A Content-Disposition filename hint from the server wins over the locator
// path, because signed URLs often hide the real name in query parameters.
type ExtensionResolver struct {
	client *http.Client
}

// Resolve probes the locator with a GET request and returns the lower-cased
// extension (including the leading dot, possibly empty).
func (r *ExtensionResolver) Resolve(ctx context.Context, docURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", docURL, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", docURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("probe %s: unexpected status %s", docURL, resp.Status)
	}

	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, perr := mime.ParseMediaType(cd); perr == nil {
			if filename, ok := params["filename"]; ok {
				return strings.ToLower(path.Ext(filename)), nil
			}
		}
	}

	u, err := url.Parse(docURL)
	if err != nil {
		return "", fmt.Errorf("parse locator %s: %w", docURL, err)
	}
	return strings.ToLower(path.Ext(u.Path)), nil
}

// BasenameFromURL returns the URL path's final segment without its extension,
// percent-decoded. It seeds every chunk ID for the document.
func BasenameFromURL(docURL string) string {
	u, err := url.Parse(docURL)
	if err != nil {
		return ""
	}
	// u.Path is already percent-decoded.
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return ""
	}
	return strings.TrimSuffix(name, path.Ext(name))
}
