package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

var tokenPattern = regexp.MustCompile(`<div id="token">(\w+)</div>`)

// SecretToken fetches the page behind the document locator and extracts the
// token from its <div id="token"> element.
func (c *Client) SecretToken(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", pageURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}

	m := tokenPattern.FindSubmatch(body)
	if m == nil {
		return "", errors.New("token not found in page HTML")
	}
	return string(m[1]), nil
}
