package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// --- Generated Files ---

// ResolveAsset turns a canonical asset path into an absolute URL on the web
// origin. Absolute URLs are returned unchanged.
func (c *Client) ResolveAsset(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.webURL + path
}

// FileExists issues a HEAD request. A 404 is reported as false with no error.
func (c *Client) FileExists(ctx context.Context, path string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, "HEAD", c.ResolveAsset(path), nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	}
	return false, &StatusError{Code: resp.StatusCode}
}

// Download copies the file at path into w after checking it exists.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (int64, error) {
	ok, err := c.FileExists(ctx, path)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.ResolveAsset(path), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("writing download: %w", err)
	}
	return n, nil
}
