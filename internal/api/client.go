package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agentchat-cli/internal/config"
)

// requestTimeout bounds plain JSON calls. Streamed runs are bounded only by
// their context.
const requestTimeout = 30 * time.Second

// ErrNotFound matches a 404 StatusError with errors.Is.
var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

type Client struct {
	baseURL    string
	webURL     string
	team       string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Server, "/"),
		webURL:     strings.TrimRight(cfg.WebOrigin(), "/"),
		team:       cfg.TeamID(),
		httpClient: &http.Client{},
	}
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
}

// --- Agents ---

type Agent struct {
	ID          string `json:"id"`
	AgentID     string `json:"agent_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Key returns the id used in run URLs.
func (a Agent) Key() string {
	if a.ID != "" {
		return a.ID
	}
	return a.AgentID
}

func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, "GET", "/agents", nil, &raw); err != nil {
		return nil, err
	}
	var agents []Agent
	if err := decodeList(raw, &agents, "value", "data"); err != nil {
		return nil, fmt.Errorf("parsing agents: %w", err)
	}
	return agents, nil
}

// --- Generic JSON helpers ---

func (c *Client) doJSON(ctx context.Context, method, path string, reqBody any, result any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var bodyReader io.Reader
	if reqBody != nil && method != "GET" {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req, bodyReader != nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}

// decodeList accepts either a bare JSON array or an object wrapping the
// array under one of keys.
func decodeList(raw json.RawMessage, out any, keys ...string) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	for _, k := range keys {
		if inner, ok := envelope[k]; ok {
			return decodeList(inner, out)
		}
	}
	return nil
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
