package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"agentchat-cli/internal/observability"
	"agentchat-cli/internal/sse"
)

// --- Streamed Runs ---

// RunParams are the form fields of a run request.
type RunParams struct {
	Message   string
	SessionID string
	UserID    string
}

func (p RunParams) form() url.Values {
	v := url.Values{}
	v.Set("message", p.Message)
	v.Set("session_id", p.SessionID)
	v.Set("stream", "true")
	v.Set("monitor", "true")
	if p.UserID != "" {
		v.Set("user_id", p.UserID)
	}
	return v
}

// RunAgent starts a streamed run on a single agent.
func (c *Client) RunAgent(ctx context.Context, agentID string, p RunParams) (*sse.Reader, error) {
	return c.runStream(ctx, "/agents/"+url.PathEscape(agentID)+"/runs", p)
}

// RunTeam starts a streamed run on the configured team.
func (c *Client) RunTeam(ctx context.Context, p RunParams) (*sse.Reader, error) {
	return c.runStream(ctx, "/teams/"+url.PathEscape(c.team)+"/runs", p)
}

func (c *Client) runStream(ctx context.Context, path string, p RunParams) (*sse.Reader, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, strings.NewReader(p.form().Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return sse.NewReader(resp.Body, sse.WithLogger(observability.LoggerFromContext(ctx))), nil
}
