package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// --- Session List ---

type SessionType string

const (
	SessionAgent SessionType = "agent"
	SessionTeam  SessionType = "team"
)

// DefaultSessionLimit is how many sessions of each type are listed.
const DefaultSessionLimit = 100

type SessionRecord struct {
	SessionID   string      `json:"session_id"`
	SessionName string      `json:"session_name"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	CreatedAt   Timestamp   `json:"created_at"`
	UpdatedAt   Timestamp   `json:"updated_at"`
	Type        SessionType `json:"-"`
}

// DisplayName is the session's name, else its title, else a short id.
func (s SessionRecord) DisplayName() string {
	for _, v := range []string{s.Name, s.SessionName, s.Title} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if len(s.SessionID) > 8 {
		return s.SessionID[:8]
	}
	return s.SessionID
}

// LastActive is the update time, falling back to the creation time.
func (s SessionRecord) LastActive() time.Time {
	if !s.UpdatedAt.IsZero() {
		return s.UpdatedAt.Time
	}
	return s.CreatedAt.Time
}

// Timestamp decodes either an ISO-8601 string or unix seconds.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" || s == `""` {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				t.Time = parsed
				return nil
			}
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// An unreadable timestamp only affects ordering; keep the record.
		return nil
	}
	if f > 1e12 {
		f /= 1000
	}
	sec := int64(f)
	t.Time = time.Unix(sec, int64((f-float64(sec))*1e9))
	return nil
}

func (c *Client) ListSessions(ctx context.Context, typ SessionType, limit int) ([]SessionRecord, error) {
	params := url.Values{}
	params.Set("type", string(typ))
	params.Set("limit", strconv.Itoa(limit))

	var raw json.RawMessage
	if err := c.doJSON(ctx, "GET", withQuery("/sessions", params), nil, &raw); err != nil {
		return nil, err
	}
	var sessions []SessionRecord
	if err := decodeList(raw, &sessions, "data", "sessions"); err != nil {
		return nil, fmt.Errorf("parsing sessions: %w", err)
	}
	for i := range sessions {
		sessions[i].Type = typ
	}
	return sessions, nil
}

// ListAllSessions lists agent and team sessions concurrently and merges them,
// newest first. A failing type contributes nothing; an error is returned
// only if both fail.
func (c *Client) ListAllSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	types := []SessionType{SessionAgent, SessionTeam}
	results := make([][]SessionRecord, len(types))
	errs := make([]error, len(types))

	var g errgroup.Group
	for i, typ := range types {
		g.Go(func() error {
			results[i], errs[i] = c.ListSessions(ctx, typ, limit)
			return nil
		})
	}
	_ = g.Wait()

	if errs[0] != nil && errs[1] != nil {
		return nil, fmt.Errorf("listing sessions: %w", errs[0])
	}
	return MergeSessions(results...), nil
}

// MergeSessions de-duplicates by session id (first occurrence wins) and
// sorts by last activity, newest first.
func MergeSessions(lists ...[]SessionRecord) []SessionRecord {
	seen := make(map[string]bool)
	var out []SessionRecord
	for _, list := range lists {
		for _, s := range list {
			if s.SessionID == "" || seen[s.SessionID] {
				continue
			}
			seen[s.SessionID] = true
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActive().After(out[j].LastActive())
	})
	return out
}

// --- Session Runs ---

type RunMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type Run struct {
	RunID    string          `json:"run_id,omitempty"`
	Messages []RunMessage    `json:"messages"`
	Input    json.RawMessage `json:"input"`
	RunInput json.RawMessage `json:"run_input"`
	Output   json.RawMessage `json:"output"`
	Content  json.RawMessage `json:"content"`
}

func (c *Client) SessionRuns(ctx context.Context, sessionID string, typ SessionType) ([]Run, error) {
	params := url.Values{}
	params.Set("type", string(typ))

	var raw json.RawMessage
	if err := c.doJSON(ctx, "GET", withQuery("/sessions/"+url.PathEscape(sessionID)+"/runs", params), nil, &raw); err != nil {
		return nil, err
	}
	var runs []Run
	if err := decodeList(raw, &runs, "runs", "data"); err != nil {
		return nil, fmt.Errorf("parsing runs: %w", err)
	}
	return runs, nil
}

// --- Session Management ---

func (c *Client) DeleteSession(ctx context.Context, sessionID string, typ SessionType) error {
	params := url.Values{}
	params.Set("type", string(typ))
	return c.doJSON(ctx, "DELETE", withQuery("/sessions/"+url.PathEscape(sessionID), params), nil, nil)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (c *Client) RenameSession(ctx context.Context, sessionID string, typ SessionType, name string) error {
	params := url.Values{}
	params.Set("type", string(typ))
	path := withQuery("/sessions/"+url.PathEscape(sessionID)+"/rename", params)
	return c.doJSON(ctx, "POST", path, renameRequest{Name: name}, nil)
}
