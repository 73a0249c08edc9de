package api

import (
	"context"
	"io"

	"agentchat-cli/internal/sse"
)

// ChatAPI defines the interface for the agent backend client.
// *Client satisfies this interface. TUI and tests can use mock implementations.
type ChatAPI interface {
	ListAgents(ctx context.Context) ([]Agent, error)
	RunAgent(ctx context.Context, agentID string, p RunParams) (*sse.Reader, error)
	RunTeam(ctx context.Context, p RunParams) (*sse.Reader, error)
	ListSessions(ctx context.Context, typ SessionType, limit int) ([]SessionRecord, error)
	ListAllSessions(ctx context.Context, limit int) ([]SessionRecord, error)
	SessionRuns(ctx context.Context, sessionID string, typ SessionType) ([]Run, error)
	DeleteSession(ctx context.Context, sessionID string, typ SessionType) error
	RenameSession(ctx context.Context, sessionID string, typ SessionType, name string) error
	ResolveAsset(path string) string
	FileExists(ctx context.Context, path string) (bool, error)
	Download(ctx context.Context, path string, w io.Writer) (int64, error)
}

var _ ChatAPI = (*Client)(nil)
