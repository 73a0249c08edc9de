package chat

import (
	"context"

	"agentchat-cli/internal/api"
	"agentchat-cli/internal/sse"
)

// EventStream is a finite, cancellable sequence of decoded SSE events.
type EventStream interface {
	Next(ctx context.Context) (sse.Event, error)
	Close() error
}

// RunRequest describes one turn sent to the backend.
type RunRequest struct {
	Mode      Mode
	Agent     string
	Message   string
	SessionID string
	UserID    string
}

// Backend starts a streamed run.
type Backend interface {
	Run(ctx context.Context, req RunRequest) (EventStream, error)
}

type runner interface {
	RunAgent(ctx context.Context, agentID string, p api.RunParams) (*sse.Reader, error)
	RunTeam(ctx context.Context, p api.RunParams) (*sse.Reader, error)
}

// APIBackend runs turns against the HTTP API.
type APIBackend struct {
	Client runner
}

func (b APIBackend) Run(ctx context.Context, req RunRequest) (EventStream, error) {
	p := api.RunParams{
		Message:   req.Message,
		SessionID: req.SessionID,
		UserID:    req.UserID,
	}
	var (
		r   *sse.Reader
		err error
	)
	if req.Mode == ModeTeam {
		r, err = b.Client.RunTeam(ctx, p)
	} else {
		r, err = b.Client.RunAgent(ctx, req.Agent, p)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
