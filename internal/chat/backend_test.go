package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"agentchat-cli/internal/api"
	"agentchat-cli/internal/sse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	agent string
	team  bool
	p     api.RunParams
	err   error
}

func (f *fakeRunner) RunAgent(_ context.Context, agentID string, p api.RunParams) (*sse.Reader, error) {
	f.agent, f.p = agentID, p
	if f.err != nil {
		return nil, f.err
	}
	return sse.NewReader(strings.NewReader("data: {\"event\":\"RunContent\",\"content\":\"ok\"}\n")), nil
}

func (f *fakeRunner) RunTeam(_ context.Context, p api.RunParams) (*sse.Reader, error) {
	f.team, f.p = true, p
	if f.err != nil {
		return nil, f.err
	}
	return sse.NewReader(strings.NewReader("")), nil
}

func TestAPIBackendRoutesByMode(t *testing.T) {
	r := &fakeRunner{}
	b := APIBackend{Client: r}

	stream, err := b.Run(context.Background(), RunRequest{Mode: ModeAgent, Agent: "writer", Message: "m", SessionID: "s", UserID: "u"})
	require.NoError(t, err)
	ev, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RunContent", ev.Type())
	assert.Equal(t, "writer", r.agent)
	assert.Equal(t, api.RunParams{Message: "m", SessionID: "s", UserID: "u"}, r.p)

	stream, err = b.Run(context.Background(), RunRequest{Mode: ModeTeam, Message: "m"})
	require.NoError(t, err)
	_, err = stream.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, r.team)
}

func TestAPIBackendErrorIsUntypedNil(t *testing.T) {
	b := APIBackend{Client: &fakeRunner{err: errors.New("boom")}}
	stream, err := b.Run(context.Background(), RunRequest{Message: "m"})
	require.Error(t, err)
	assert.Nil(t, stream)
}
