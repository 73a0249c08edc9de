package tui

import (
	"context"
	"sync/atomic"

	"agentchat-cli/internal/chat"

	tea "github.com/charmbracelet/bubbletea"
)

// ─── Messages sent from the turn goroutine to Bubble Tea ────────────────────

type turnUpdateMsg struct {
	turn   int
	update chat.Update
}

type turnDoneMsg struct {
	turn int
	err  error
}

// ─── Session refresh signal ─────────────────────────────────────────────────

// RefreshCounter counts turns that reached the backend. Bump is meant to be
// installed with chat.WithFirstEventHook; the model refetches the session
// list whenever the count moves.
type RefreshCounter struct {
	n atomic.Uint64
}

func (r *RefreshCounter) Bump(string) {
	r.n.Add(1)
}

func (r *RefreshCounter) Load() uint64 {
	if r == nil {
		return 0
	}
	return r.n.Load()
}

// ─── Turn command ───────────────────────────────────────────────────────────
//
// Runs one turn in a goroutine, forwards every update through a channel, and
// returns a tea.Cmd that reads from that channel one message at a time. The
// model dispatches another waitForTurn after each update until the turn is
// done. Cancelling ctx unblocks the goroutine even if nobody reads.

func beginTurn(ctx context.Context, ctrl *chat.Controller, turn int, text string) (<-chan tea.Msg, tea.Cmd) {
	ch := make(chan tea.Msg, 64)

	go func() {
		defer close(ch)

		err := ctrl.RunTurn(ctx, text, func(u chat.Update) {
			select {
			case ch <- turnUpdateMsg{turn: turn, update: u}:
			case <-ctx.Done():
			}
		})

		select {
		case ch <- turnDoneMsg{turn: turn, err: err}:
		case <-ctx.Done():
		}
	}()

	return ch, waitForTurn(ch, turn)
}

// waitForTurn reads the next message from the channel. A closed channel
// reads as the end of the turn.
func waitForTurn(ch <-chan tea.Msg, turn int) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return turnDoneMsg{turn: turn}
		}
		return msg
	}
}
