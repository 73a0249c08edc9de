package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"agentchat-cli/internal/observability"
	"agentchat-cli/internal/sse"

	"github.com/google/uuid"
)

var (
	ErrTurnInFlight = errors.New("a response is still streaming")
	ErrEmptyMessage = errors.New("message is empty")
)

// KeySessionID is the state key under which the active session id is kept.
const KeySessionID = "sessionId"

// KeyValue is durable client-side state.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Controller owns one conversation and runs its turns. At most one turn is
// in flight; it is the only writer of the last message while it runs.
type Controller struct {
	backend Backend
	store   KeyValue
	userID  func(ctx context.Context) string
	onFirst func(sessionID string)

	mu           sync.Mutex
	sessionID    string
	mode         Mode
	agent        string
	messages     []Message
	tools        []ToolInvocation
	currentAgent string
	inFlight     bool
	turn         uint64
	cancel       context.CancelFunc
}

type Option func(*Controller)

// WithStore persists the active session id.
func WithStore(kv KeyValue) Option {
	return func(c *Controller) { c.store = kv }
}

// WithUserID supplies the user id sent with each run. An empty result omits it.
func WithUserID(fn func(ctx context.Context) string) Option {
	return func(c *Controller) { c.userID = fn }
}

// WithFirstEventHook is called once per turn when the first event arrives,
// from the turn's goroutine.
func WithFirstEventHook(fn func(sessionID string)) Option {
	return func(c *Controller) { c.onFirst = fn }
}

func WithMode(m Mode) Option {
	return func(c *Controller) { c.mode = m }
}

func WithAgent(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.agent = id
		}
	}
}

// WithSessionID starts on an existing session instead of a fresh one.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.sessionID = id
		}
	}
}

func NewController(b Backend, opts ...Option) *Controller {
	c := &Controller{
		backend:   b,
		mode:      ModeAgent,
		agent:     DefaultAgentID,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ─── Session state ──────────────────────────────────────────────────────────

// RestoreSession adopts the persisted session id, or persists the current one
// when none is stored yet.
func (c *Controller) RestoreSession(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	id, ok, err := c.store.Get(ctx, KeySessionID)
	if err != nil {
		return fmt.Errorf("reading active session: %w", err)
	}
	if ok && id != "" {
		c.mu.Lock()
		c.sessionID = id
		c.mu.Unlock()
		return nil
	}
	return c.persist(ctx, c.SessionID())
}

// NewSession cancels any running turn and starts an empty conversation
// under a fresh session id.
func (c *Controller) NewSession(ctx context.Context) (string, error) {
	c.Cancel()
	id := uuid.NewString()
	c.install(id, nil)
	return id, c.persist(ctx, id)
}

// LoadSession cancels any running turn, then replaces the conversation with
// a reconstructed history.
func (c *Controller) LoadSession(ctx context.Context, id string, history []Message) error {
	c.Cancel()
	c.install(id, history)
	return c.persist(ctx, id)
}

func (c *Controller) install(id string, history []Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = id
	c.messages = append([]Message(nil), history...)
	c.tools = nil
	c.currentAgent = ""
}

func (c *Controller) persist(ctx context.Context, id string) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Set(ctx, KeySessionID, id); err != nil {
		return fmt.Errorf("saving active session: %w", err)
	}
	return nil
}

func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode applies from the next turn on.
func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
}

func (c *Controller) Agent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agent
}

// SetAgent applies from the next turn on.
func (c *Controller) SetAgent(id string) {
	c.mu.Lock()
	c.agent = id
	c.mu.Unlock()
}

func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID:    c.sessionID,
		Mode:         c.mode,
		Agent:        c.agent,
		Messages:     append([]Message(nil), c.messages...),
		Tools:        append([]ToolInvocation(nil), c.tools...),
		CurrentAgent: c.currentAgent,
		InFlight:     c.inFlight,
	}
}

// ─── Turns ──────────────────────────────────────────────────────────────────

// Cancel stops the in-flight turn, if any. Once Cancel returns the cancelled
// turn can no longer change the conversation, and no error message is added.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inFlight {
		return
	}
	c.cancel()
	c.turn++
	c.inFlight = false
	c.cancel = nil
}

// RunTurn sends text and folds the streamed response into the conversation,
// calling emit after each change. It blocks until the stream ends. A failed
// run appends an "Error: ..." assistant message and returns the error;
// cancellation returns nil.
func (c *Controller) RunTurn(ctx context.Context, text string, emit func(Update)) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if emit == nil {
		emit = func(Update) {}
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrTurnInFlight
	}
	c.turn++
	id := c.turn
	turnCtx, cancel := context.WithCancel(observability.WithTurnID(ctx, uuid.NewString()))
	c.cancel = cancel
	c.inFlight = true
	c.messages = append(c.messages, Message{Role: RoleUser, Content: text})
	c.tools = nil
	c.currentAgent = ""
	turnStart := len(c.messages)
	req := RunRequest{Mode: c.mode, Agent: c.agent, Message: text, SessionID: c.sessionID}
	userSnap := c.snapshotLocked()
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		if c.turn == id {
			c.inFlight = false
			c.cancel = nil
		}
		c.mu.Unlock()
	}()

	log := observability.LoggerFromContext(turnCtx).With("session_id", req.SessionID, "mode", string(req.Mode))
	emit(Update{Kind: UpdateUser, Snapshot: userSnap})

	if c.userID != nil {
		req.UserID = c.userID(turnCtx)
	}

	stream, err := c.backend.Run(turnCtx, req)
	if err != nil {
		if turnCtx.Err() != nil {
			return nil
		}
		log.Error("run request failed", "error", err)
		return c.fail(id, err, emit)
	}
	defer stream.Close()

	var acc strings.Builder
	first := true
	for {
		ev, err := stream.Next(turnCtx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if turnCtx.Err() != nil {
				log.Debug("turn cancelled")
				return nil
			}
			log.Error("stream failed", "error", err)
			return c.fail(id, err, emit)
		}

		c.mu.Lock()
		if c.turn != id || turnCtx.Err() != nil {
			c.mu.Unlock()
			return nil
		}
		kind, changed := c.applyLocked(ev, &acc, turnStart)
		snap := c.snapshotLocked()
		c.mu.Unlock()

		if first {
			first = false
			if c.onFirst != nil {
				c.onFirst(req.SessionID)
			}
		}
		if changed {
			emit(Update{Kind: kind, Snapshot: snap})
		}
	}

	c.mu.Lock()
	if c.turn != id {
		c.mu.Unlock()
		return nil
	}
	c.inFlight = false
	snap := c.snapshotLocked()
	c.mu.Unlock()

	log.Debug("turn complete", "chars", acc.Len(), "tools", len(snap.Tools))
	emit(Update{Kind: UpdateDone, Snapshot: snap})
	return nil
}

func (c *Controller) fail(id uint64, err error, emit func(Update)) error {
	c.mu.Lock()
	if c.turn != id {
		c.mu.Unlock()
		return nil
	}
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: "Error: " + err.Error()})
	c.inFlight = false
	snap := c.snapshotLocked()
	c.mu.Unlock()

	emit(Update{Kind: UpdateError, Snapshot: snap, Err: err})
	return err
}

// applyLocked folds one event into the conversation.
func (c *Controller) applyLocked(ev sse.Event, acc *strings.Builder, turnStart int) (UpdateKind, bool) {
	p := ev.Payload
	typ := ev.Type()

	// A member name outranks the agent or team that relayed the event.
	label := firstString(p, agentLabelRules)
	if label == "" && contentEvents[typ] {
		label = firstString(p, contentAgentRules)
	}
	changed := false
	if label != "" && label != c.currentAgent {
		c.currentAgent = label
		changed = true
	}

	switch {
	case contentEvents[typ]:
		frag := firstString(p, contentRules)
		if frag == "" {
			return UpdateAgent, changed
		}
		acc.WriteString(frag)
		if n := len(c.messages); n > turnStart && c.messages[n-1].Role == RoleAssistant {
			c.messages[n-1].Content = acc.String()
		} else {
			c.messages = append(c.messages, Message{Role: RoleAssistant, Content: acc.String()})
		}
		return UpdateContent, true

	case toolStart[typ]:
		name := firstString(p, toolNameRules)
		if name == "" {
			name = UnknownTool
		}
		agent := firstString(p, contentAgentRules)
		if agent == "" {
			agent = c.currentAgent
		}
		c.tools = append(c.tools, ToolInvocation{
			ID:     firstString(p, toolIDRules),
			Name:   name,
			Args:   firstText(p, toolArgsRules),
			Status: ToolRunning,
			Agent:  agent,
		})
		return UpdateTool, true

	case toolEnd[typ]:
		i := c.matchToolLocked(firstString(p, toolIDRules))
		if i < 0 {
			return UpdateAgent, changed
		}
		c.tools[i].Status = ToolCompleted
		if firstTrue(p, toolFailedRules) {
			c.tools[i].Status = ToolError
		}
		return UpdateTool, true
	}
	return UpdateAgent, changed
}

// matchToolLocked finds the invocation a tool-end event refers to: the one
// with the given id, else the most recent running one.
func (c *Controller) matchToolLocked(id string) int {
	if id != "" {
		for i := len(c.tools) - 1; i >= 0; i-- {
			if c.tools[i].ID == id {
				return i
			}
		}
	}
	for i := len(c.tools) - 1; i >= 0; i-- {
		if c.tools[i].Status == ToolRunning {
			return i
		}
	}
	return -1
}
