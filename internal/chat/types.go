package chat

// ─── Conversation model ─────────────────────────────────────────────────────

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type ToolStatus string

const (
	ToolRunning   ToolStatus = "running"
	ToolCompleted ToolStatus = "completed"
	ToolError     ToolStatus = "error"
)

// ToolInvocation is one tool call observed during the current turn.
type ToolInvocation struct {
	ID     string // backend correlation id, may be empty
	Name   string
	Args   string
	Status ToolStatus
	Agent  string
}

// Mode selects whether turns go to a single agent or to the team.
type Mode string

const (
	ModeAgent Mode = "agent"
	ModeTeam  Mode = "team"
)

// ParseMode accepts "agent" or "team".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeAgent, ModeTeam:
		return Mode(s), true
	}
	return "", false
}

const (
	DefaultAgentID   = "research-agent"
	DefaultAgentName = "Research Agent"
	UnknownTool      = "Unknown Tool"
)

// Snapshot is a copy of the conversation state safe to hand to a renderer.
type Snapshot struct {
	SessionID    string
	Mode         Mode
	Agent        string
	Messages     []Message
	Tools        []ToolInvocation
	CurrentAgent string
	InFlight     bool
}

// LastAssistant returns the index of the final message if it is an
// assistant message, or -1.
func (s Snapshot) LastAssistant() int {
	if n := len(s.Messages); n > 0 && s.Messages[n-1].Role == RoleAssistant {
		return n - 1
	}
	return -1
}

type UpdateKind int

const (
	UpdateUser UpdateKind = iota
	UpdateContent
	UpdateTool
	UpdateAgent
	UpdateError
	UpdateDone
)

// Update is emitted after every state change of a turn.
type Update struct {
	Kind     UpdateKind
	Snapshot Snapshot
	Err      error // UpdateError only
}
