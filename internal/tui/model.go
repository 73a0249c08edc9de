package tui

import (
	"context"
	"fmt"
	"strings"

	"agentchat-cli/internal/api"
	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/config"
	"agentchat-cli/internal/render"
	"agentchat-cli/internal/service"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ─── App mode ───────────────────────────────────────────────────────────────

type appMode int

const (
	modeIdle appMode = iota
	modeStreaming
)

// ─── Slash command registry ─────────────────────────────────────────────────

type slashCmd struct {
	name string
	desc string
}

var slashCommands = []slashCmd{
	{"/agent", "Switch to an agent"},
	{"/agents", "List available agents"},
	{"/clear", "Clear the screen"},
	{"/config", "Show current configuration"},
	{"/delete", "Delete a session"},
	{"/download", "Download a generated file"},
	{"/export", "Export the conversation as HTML"},
	{"/help", "Show all commands"},
	{"/link", "Get web UI URL for this session"},
	{"/mode", "Show or set agent/team mode"},
	{"/new", "Start a new conversation"},
	{"/quit", "Exit AgentChat"},
	{"/rename", "Rename the current session"},
	{"/session", "Open a session"},
	{"/sessions", "List recent sessions"},
	{"/team", "Talk to the whole team"},
}

// ─── Model ──────────────────────────────────────────────────────────────────

type model struct {
	width  int
	height int

	// Bubble Tea components
	input   textinput.Model
	spinner spinner.Model

	// App state
	mode    appMode
	cfg     *config.Config
	client  api.ChatAPI
	ctrl    *chat.Controller
	stab    *render.Stabilizer
	refresh *RefreshCounter
	version string
	profile string

	// Turn state
	turn        int                // sequence number of the latest turn
	turnCh      <-chan tea.Msg     // updates of the running turn
	cancelTurn  context.CancelFunc // stops the running turn's goroutine
	snap        chat.Snapshot      // latest state seen from the running turn
	preview     string             // rendered in-progress answer
	refreshSeen uint64

	// Cached listings
	sessions      []api.SessionRecord
	agents        []service.AgentChoice
	lastResources []render.Resource

	// UI state
	ready        bool
	cmdMenuIdx   int    // selected index in command menu (-1 = none)
	cmdMenuOpen  bool   // whether the command menu is visible
	lastInputVal string // track input changes to reset menu index

	// Command history
	history      []string // stored command history
	historyIdx   int      // current position in history (-1 = not browsing)
	historySaved string   // saved input value when entering history mode
}

func initialModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Send a message or type /help..."
	ti.Focus()
	ti.CharLimit = 8192
	ti.Prompt = "❯ "
	ti.PromptStyle = promptSymbol
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(colorOrange)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorOrange)

	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	return model{
		input:      ti,
		spinner:    sp,
		version:    opts.Version,
		profile:    opts.Profile,
		cfg:        cfg,
		client:     opts.Client,
		ctrl:       opts.Controller,
		stab:       opts.Stabilizer,
		refresh:    opts.Refresh,
		mode:       modeIdle,
		history:    make([]string, 0),
		historyIdx: -1,
	}
}

// ─── Init ───────────────────────────────────────────────────────────────────

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.loadSessions(true),
	)
}

// ─── Update ─────────────────────────────────────────────────────────────────

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.width - 6

		if !m.ready {
			m.ready = true
			// Print welcome header on first render
			welcome := renderWelcome(m.version, m.cfg.Server, m.targetLabel(), m.width)
			cmds = append(cmds, tea.Println(welcome))
			if n := len(m.ctrl.Snapshot().Messages); n == 0 {
				cmds = append(cmds, tea.Println(dimStyle.Render("  Session "+truncateID(m.ctrl.SessionID())+" · /sessions to browse, /new to start over")))
			}
		} else if m.mode == modeStreaming {
			m.preview = m.renderPreview()
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			if m.mode == modeStreaming {
				return m.cancelStreaming()
			}
			return m, tea.Quit

		case tea.KeyEsc:
			if m.mode == modeStreaming {
				return m.cancelStreaming()
			}
			if m.cmdMenuOpen {
				m.cmdMenuOpen = false
				m.cmdMenuIdx = 0
				return m, nil
			}

		case tea.KeyUp:
			if m.mode == modeIdle {
				if m.cmdMenuOpen {
					matches := matchCommands(m.input.Value())
					if len(matches) > 0 {
						m.cmdMenuIdx--
						if m.cmdMenuIdx < 0 {
							m.cmdMenuIdx = len(matches) - 1
						}
						return m, nil
					}
				} else if len(m.history) > 0 {
					// Navigate command history
					if m.historyIdx == -1 {
						// Entering history mode - save current input
						m.historySaved = m.input.Value()
						m.historyIdx = len(m.history) - 1
					} else {
						m.historyIdx--
						if m.historyIdx < 0 {
							m.historyIdx = 0
						}
					}
					m.input.SetValue(m.history[m.historyIdx])
					m.input.CursorEnd()
					return m, nil
				}
			}

		case tea.KeyDown:
			if m.mode == modeIdle {
				if m.cmdMenuOpen {
					matches := matchCommands(m.input.Value())
					if len(matches) > 0 {
						m.cmdMenuIdx++
						if m.cmdMenuIdx >= len(matches) {
							m.cmdMenuIdx = 0
						}
						return m, nil
					}
				} else if m.historyIdx != -1 {
					m.historyIdx++
					if m.historyIdx >= len(m.history) {
						// Exit history mode - restore saved input
						m.historyIdx = -1
						m.input.SetValue(m.historySaved)
						m.historySaved = ""
					} else {
						m.input.SetValue(m.history[m.historyIdx])
					}
					m.input.CursorEnd()
					return m, nil
				}
			}

		case tea.KeyTab:
			if m.mode == modeIdle && m.cmdMenuOpen {
				matches := matchCommands(m.input.Value())
				if len(matches) > 0 {
					idx := m.cmdMenuIdx
					if idx < 0 || idx >= len(matches) {
						idx = 0
					}
					m.input.SetValue(matches[idx].name + " ")
					m.input.CursorEnd()
					m.cmdMenuOpen = false
					m.cmdMenuIdx = 0
				}
				return m, nil
			}

		case tea.KeyEnter:
			if m.mode == modeStreaming {
				return m, nil
			}
			// If command menu is open and an item is selected, pick it
			if m.cmdMenuOpen && m.cmdMenuIdx >= 0 {
				matches := matchCommands(m.input.Value())
				if m.cmdMenuIdx < len(matches) && matches[m.cmdMenuIdx].name != strings.TrimSpace(m.input.Value()) {
					m.input.SetValue(matches[m.cmdMenuIdx].name + " ")
					m.input.CursorEnd()
					m.cmdMenuOpen = false
					m.cmdMenuIdx = 0
					return m, nil
				}
			}

			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}

			// Add to history (avoid duplicates if same as last command)
			if len(m.history) == 0 || m.history[len(m.history)-1] != value {
				m.history = append(m.history, value)
				if len(m.history) > 1000 {
					m.history = m.history[len(m.history)-1000:]
				}
			}
			m.historyIdx = -1
			m.historySaved = ""

			m.input.SetValue("")
			m.cmdMenuOpen = false
			m.cmdMenuIdx = 0

			return m.dispatchInput(value)
		}

	// ── Turn messages ─────────────────────────────────────────────────
	case turnUpdateMsg:
		if msg.turn != m.turn || m.mode != modeStreaming {
			return m, nil
		}
		m.snap = msg.update.Snapshot
		m.preview = m.renderPreview()
		if n := m.refresh.Load(); n != m.refreshSeen {
			m.refreshSeen = n
			cmds = append(cmds, m.loadSessions(true))
		}
		cmds = append(cmds, waitForTurn(m.turnCh, msg.turn))
		return m, tea.Batch(cmds...)

	case turnDoneMsg:
		if msg.turn != m.turn || m.mode != modeStreaming {
			return m, nil
		}
		return m.finishTurn(msg.err)

	// ── Async results ─────────────────────────────────────────────────
	case sessionsLoadedMsg:
		return m.handleSessionsLoaded(msg)

	case agentsLoadedMsg:
		return m.handleAgentsLoaded(msg)

	case sessionOpenedMsg:
		return m.handleSessionOpened(msg)

	case sessionDeletedMsg:
		return m.handleSessionDeleted(msg)

	case sessionRenamedMsg:
		return m.handleSessionRenamed(msg)

	case downloadDoneMsg:
		return m.handleDownloadDone(msg)

	case exportDoneMsg:
		return m.handleExportDone(msg)
	}

	// Update sub-components
	var cmd tea.Cmd

	if m.mode != modeStreaming {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	// Track input changes to open/close command menu and reset selection
	newVal := m.input.Value()
	if newVal != m.lastInputVal {
		m.lastInputVal = newVal
		// Exit history mode when the user edits the recalled entry
		if m.historyIdx != -1 {
			if m.historyIdx < len(m.history) && m.history[m.historyIdx] != newVal {
				m.historyIdx = -1
				m.historySaved = ""
			}
		}
		m.cmdMenuOpen = strings.HasPrefix(newVal, "/") && !strings.Contains(newVal, " ")
		m.cmdMenuIdx = 0
	}

	return m, tea.Batch(cmds...)
}

// ─── View ───────────────────────────────────────────────────────────────────
//
// Inline mode: View() shows the live turn (tools and partial answer) or the
// input prompt, plus hints. Finished output is printed above via tea.Println.

func (m model) View() string {
	if !m.ready {
		return ""
	}

	var s strings.Builder

	if m.mode == modeStreaming {
		if panel := renderToolPanel(m.snap.Tools, m.agentLabel(), m.width); panel != "" {
			s.WriteString(panel)
			s.WriteString("\n")
		}
		if m.preview != "" {
			s.WriteString(m.preview)
			s.WriteString("\n")
		}
		s.WriteString(m.spinner.View() + " " + statusStyle.Render(m.streamStatus()))
	} else {
		s.WriteString(m.input.View())
	}
	s.WriteString("\n")

	// Separator
	sepWidth := min(m.width, 80)
	if sepWidth < 20 {
		sepWidth = 20
	}
	s.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	s.WriteString("\n")

	s.WriteString(m.renderHints())

	return s.String()
}

// streamStatus is the spinner line text for the running turn.
func (m model) streamStatus() string {
	if n := service.RunningCount(m.snap.Tools); n > 0 {
		if n == 1 {
			return "Running 1 tool..."
		}
		return fmt.Sprintf("Running %d tools...", n)
	}
	if m.snap.CurrentAgent != "" {
		return m.snap.CurrentAgent + " is responding..."
	}
	return "Thinking..."
}

// renderPreview renders the in-progress answer, keeping only as many
// trailing lines as fit above the prompt.
func (m model) renderPreview() string {
	i := m.snap.LastAssistant()
	if i < 0 || m.stab == nil {
		return ""
	}
	content := m.snap.Messages[i].Content
	if service.IsTrivialContent(content) {
		return ""
	}
	out := m.stab.Render(render.SlotKey(m.snap.SessionID, i), content)
	rendered := renderAssistant(out, m.width)

	budget := 20
	if m.height > 0 {
		budget = max(m.height-8-len(m.snap.Tools), 3)
	}
	return tailLines(rendered, budget)
}

// ─── Hint bar ───────────────────────────────────────────────────────────────

func (m model) renderHints() string {
	if m.mode == modeStreaming {
		return hintBarStyle.Render("  Esc cancel")
	}

	if m.cmdMenuOpen {
		matches := matchCommands(m.input.Value())
		if len(matches) > 0 {
			return m.renderCommandMenu(matches)
		}
	}

	return hintBarStyle.Render("  ? for help · " + m.targetLabel())
}

// renderCommandMenu renders a vertical list of matching commands.
func (m model) renderCommandMenu(matches []slashCmd) string {
	maxLen := 0
	for _, c := range matches {
		if len(c.name) > maxLen {
			maxLen = len(c.name)
		}
	}

	var lines []string
	for i, c := range matches {
		padded := c.name + strings.Repeat(" ", maxLen-len(c.name))

		var line string
		if i == m.cmdMenuIdx {
			line = "  " + cmdSelectedNameStyle.Render(padded) + "  " + cmdSelectedDescStyle.Render(c.desc)
		} else {
			line = "  " + cmdNameStyle.Render(padded) + "  " + cmdDescStyle.Render(c.desc)
		}
		lines = append(lines, line)
	}

	lines = append(lines, hintBarStyle.Render("  ↑↓ navigate  Tab/Enter select"))

	return strings.Join(lines, "\n")
}

// matchCommands returns all slash commands matching a prefix.
func matchCommands(prefix string) []slashCmd {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "/" {
		return slashCommands
	}
	var matches []slashCmd
	for _, c := range slashCommands {
		if strings.HasPrefix(c.name, prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// targetLabel names who the next message goes to.
func (m model) targetLabel() string {
	if m.ctrl == nil {
		return ""
	}
	if m.ctrl.Mode() == chat.ModeTeam {
		return "👥 team " + m.cfg.TeamID()
	}
	return "🤖 " + m.agentLabel()
}

// agentLabel is the display name of the selected agent.
func (m model) agentLabel() string {
	id := m.ctrl.Agent()
	if len(m.agents) > 0 {
		return service.AgentName(m.agents, id)
	}
	return id
}

func (m model) resolveAsset(path string) string {
	if m.client == nil {
		return path
	}
	return m.client.ResolveAsset(path)
}

func (m *model) resetTurnState() {
	if m.cancelTurn != nil {
		m.cancelTurn()
	}
	m.cancelTurn = nil
	m.turnCh = nil
	m.snap = chat.Snapshot{}
	m.preview = ""
}
