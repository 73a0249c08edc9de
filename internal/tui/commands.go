package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"agentchat-cli/internal/api"
	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/config"
	"agentchat-cli/internal/display"
	"agentchat-cli/internal/export"
	"agentchat-cli/internal/observability"
	"agentchat-cli/internal/render"
	"agentchat-cli/internal/service"

	tea "github.com/charmbracelet/bubbletea"
)

// requestTimeout bounds every non-streaming call made from the TUI.
const requestTimeout = 30 * time.Second

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// ─── Input dispatcher ───────────────────────────────────────────────────────

func (m model) dispatchInput(input string) (tea.Model, tea.Cmd) {
	if input == "?" {
		return m.cmdHelp()
	}
	if strings.HasPrefix(input, "/") {
		return m.dispatchCommand(input)
	}
	return m.cmdSend(input)
}

func (m model) dispatchCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help", "/h":
		return m.cmdHelp()
	case "/new":
		return m.cmdNew()
	case "/sessions":
		return m.cmdSessions(args)
	case "/session":
		return m.cmdOpenSession(args)
	case "/agents":
		return m.cmdAgents()
	case "/agent":
		return m.cmdAgent(args)
	case "/team":
		return m.cmdMode([]string{string(chat.ModeTeam)})
	case "/mode":
		return m.cmdMode(args)
	case "/rename":
		return m.cmdRename(args)
	case "/delete":
		return m.cmdDelete(args)
	case "/download":
		return m.cmdDownload(args)
	case "/export":
		return m.cmdExport(args)
	case "/link":
		return m.cmdLink()
	case "/config":
		return m.cmdConfig()
	case "/clear":
		return m.cmdClear()
	case "/quit", "/exit", "/q":
		m.ctrl.Cancel()
		return m, tea.Quit
	default:
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Unknown command: %s (type /help)", cmd)))
	}
}

// ─── /help ──────────────────────────────────────────────────────────────────

func (m model) cmdHelp() (tea.Model, tea.Cmd) {
	pad := func(s string, w int) string {
		for len(s) < w {
			s += " "
		}
		return s
	}
	row := func(cmd, desc string) tea.Cmd {
		return tea.Println("  " + pad(hintKeyStyle.Render(cmd), 30) + dimStyle.Render(desc))
	}

	lines := []tea.Cmd{
		tea.Println(""),
		tea.Println(dimStyle.Render("  Shortcuts:")),
		tea.Println(""),
		row("/new", "Start a new conversation"),
		row("/sessions [all]", "List recent sessions by day"),
		row("/session <id|url>", "Open a session and show its history"),
		row("/agents", "List available agents"),
		row("/agent <id|name>", "Talk to a single agent"),
		row("/team", "Talk to the whole team"),
		row("/mode [agent|team]", "Show or set the mode"),
		row("/rename <name>", "Rename the current session"),
		row("/delete [id]", "Delete a session (default: current)"),
		row("/download <n> [file]", "Download resource n of the last answer"),
		row("/export [file]", "Export the conversation as HTML"),
		row("/link", "Web UI URL for this session"),
		row("/config", "Show current configuration"),
		row("/clear", "Clear the screen"),
		row("/quit", "Exit AgentChat"),
		tea.Println(""),
		tea.Println(dimStyle.Render("  Esc cancels a streaming response. Anything else is sent as a message.")),
		tea.Println(""),
	}
	return m, tea.Sequence(lines...)
}

// ─── Sending ────────────────────────────────────────────────────────────────

func (m model) cmdSend(text string) (tea.Model, tea.Cmd) {
	if m.ctrl.InFlight() {
		return m, tea.Println(warnMsgStyle.Render("  ! " + chat.ErrTurnInFlight.Error()))
	}

	m.turn++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelTurn = cancel
	m.mode = modeStreaming
	m.snap = m.ctrl.Snapshot()
	m.preview = ""
	m.lastResources = nil

	ch, wait := beginTurn(ctx, m.ctrl, m.turn, text)
	m.turnCh = ch

	return m, tea.Batch(
		tea.Println("\n"+userPromptStyle.Render("❯ ")+text),
		wait,
		m.spinner.Tick,
	)
}

// finishTurn prints the settled answer above the prompt.
func (m model) finishTurn(err error) (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()
	m.mode = modeIdle
	m.resetTurnState()

	var cmds []tea.Cmd
	if label := snap.CurrentAgent; label != "" {
		cmds = append(cmds, tea.Println(agentLabelStyle.Render("  🤖 "+label)))
	}
	if summary := renderToolSummary(snap.Tools); summary != "" {
		cmds = append(cmds, tea.Println(summary))
	}

	switch i := snap.LastAssistant(); {
	case err != nil:
		m.forgetTurnSlots(snap)
		cmds = append(cmds, tea.Println(errorMsgStyle.Render("  ✗ "+err.Error())))
	case i < 0:
		cmds = append(cmds, tea.Println(warnMsgStyle.Render("  ! No response.")))
	default:
		out := m.stab.Render(render.SlotKey(snap.SessionID, i), snap.Messages[i].Content)
		if text := renderAssistant(out, m.width); text != "" {
			cmds = append(cmds, tea.Println(text))
		}
		if res := renderResources(out.Resources, m.resolveAsset); res != "" {
			cmds = append(cmds,
				tea.Println(res),
				tea.Println(dimStyle.Render("  Tip: /download <n> to save a resource")),
			)
		}
		m.lastResources = out.Resources
	}

	cmds = append(cmds, tea.Println(""))
	return m, tea.Sequence(cmds...)
}

// forgetTurnSlots drops the cached render state of the latest turn's replies.
// A failed turn is reported as an error only, so its partial preview is gone.
func (m model) forgetTurnSlots(snap chat.Snapshot) {
	for i := len(snap.Messages) - 1; i >= 0 && snap.Messages[i].Role != chat.RoleUser; i-- {
		m.stab.Forget(render.SlotKey(snap.SessionID, i))
	}
}

// cancelStreaming stops the running turn and keeps whatever had arrived.
func (m model) cancelStreaming() (tea.Model, tea.Cmd) {
	m.ctrl.Cancel()
	snap := m.ctrl.Snapshot()
	m.mode = modeIdle
	m.resetTurnState()

	var cmds []tea.Cmd
	if i := snap.LastAssistant(); i >= 0 && !service.IsTrivialContent(snap.Messages[i].Content) {
		out := m.stab.Render(render.SlotKey(snap.SessionID, i), snap.Messages[i].Content)
		if text := renderAssistant(out, m.width); text != "" {
			cmds = append(cmds, tea.Println(text))
		}
	}
	cmds = append(cmds, tea.Println(warnMsgStyle.Render("  ! Response cancelled.")))
	return m, tea.Sequence(cmds...)
}

// ─── /new ───────────────────────────────────────────────────────────────────

func (m model) cmdNew() (tea.Model, tea.Cmd) {
	ctx, cancel := requestContext()
	defer cancel()

	id, err := m.ctrl.NewSession(ctx)
	m.stab.Reset()
	m.lastResources = nil
	if err != nil {
		return m, tea.Println(warnMsgStyle.Render(fmt.Sprintf("  ! New session %s not saved: %v", truncateID(id), err)))
	}
	return m, tea.Println(successMsgStyle.Render(fmt.Sprintf("  ✓ New session: %s", truncateID(id))))
}

// ─── /sessions ──────────────────────────────────────────────────────────────

type sessionsLoadedMsg struct {
	sessions []api.SessionRecord
	err      error
	quiet    bool // refresh the cache without printing
	all      bool // expand every day group
}

func (m model) loadSessions(quiet bool) tea.Cmd {
	return m.fetchSessions(quiet, false)
}

func (m model) fetchSessions(quiet, all bool) tea.Cmd {
	client := m.client
	if client == nil {
		return nil
	}
	fetch := func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		sessions, err := client.ListAllSessions(ctx, api.DefaultSessionLimit)
		return sessionsLoadedMsg{sessions: sessions, err: err, quiet: quiet, all: all}
	}
	if quiet {
		return fetch
	}
	return tea.Sequence(tea.Println(statusStyle.Render("  ⟳ Loading sessions...")), fetch)
}

func (m model) cmdSessions(args []string) (tea.Model, tea.Cmd) {
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ Not configured. Run: agentchat set server <url>"))
	}
	all := len(args) > 0 && args[0] == "all"
	return m, m.fetchSessions(false, all)
}

func (m model) handleSessionsLoaded(msg sessionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.quiet {
			observability.Logger().Warn("session refresh failed", "error", msg.err)
			return m, nil
		}
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Failed to load sessions: %v", msg.err)))
	}
	m.sessions = msg.sessions
	if msg.quiet {
		return m, nil
	}

	if len(msg.sessions) == 0 {
		return m, tea.Println(warnMsgStyle.Render("  ! No sessions found."))
	}

	active := m.ctrl.SessionID()
	var cmds []tea.Cmd
	cmds = append(cmds, tea.Println(""))

	for _, g := range service.GroupByDay(msg.sessions, time.Now()) {
		if !msg.all && !service.ExpandedByDefault(g.Label) {
			cmds = append(cmds, tea.Println(dayHeaderStyle.Render("  ▸ "+g.Label)+dimStyle.Render(fmt.Sprintf(" (%d)", len(g.Sessions)))))
			continue
		}
		cmds = append(cmds, tea.Println(dayHeaderStyle.Render("  ▾ "+g.Label)))
		for _, s := range g.Sessions {
			marker := " "
			if s.ID == active {
				marker = successMsgStyle.Render("●")
			}
			cmds = append(cmds, tea.Println(fmt.Sprintf("   %s %s %s  %s  %s",
				marker, s.TypeIcon, dimStyle.Render(s.Time), s.Name, dimStyle.Render(truncateID(s.ID)))))
		}
	}

	cmds = append(cmds,
		tea.Println(""),
		tea.Println(dimStyle.Render("  Tip: /session <id> to open · /sessions all to expand older days")),
		tea.Println(""),
	)
	return m, tea.Sequence(cmds...)
}

// ─── /session ───────────────────────────────────────────────────────────────

type sessionOpenedMsg struct {
	id      string
	typ     api.SessionType
	name    string
	history []chat.Message
	err     error
}

func (m model) cmdOpenSession(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m, tea.Sequence(
			tea.Println(fmt.Sprintf("  Session: %s", m.ctrl.SessionID())),
			tea.Println(dimStyle.Render("  Usage: /session <id|prefix|url>")),
		)
	}
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ Not configured. Run: agentchat set server <url>"))
	}

	id, typ := service.ResolveSessionRef(args[0])
	name := ""
	if rec, ok := service.FindSession(m.sessions, id); ok {
		id = rec.SessionID
		name = rec.DisplayName()
		if typ == "" {
			typ = string(rec.Type)
		}
	}
	if typ == "" {
		typ = string(m.ctrl.Mode())
	}

	client := m.client
	sessionType := api.SessionType(typ)
	return m, tea.Sequence(
		tea.Println(statusStyle.Render("  ⟳ Loading session...")),
		func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			runs, err := client.SessionRuns(ctx, id, sessionType)
			if err != nil {
				return sessionOpenedMsg{id: id, err: err}
			}
			return sessionOpenedMsg{id: id, typ: sessionType, name: name, history: chat.HistoryFromRuns(runs)}
		},
	)
}

func (m model) handleSessionOpened(msg sessionOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrNotFound) {
			return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Session %s not found", msg.id)))
		}
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Failed to load session: %v", msg.err)))
	}

	ctx, cancel := requestContext()
	defer cancel()

	var cmds []tea.Cmd
	if err := m.ctrl.LoadSession(ctx, msg.id, msg.history); err != nil {
		cmds = append(cmds, tea.Println(warnMsgStyle.Render(fmt.Sprintf("  ! %v", err))))
	}
	if mode, ok := chat.ParseMode(string(msg.typ)); ok {
		m.ctrl.SetMode(mode)
	}
	m.stab.Reset()
	m.lastResources = nil

	var b strings.Builder
	display.PrintHistory(&b, msg.history, m.stab.Transformer(), m.resolveAsset, min(m.width, 120)-2)

	name := msg.name
	if name == "" {
		name = truncateID(msg.id)
	}
	cmds = append(cmds,
		tea.Println(successMsgStyle.Render(fmt.Sprintf("  ✓ Opened %s (%d messages)", name, len(msg.history)))),
		tea.Println(strings.TrimRight(b.String(), "\n")),
		tea.Println(""),
	)
	return m, tea.Sequence(cmds...)
}

// ─── /agents, /agent, /mode ─────────────────────────────────────────────────

type agentsLoadedMsg struct {
	choices []service.AgentChoice
	err     error
}

func (m model) cmdAgents() (tea.Model, tea.Cmd) {
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ Not configured. Run: agentchat set server <url>"))
	}
	client := m.client
	return m, tea.Sequence(
		tea.Println(statusStyle.Render("  ⟳ Loading agents...")),
		func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			agents, err := client.ListAgents(ctx)
			return agentsLoadedMsg{choices: service.AgentChoices(agents, err), err: err}
		},
	)
}

func (m model) handleAgentsLoaded(msg agentsLoadedMsg) (tea.Model, tea.Cmd) {
	m.agents = msg.choices

	var cmds []tea.Cmd
	if msg.err != nil {
		cmds = append(cmds, tea.Println(warnMsgStyle.Render(fmt.Sprintf("  ! Agent list unavailable (%v), showing the default", msg.err))))
	}

	var b strings.Builder
	display.PrintAgents(&b, msg.choices, m.ctrl.Agent())
	cmds = append(cmds,
		tea.Println(""),
		tea.Println(strings.TrimRight(b.String(), "\n")),
		tea.Println(""),
		tea.Println(dimStyle.Render("  Tip: /agent <id> to switch · /team for the whole team")),
		tea.Println(""),
	)
	return m, tea.Sequence(cmds...)
}

func (m model) cmdAgent(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m, tea.Println(fmt.Sprintf("  Agent: %s %s", m.agentLabel(), dimStyle.Render("("+m.ctrl.Agent()+")")))
	}
	ref := strings.Join(args, " ")
	id := ref
	if c, ok := service.FindAgent(m.agents, ref); ok {
		id = c.ID
	}
	m.ctrl.SetAgent(id)
	m.ctrl.SetMode(chat.ModeAgent)
	return m, tea.Println(successMsgStyle.Render("  ✓ Talking to " + m.agentLabel()))
}

func (m model) cmdMode(args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m, tea.Println(fmt.Sprintf("  Mode: %s · %s", m.ctrl.Mode(), m.targetLabel()))
	}
	mode, ok := chat.ParseMode(strings.ToLower(args[0]))
	if !ok {
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Unknown mode %q (use agent or team)", args[0])))
	}
	m.ctrl.SetMode(mode)
	return m, tea.Println(successMsgStyle.Render("  ✓ Talking to " + m.targetLabel()))
}

// ─── /rename, /delete ───────────────────────────────────────────────────────

type sessionRenamedMsg struct {
	id   string
	name string
	err  error
}

type sessionDeletedMsg struct {
	id  string
	err error
}

// sessionType reports the type a session was listed under, defaulting to
// the current mode.
func (m model) sessionType(id string) api.SessionType {
	if rec, ok := service.FindSession(m.sessions, id); ok && rec.SessionID == id {
		return rec.Type
	}
	return api.SessionType(m.ctrl.Mode())
}

func (m model) cmdRename(args []string) (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return m, tea.Println(errorMsgStyle.Render("  ✗ Usage: /rename <name>"))
	}
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ Not configured. Run: agentchat set server <url>"))
	}

	client := m.client
	id := m.ctrl.SessionID()
	typ := m.sessionType(id)
	return m, func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return sessionRenamedMsg{id: id, name: name, err: client.RenameSession(ctx, id, typ, name)}
	}
}

func (m model) handleSessionRenamed(msg sessionRenamedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Rename failed: %v", msg.err)))
	}
	return m, tea.Batch(
		tea.Println(successMsgStyle.Render(fmt.Sprintf("  ✓ Renamed to %q", msg.name))),
		m.loadSessions(true),
	)
}

func (m model) cmdDelete(args []string) (tea.Model, tea.Cmd) {
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ Not configured. Run: agentchat set server <url>"))
	}
	id := m.ctrl.SessionID()
	if len(args) > 0 {
		id, _ = service.ResolveSessionRef(args[0])
		if rec, ok := service.FindSession(m.sessions, id); ok {
			id = rec.SessionID
		}
	}

	client := m.client
	typ := m.sessionType(id)
	return m, func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return sessionDeletedMsg{id: id, err: client.DeleteSession(ctx, id, typ)}
	}
}

func (m model) handleSessionDeleted(msg sessionDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Delete failed: %v", msg.err)))
	}

	kept := m.sessions[:0:0]
	for _, s := range m.sessions {
		if s.SessionID != msg.id {
			kept = append(kept, s)
		}
	}
	m.sessions = kept

	cmds := []tea.Cmd{tea.Println(successMsgStyle.Render("  ✓ Deleted session " + truncateID(msg.id)))}
	if msg.id == m.ctrl.SessionID() {
		ctx, cancel := requestContext()
		defer cancel()
		id, err := m.ctrl.NewSession(ctx)
		m.stab.Reset()
		m.lastResources = nil
		if err != nil {
			observability.Logger().Warn("persisting new session failed", "error", err)
		}
		cmds = append(cmds, tea.Println(dimStyle.Render("    Started new session "+truncateID(id))))
	}
	return m, tea.Sequence(append(cmds, m.loadSessions(true))...)
}

// ─── /download, /export ─────────────────────────────────────────────────────

type downloadDoneMsg struct {
	path  string
	bytes int64
	err   error
}

func (m model) cmdDownload(args []string) (tea.Model, tea.Cmd) {
	if len(m.lastResources) == 0 {
		return m, tea.Println(warnMsgStyle.Render("  ! The last answer has no resources."))
	}
	if len(args) == 0 {
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Usage: /download <1-%d> [file]", len(m.lastResources))))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(m.lastResources) {
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Pick a resource between 1 and %d", len(m.lastResources))))
	}
	if m.client == nil {
		return m, tea.Println(errorMsgStyle.Render("  ✗ Not configured. Run: agentchat set server <url>"))
	}

	r := m.lastResources[n-1]
	dest := resourceFilename(r)
	if len(args) > 1 {
		dest = args[1]
	}

	client := m.client
	return m, tea.Sequence(
		tea.Println(statusStyle.Render("  ⟳ Downloading "+dest+"...")),
		func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			n, err := downloadTo(ctx, client, r.URL, dest)
			return downloadDoneMsg{path: dest, bytes: n, err: err}
		},
	)
}

// resourceFilename is the local file name a resource is saved under.
func resourceFilename(r render.Resource) string {
	switch {
	case r.Kind == render.KindDownload && r.Filename != "":
		return r.Filename
	case r.Kind == render.KindChart:
		return path.Base(r.URL)
	}
	if base := path.Base(r.URL); base != "." && base != "/" {
		return base
	}
	return "download"
}

func downloadTo(ctx context.Context, client api.ChatAPI, assetPath, dest string) (int64, error) {
	f, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	n, err := client.Download(ctx, assetPath, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return n, err
	}
	return n, nil
}

func (m model) handleDownloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrNotFound) {
			return m, tea.Println(errorMsgStyle.Render("  ✗ File no longer exists on the server"))
		}
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Download failed: %v", msg.err)))
	}
	return m, tea.Println(successMsgStyle.Render(fmt.Sprintf("  ✓ Saved %s (%d bytes)", msg.path, msg.bytes)))
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m model) cmdExport(args []string) (tea.Model, tea.Cmd) {
	snap := m.ctrl.Snapshot()
	if len(snap.Messages) == 0 {
		return m, tea.Println(warnMsgStyle.Render("  ! Nothing to export yet."))
	}

	now := time.Now()
	dest := export.DefaultFilename(snap.SessionID, now)
	if len(args) > 0 {
		dest = args[0]
	}

	t := export.Transcript{
		SessionID: snap.SessionID,
		Mode:      snap.Mode,
		Agent:     m.agentLabel(),
		BaseURL:   m.cfg.WebOrigin(),
		Exported:  now,
		Messages:  snap.Messages,
	}
	if rec, ok := service.FindSession(m.sessions, snap.SessionID); ok && rec.SessionID == snap.SessionID {
		t.Title = rec.DisplayName()
	}

	stab := m.stab
	return m, func() tea.Msg {
		f, err := os.Create(dest)
		if err != nil {
			return exportDoneMsg{path: dest, err: err}
		}
		err = export.Write(f, t, stab)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return exportDoneMsg{path: dest, err: err}
	}
}

func (m model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, tea.Println(errorMsgStyle.Render(fmt.Sprintf("  ✗ Export failed: %v", msg.err)))
	}
	return m, tea.Println(successMsgStyle.Render("  ✓ Exported to " + msg.path))
}

// ─── /link ──────────────────────────────────────────────────────────────────

func (m model) cmdLink() (tea.Model, tea.Cmd) {
	origin := m.cfg.WebOrigin()
	if origin == "" {
		return m, tea.Println(errorMsgStyle.Render("  ✗ No web URL configured. Run: agentchat set web <url>"))
	}
	id := m.ctrl.SessionID()
	link := service.BuildSessionURL(origin, id, string(m.sessionType(id)))
	return m, tea.Println("  " + linkStyle.Render(link))
}

// ─── /config ────────────────────────────────────────────────────────────────

func (m model) cmdConfig() (tea.Model, tea.Cmd) {
	val := func(s string) string {
		if s == "" {
			return dimStyle.Render("(not set)")
		}
		return s
	}

	return m, tea.Sequence(
		tea.Println(""),
		tea.Println(dimStyle.Render("  Configuration:")),
		tea.Println(fmt.Sprintf("    Profile:      %s", config.ProfileName(m.profile))),
		tea.Println(fmt.Sprintf("    Server:       %s", val(m.cfg.Server))),
		tea.Println(fmt.Sprintf("    Web URL:      %s", val(m.cfg.WebOrigin()))),
		tea.Println(fmt.Sprintf("    Asset base:   %s", val(m.cfg.AssetBasePath()))),
		tea.Println(fmt.Sprintf("    Team:         %s", val(m.cfg.TeamID()))),
		tea.Println(fmt.Sprintf("    Agent:        %s", val(m.ctrl.Agent()))),
		tea.Println(fmt.Sprintf("    Mode:         %s", val(string(m.ctrl.Mode())))),
		tea.Println(fmt.Sprintf("    Session:      %s", val(m.ctrl.SessionID()))),
		tea.Println(""),
	)
}

// ─── /clear ─────────────────────────────────────────────────────────────────

func (m model) cmdClear() (tea.Model, tea.Cmd) {
	return m, tea.ClearScreen
}
