package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path"
	"strconv"
	"strings"
	"time"

	"agentchat-cli/internal/api"
	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/config"
	"agentchat-cli/internal/display"
	"agentchat-cli/internal/export"
	"agentchat-cli/internal/identity"
	"agentchat-cli/internal/observability"
	"agentchat-cli/internal/render"
	"agentchat-cli/internal/service"
	"agentchat-cli/internal/store"
	"agentchat-cli/internal/tui"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	activeProfile string
	jsonOutput    bool
)

func main() {
	args := os.Args[1:]

	// Parse global flags first (--profile)
	args = parseGlobalFlags(args)

	// No args → launch interactive mode (default)
	if len(args) == 0 || args[0] == "-i" || args[0] == "--interactive" || args[0] == "interactive" {
		if err := runInteractive(); err != nil {
			display.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	var err error

	switch args[0] {
	case "set":
		err = cmdSet(args[1:])
	case "config":
		err = cmdConfig()
	case "ask", "chat":
		err = cmdAsk(args[1:])
	case "agents":
		err = cmdAgents()
	case "sessions":
		err = cmdSessions(args[1:])
	case "history":
		err = cmdHistory(args[1:])
	case "rename":
		err = cmdRename(args[1:])
	case "delete":
		err = cmdDelete(args[1:])
	case "download":
		err = cmdDownload(args[1:])
	case "export":
		err = cmdExport(args[1:])
	case "link":
		err = cmdLink(args[1:])
	case "profiles":
		err = cmdProfiles()
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Println(versionString())
	default:
		display.Error(fmt.Sprintf("Unknown command: %s", args[0]))
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		display.Error(err.Error())
		os.Exit(1)
	}
}

// ─── wiring ─────────────────────────────────────────────────────────────────

// app holds what every backend command needs, built from the active profile.
type app struct {
	cfg      *config.Config
	client   *api.Client
	ident    *identity.Context
	closeLog func() error
	state    *store.Store
}

func newApp() (*app, error) {
	cfg, err := config.Load(activeProfile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	closeLog, err := observability.Setup(logPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	observability.Logger().Debug("starting", "version", version, "profile", config.ProfileName(activeProfile))

	ident := identity.New(identity.EnvSource{}, cfg.UserTimeout())
	ident.Start(context.Background())
	ident.OnReady(func(u identity.User) {
		observability.Logger().Debug("user resolved", "known", !u.Unknown())
	})

	return &app{
		cfg:      cfg,
		client:   api.NewClient(cfg),
		ident:    ident,
		closeLog: closeLog,
	}, nil
}

// openState opens the local state database on first use.
func (a *app) openState() (*store.Store, error) {
	if a.state != nil {
		return a.state, nil
	}
	p, err := a.cfg.StatePath()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(p)
	if err != nil {
		return nil, err
	}
	a.state = st
	return st, nil
}

func (a *app) Close() {
	if a.state != nil {
		a.state.Close()
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}

func (a *app) transformer() *render.Transformer {
	return render.New(render.Paths{AssetBase: a.cfg.AssetBasePath()}, render.WithLogger(observability.Logger()))
}

// controller builds a chat controller bound to the persisted active session.
func (a *app) controller(ctx context.Context, opts ...chat.Option) (*chat.Controller, error) {
	st, err := a.openState()
	if err != nil {
		return nil, err
	}
	mode, _ := chat.ParseMode(a.cfg.Mode)
	base := []chat.Option{
		chat.WithStore(st),
		chat.WithUserID(a.ident.UserID),
		chat.WithAgent(a.cfg.AgentID()),
	}
	if mode != "" {
		base = append(base, chat.WithMode(mode))
	}
	ctrl := chat.NewController(chat.APIBackend{Client: a.client}, append(base, opts...)...)
	if err := ctrl.RestoreSession(ctx); err != nil {
		observability.Logger().Warn("restoring active session failed", "error", err)
	}
	return ctrl, nil
}

// activeSession is the persisted session id, or "" if none.
func (a *app) activeSession(ctx context.Context) string {
	st, err := a.openState()
	if err != nil {
		return ""
	}
	id, _, err := st.Get(ctx, chat.KeySessionID)
	if err != nil {
		return ""
	}
	return id
}

// resolveSession turns an id, id prefix or web UI URL into a session id and
// its type. The type comes from the URL when present, otherwise from the
// session listing, otherwise the agent type is assumed.
func (a *app) resolveSession(ctx context.Context, ref string) (string, api.SessionType, error) {
	id, typ := service.ResolveSessionRef(ref)
	if id == "" {
		return "", "", fmt.Errorf("no session given")
	}
	if typ != "" {
		return id, api.SessionType(typ), nil
	}
	sessions, err := a.client.ListAllSessions(ctx, api.DefaultSessionLimit)
	if err != nil {
		observability.Logger().Warn("listing sessions for lookup failed", "error", err)
	}
	if rec, ok := service.FindSession(sessions, id); ok {
		return rec.SessionID, rec.Type, nil
	}
	return id, api.SessionAgent, nil
}

// ─── interactive ────────────────────────────────────────────────────────────

func runInteractive() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	refresh := &tui.RefreshCounter{}
	ctrl, err := a.controller(context.Background(), chat.WithFirstEventHook(refresh.Bump))
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Config:     a.cfg,
		Client:     a.client,
		Controller: ctrl,
		Stabilizer: render.NewStabilizer(a.transformer()),
		Refresh:    refresh,
		Version:    version,
		Profile:    activeProfile,
	})
}

// ─── set ────────────────────────────────────────────────────────────────────

func cmdSet(args []string) error {
	if len(args) < 2 {
		fmt.Println("Usage: agentchat set <key> <value>")
		fmt.Println()
		fmt.Println("Keys:")
		fmt.Println("  server      Agent backend URL       (e.g. http://localhost:7777)")
		fmt.Println("  web         Web origin serving generated files (defaults to server)")
		fmt.Println("  asset-base  Asset path prefix       (default /agentplatform/api)")
		fmt.Println("  team        Team id for team mode   (default creative-team)")
		fmt.Println("  agent       Default agent id        (default research-agent)")
		fmt.Println("  mode        agent or team")
		fmt.Println("  log-level   debug, info, warn, error")
		fmt.Println("  log-file    Log file path")
		return nil
	}

	// Env overrides are not persisted.
	cfg, err := config.LoadFile(activeProfile)
	if err != nil {
		return err
	}

	key, value := args[0], strings.Join(args[1:], " ")
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	display.Success(fmt.Sprintf("%s set to %s", key, value))
	return nil
}

// ─── config ─────────────────────────────────────────────────────────────────

func cmdConfig() error {
	cfg, err := config.Load(activeProfile)
	if err != nil {
		return err
	}

	notSet := display.Dim + "(not set)" + display.Reset
	val := func(s string) string {
		if s == "" {
			return notSet
		}
		return s
	}

	display.Header("AgentChat CLI Configuration")

	display.Info("Profile:", config.ProfileName(activeProfile))
	display.Info("Server:", val(cfg.Server))
	display.Info("Web URL:", val(cfg.WebOrigin()))
	display.Info("Asset base:", cfg.AssetBasePath())
	display.Info("Team:", cfg.TeamID())
	display.Info("Agent:", cfg.AgentID())
	mode, _ := chat.ParseMode(cfg.Mode)
	if mode == "" {
		mode = chat.ModeAgent
	}
	display.Info("Mode:", display.ModeLabel(mode))
	display.Info("Log level:", val(cfg.LogLevel))
	if p, err := cfg.StatePath(); err == nil {
		display.Info("State:", p)
	}
	if p, err := cfg.LogPath(); err == nil {
		display.Info("Log:", p)
	}
	fmt.Println()

	return nil
}

// ─── ask ────────────────────────────────────────────────────────────────────

func cmdAsk(args []string) error {
	var sessionRef, agentID string
	var team, fresh, markdown bool
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-s", "--session":
			if i+1 >= len(args) {
				return fmt.Errorf("--session requires a value")
			}
			i++
			sessionRef = args[i]
		case "-a", "--agent":
			if i+1 >= len(args) {
				return fmt.Errorf("--agent requires a value")
			}
			i++
			agentID = args[i]
		case "--team":
			team = true
		case "--new":
			fresh = true
		case "-m", "--markdown":
			markdown = true
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) == 0 {
		fmt.Println(`Usage: agentchat ask "<message>" [--session <id|url>] [--agent <id>] [--team] [--new] [--markdown]`)
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println(`  agentchat ask "Summarize the latest AI news"`)
		fmt.Println(`  agentchat ask "Make a slide deck from that" --team`)
		return nil
	}
	message := strings.Join(positional, " ")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts []chat.Option
	if agentID != "" {
		opts = append(opts, chat.WithAgent(agentID), chat.WithMode(chat.ModeAgent))
	}
	if team {
		opts = append(opts, chat.WithMode(chat.ModeTeam))
	}
	ctrl, err := a.controller(ctx, opts...)
	if err != nil {
		return err
	}

	switch {
	case sessionRef != "":
		id, typ, err := a.resolveSession(ctx, sessionRef)
		if err != nil {
			return err
		}
		if err := ctrl.LoadSession(ctx, id, nil); err != nil {
			return err
		}
		if mode, ok := chat.ParseMode(string(typ)); ok && !team && agentID == "" {
			ctrl.SetMode(mode)
		}
	case fresh:
		if _, err := ctrl.NewSession(ctx); err != nil {
			return err
		}
	}

	target := ctrl.Agent()
	if ctrl.Mode() == chat.ModeTeam {
		target = "team " + a.cfg.TeamID()
	}
	fmt.Println()
	fmt.Printf("  %s%s%s  %s%s%s\n", display.Bold, display.ModeLabel(ctrl.Mode()), display.Reset, display.Dim, target, display.Reset)
	fmt.Printf("  %sSession:%s %s\n\n", display.Dim, display.Reset, ctrl.SessionID())

	printer := display.NewTurnPrinter(os.Stdout)
	emit := printer.Handle
	if markdown {
		display.Spinner("Waiting for the answer...")
		emit = nil
	}

	err = ctrl.RunTurn(ctx, message, emit)
	if markdown {
		display.ClearLine()
	}
	if ctx.Err() != nil {
		fmt.Println()
		display.Warn("Cancelled.")
		return nil
	}

	snap := ctrl.Snapshot()
	i := snap.LastAssistant()
	if err != nil {
		if markdown {
			return err
		}
		return nil // already printed by the printer
	}
	if i < 0 {
		display.Warn("No response.")
		return nil
	}

	stab := render.NewStabilizer(a.transformer())
	out := stab.Render(render.SlotKey(snap.SessionID, i), snap.Messages[i].Content)
	if markdown {
		fmt.Println(display.RenderMarkdown(out.Markdown, 100))
		display.PrintResources(os.Stdout, out.Resources, a.client.ResolveAsset)
	} else {
		printer.Finish(out, a.client.ResolveAsset)
	}

	fmt.Printf("\n  %sTip:%s Run %sagentchat ask \"...\"%s to continue this session.\n\n",
		display.Dim, display.Reset, display.Cyan, display.Reset)
	return nil
}

// ─── agents ─────────────────────────────────────────────────────────────────

func cmdAgents() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	agents, err := a.client.ListAgents(ctx)
	if err != nil {
		display.Warn(fmt.Sprintf("Agent list unavailable: %v", err))
	}
	choices := service.AgentChoices(agents, err)
	if jsonOutput {
		return printJSON(choices)
	}

	display.Header(fmt.Sprintf("Agents (%d)", len(choices)))
	display.PrintAgents(os.Stdout, choices, a.cfg.AgentID())
	fmt.Printf("\n  %sTip:%s Run %sagentchat set agent <id>%s to change the default.\n\n",
		display.Dim, display.Reset, display.Cyan, display.Reset)
	return nil
}

// ─── sessions ───────────────────────────────────────────────────────────────

func cmdSessions(args []string) error {
	limit := api.DefaultSessionLimit

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-n", "--limit":
			if i+1 < len(args) {
				i++
				n, err := strconv.Atoi(args[i])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid limit: %s", args[i])
				}
				limit = n
			}
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessions, err := a.client.ListAllSessions(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(service.GroupByDay(sessions, time.Now()))
	}

	display.Header(fmt.Sprintf("Sessions (%d)", len(sessions)))
	display.PrintSessionGroups(os.Stdout, service.GroupByDay(sessions, time.Now()), a.activeSession(ctx))

	fmt.Println()
	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("  %sTip:%s Run %sagentchat history <session-id>%s to read a session.\n\n",
		display.Dim, display.Reset, display.Cyan, display.Reset)
	return nil
}

// ─── history ────────────────────────────────────────────────────────────────

func cmdHistory(args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ref := ""
	if len(args) > 0 {
		ref = args[0]
	} else if ref = a.activeSession(ctx); ref == "" {
		fmt.Println("Usage: agentchat history <session-id|url>")
		return nil
	}

	id, typ, err := a.resolveSession(ctx, ref)
	if err != nil {
		return err
	}
	runs, err := a.client.SessionRuns(ctx, id, typ)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("session %s not found", id)
		}
		return fmt.Errorf("loading session: %w", err)
	}
	msgs := chat.HistoryFromRuns(runs)
	if jsonOutput {
		return printJSON(historyJSON(a.transformer(), id, typ, msgs))
	}

	display.Header(fmt.Sprintf("Session %s", id))
	display.Info("Type:", string(typ))
	display.Info("Messages:", strconv.Itoa(len(msgs)))
	display.PrintHistory(os.Stdout, msgs, a.transformer(), a.client.ResolveAsset, 100)
	fmt.Println()
	return nil
}

type historyEntry struct {
	Role      chat.Role         `json:"role"`
	Content   string            `json:"content"`
	Text      string            `json:"text,omitempty"`
	Resources []render.Resource `json:"resources,omitempty"`
}

type historyDoc struct {
	SessionID string          `json:"session_id"`
	Type      api.SessionType `json:"type"`
	Messages  []historyEntry  `json:"messages"`
}

// historyJSON lists each message with the resources found in it. Assistant
// messages also carry their prose as plain text, with resource references
// already pulled out.
func historyJSON(t *render.Transformer, id string, typ api.SessionType, msgs []chat.Message) historyDoc {
	doc := historyDoc{SessionID: id, Type: typ, Messages: []historyEntry{}}
	for _, m := range msgs {
		e := historyEntry{Role: m.Role, Content: m.Content}
		if m.Role == chat.RoleAssistant {
			out := t.Transform(m.Content)
			e.Text = service.PlainText(out.Text)
			e.Resources = out.Resources
		}
		doc.Messages = append(doc.Messages, e)
	}
	return doc
}

// ─── rename / delete ────────────────────────────────────────────────────────

func cmdRename(args []string) error {
	if len(args) < 2 {
		fmt.Println("Usage: agentchat rename <session-id|url> <new name>")
		return nil
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, typ, err := a.resolveSession(ctx, args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")
	if err := a.client.RenameSession(ctx, id, typ, name); err != nil {
		return fmt.Errorf("renaming session: %w", err)
	}
	display.Success(fmt.Sprintf("Renamed %s to %q", id, name))
	return nil
}

func cmdDelete(args []string) error {
	if len(args) < 1 {
		fmt.Println("Usage: agentchat delete <session-id|url>")
		return nil
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, typ, err := a.resolveSession(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.client.DeleteSession(ctx, id, typ); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	display.Success(fmt.Sprintf("Deleted session %s", id))

	// Deleting the active session starts a fresh one next time.
	if id == a.activeSession(ctx) {
		if st, err := a.openState(); err == nil {
			st.Delete(ctx, chat.KeySessionID)
		}
	}
	return nil
}

// ─── download ───────────────────────────────────────────────────────────────

func cmdDownload(args []string) error {
	if len(args) < 1 {
		fmt.Println("Usage: agentchat download <asset-path|url> [file]")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  agentchat download /agentplatform/api/download/report.pdf")
		fmt.Println("  agentchat download /agentplatform/api/images/cat.png cat.png")
		return nil
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	src := args[0]
	dest := downloadName(src)
	if len(args) > 1 {
		dest = args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	display.Spinner("Downloading " + dest + "...")
	n, err := a.client.Download(ctx, src, f)
	display.ClearLine()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("file no longer exists: %s", a.client.ResolveAsset(src))
		}
		return fmt.Errorf("downloading: %w", err)
	}

	display.Success(fmt.Sprintf("Saved %s (%d bytes)", dest, n))
	return nil
}

// downloadName is the local file name for an asset path or URL, with the
// percent-encoding removed.
func downloadName(src string) string {
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	base := path.Base(src)
	if decoded, err := url.PathUnescape(base); err == nil {
		base = decoded
	}
	if base == "." || base == "/" || base == "" {
		return "download"
	}
	return base
}

// ─── export ─────────────────────────────────────────────────────────────────

func cmdExport(args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ref := ""
	if len(args) > 0 {
		ref = args[0]
	} else if ref = a.activeSession(ctx); ref == "" {
		fmt.Println("Usage: agentchat export <session-id|url> [file.html]")
		return nil
	}

	id, typ, err := a.resolveSession(ctx, ref)
	if err != nil {
		return err
	}
	runs, err := a.client.SessionRuns(ctx, id, typ)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	msgs := chat.HistoryFromRuns(runs)
	if len(msgs) == 0 {
		display.Warn("Session has no messages.")
		return nil
	}

	now := time.Now()
	dest := export.DefaultFilename(id, now)
	if len(args) > 1 {
		dest = args[1]
	}

	mode, _ := chat.ParseMode(string(typ))
	t := export.Transcript{
		SessionID: id,
		Mode:      mode,
		Agent:     a.cfg.AgentID(),
		BaseURL:   a.cfg.WebOrigin(),
		Exported:  now,
		Messages:  msgs,
	}
	if mode == chat.ModeTeam {
		t.Agent = a.cfg.TeamID()
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	err = export.Write(f, t, render.NewStabilizer(a.transformer()))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	display.Success(fmt.Sprintf("Exported %d messages to %s", len(msgs), dest))
	return nil
}

// ─── link ───────────────────────────────────────────────────────────────────

func cmdLink(args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ref := a.activeSession(ctx)
	if len(args) > 0 {
		ref = args[0]
	}
	if ref == "" {
		fmt.Println("Usage: agentchat link [session-id]")
		return nil
	}
	id, typ, err := a.resolveSession(ctx, ref)
	if err != nil {
		return err
	}
	fmt.Println(service.BuildSessionURL(a.cfg.WebOrigin(), id, string(typ)))
	return nil
}

// ─── profiles ───────────────────────────────────────────────────────────────

func cmdProfiles() error {
	profiles, err := config.ListProfiles()
	if err != nil {
		return err
	}

	display.Header(fmt.Sprintf("Profiles (%d)", len(profiles)))

	if len(profiles) == 0 {
		display.Warn("No profiles found.")
		return nil
	}

	for _, p := range profiles {
		marker := " "
		if p == config.ProfileName(activeProfile) {
			marker = display.Green + "●" + display.Reset
		}
		fmt.Printf("  %s %s\n", marker, p)
	}
	fmt.Println()

	return nil
}

// ─── helpers ────────────────────────────────────────────────────────────────

func parseGlobalFlags(args []string) []string {
	var remaining []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--profile":
			if i+1 < len(args) {
				i++
				activeProfile = args[i]
			}
			continue
		case "-j", "--json":
			jsonOutput = true
			continue
		}
		remaining = append(remaining, args[i])
	}
	return remaining
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func versionString() string {
	s := "agentchat " + version
	if commit != "none" {
		s += fmt.Sprintf("\n  commit: %s\n  built:  %s", commit, date)
	}
	return s
}

// ─── usage ──────────────────────────────────────────────────────────────────

func printUsage() {
	fmt.Printf(`%sAgentChat CLI%s: terminal client for agent and team chat (v%s)

%sUsage:%s
  agentchat                                            Launch interactive mode (default)
  agentchat [--profile <name>] <command> [arguments]   Run a specific command

%sGetting Started:%s
  set server <url>            Point at the agent backend
  set web <url>               Web origin serving generated files (optional)
  config                      Show current configuration
  agents                      List available agents

%sChat:%s
  ask "<message>"             Send one message and stream the answer
    -s, --session <id|url>    Continue a specific session
    -a, --agent <id>          Talk to this agent
    --team                    Talk to the whole team
    --new                     Start a new session
    -m, --markdown            Render the final answer as Markdown

%sSessions:%s
  sessions                    List sessions grouped by day
    -n, --limit <count>       Sessions per type (default: 100)
  history [id|url]            Show a session's conversation (default: active)
  rename <id|url> <name>      Rename a session
  delete <id|url>             Delete a session
  link [id]                   Web UI URL for a session
  export [id|url] [file]      Export a session as standalone HTML
  download <path|url> [file]  Download a generated file

%sProfiles:%s
  profiles                    List all config profiles
  --profile <name>            Use a named config profile (default: unnamed)
  -j, --json                  JSON output for agents, sessions and history

%sExamples:%s
  agentchat set server http://localhost:7777
  agentchat ask "What's new in Go 1.24?"
  agentchat ask "Turn that into slides" --team
  agentchat sessions
  agentchat export 3f2a91c0 notes.html
  agentchat --profile staging

`, display.Bold, display.Reset, version,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset,
		display.Cyan, display.Reset)
}
