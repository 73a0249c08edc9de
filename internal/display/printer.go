package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/render"
	"agentchat-cli/internal/service"
)

// TurnPrinter writes a streaming turn to a plain terminal: assistant text as
// it grows, one line per tool start and finish, and agent hand-offs.
type TurnPrinter struct {
	w io.Writer

	// Assistant content: delta-aware printing
	printed string
	midLine bool

	// Tool lines already written, by index into the turn's tool list
	toolStatus []chat.ToolStatus

	agent string
}

func NewTurnPrinter(w io.Writer) *TurnPrinter {
	if w == nil {
		w = os.Stdout
	}
	return &TurnPrinter{w: w}
}

// Handle is the emit callback for chat.Controller.RunTurn.
func (p *TurnPrinter) Handle(u chat.Update) {
	snap := u.Snapshot

	if snap.CurrentAgent != "" && snap.CurrentAgent != p.agent {
		p.agent = snap.CurrentAgent
		p.line(fmt.Sprintf("  %s🤖 %s%s", Dim, p.agent, Reset))
	}

	p.tools(snap.Tools)

	switch u.Kind {
	case chat.UpdateContent, chat.UpdateDone:
		if i := snap.LastAssistant(); i >= 0 {
			p.content(snap.Messages[i].Content)
		}
	case chat.UpdateError:
		p.endLine()
		fmt.Fprintf(p.w, "%s✗%s %v\n", Red, Reset, u.Err)
	}
}

func (p *TurnPrinter) content(full string) {
	delta, restart := service.ContentDelta(p.printed, full)
	if restart {
		p.endLine()
	}
	if delta == "" {
		return
	}
	fmt.Fprint(p.w, delta)
	p.printed = full
	p.midLine = !strings.HasSuffix(full, "\n")
}

func (p *TurnPrinter) tools(tools []chat.ToolInvocation) {
	for i, t := range tools {
		if i < len(p.toolStatus) && p.toolStatus[i] == t.Status {
			continue
		}
		if i >= len(p.toolStatus) {
			p.toolStatus = append(p.toolStatus, t.Status)
			args := service.ToolArgsPreview(t.Args, 60)
			if args != "" {
				args = " " + Gray + args + Reset
			}
			p.line(fmt.Sprintf("  %s⟳%s %s%s", Yellow, Reset, t.Name, args))
			if t.Status == chat.ToolRunning {
				continue
			}
		}
		p.toolStatus[i] = t.Status
		p.line(fmt.Sprintf("  %s %s", ToolStatusLabel(t.Status), t.Name))
	}
}

// line writes a full line, first ending any partially printed content.
func (p *TurnPrinter) line(s string) {
	p.endLine()
	fmt.Fprintln(p.w, s)
}

func (p *TurnPrinter) endLine() {
	if p.midLine {
		fmt.Fprintln(p.w)
		p.midLine = false
	}
}

// Finish ends the turn and lists the generated resources with absolute URLs.
func (p *TurnPrinter) Finish(out render.Output, resolve func(string) string) {
	p.endLine()
	PrintResources(p.w, out.Resources, resolve)
}

// PrintResources lists resources one per line, grouped in render order.
func PrintResources(w io.Writer, resources []render.Resource, resolve func(string) string) {
	if len(resources) == 0 {
		return
	}
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	fmt.Fprintln(w)
	for _, r := range resources {
		label := r.Title
		switch r.Kind {
		case render.KindDownload:
			label = r.Icon + " " + r.Filename
		case render.KindChart:
			label = "📊 " + r.Title
		}
		fmt.Fprintf(w, "  %s  %s\n      %s%s%s\n", ResourceKindLabel(r.Kind), label, Blue, resolve(r.URL), Reset)
	}
}
