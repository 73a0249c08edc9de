package display

import (
	"fmt"
	"io"
	"strings"

	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/render"
	"agentchat-cli/internal/service"
)

// PrintAgents lists agents, marking the current one.
func PrintAgents(w io.Writer, choices []service.AgentChoice, current string) {
	for _, c := range choices {
		marker := "  "
		if c.ID == current {
			marker = Green + "● " + Reset
		}
		fmt.Fprintf(w, "%s%s%-24s%s %s%s%s\n", marker, Bold, c.Name, Reset, Gray, c.ID, Reset)
		if c.Description != "" {
			fmt.Fprintf(w, "    %s%s%s\n", Dim, c.Description, Reset)
		}
	}
}

// PrintSessionGroups lists sessions under their day headings.
func PrintSessionGroups(w io.Writer, groups []service.DayGroup, active string) {
	if len(groups) == 0 {
		fmt.Fprintf(w, "  %sNo sessions yet.%s\n", Dim, Reset)
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "\n%s%s%s\n", Bold+Cyan, g.Label, Reset)
		for _, s := range g.Sessions {
			marker := " "
			if s.ID == active {
				marker = Green + "●" + Reset
			}
			fmt.Fprintf(w, " %s %s %s%s%s  %s  %s%s%s\n",
				marker, s.TypeIcon, Gray, s.Time, Reset, s.Name, Dim, s.ID, Reset)
		}
	}
}

// PrintHistory prints a reconstructed conversation. Assistant messages go
// through the transformer so resources are listed instead of inlined.
func PrintHistory(w io.Writer, msgs []chat.Message, t *render.Transformer, resolve func(string) string, width int) {
	if len(msgs) == 0 {
		fmt.Fprintf(w, "  %sNo messages in this session.%s\n", Dim, Reset)
		return
	}
	for _, m := range msgs {
		switch m.Role {
		case chat.RoleUser:
			fmt.Fprintf(w, "\n%s❯%s %s\n", Bold+Yellow, Reset, strings.TrimSpace(m.Content))
		case chat.RoleAssistant:
			out := t.Transform(m.Content)
			if md := RenderMarkdown(out.Markdown, width); md != "" {
				fmt.Fprintf(w, "\n%s\n", md)
			}
			PrintResources(w, out.Resources, resolve)
		}
	}
}
