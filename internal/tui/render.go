package tui

import (
	"fmt"
	"strings"

	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/display"
	"agentchat-cli/internal/render"
	"agentchat-cli/internal/service"
)

// ─── Welcome Screen ─────────────────────────────────────────────────────────

func renderWelcome(version, server, target string, width int) string {
	titleLine := logoTitleStyle.Render("AgentChat CLI") + " " + versionStyle.Render("v"+version)

	var infoLine string
	if server == "" {
		infoLine = welcomeHintStyle.Render("Run: agentchat set server <url> to get started")
	} else {
		serverDisplay := server
		if len(serverDisplay) > 40 {
			serverDisplay = serverDisplay[:37] + "..."
		}
		infoLine = welcomeInfoLabel.Render(fmt.Sprintf("%s · %s", serverDisplay, target))
	}

	logo := renderLogo()
	if width > 0 && width < 30 {
		logo = ""
	}
	return fmt.Sprintf("\n%s\n\n%s\n%s\n", logo, titleLine, infoLine)
}

const bubbleASCIIArt = `
     ****************
   ***              ***
  **   ++   ++   ++   **
  **   ++   ++   ++   **
   ***              ***
     *******   ******
          **  **
          ** *
          **
`

func renderLogo() string {
	lines := trimEmptyEdgeLines(strings.Split(bubbleASCIIArt, "\n"))
	for i, line := range lines {
		lines[i] = colorizeLogoLine(strings.TrimRight(line, " "))
	}
	return strings.Join(lines, "\n")
}

func trimEmptyEdgeLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}

	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// colorizeLogoLine styles runs of the same glyph together so the escape
// codes stay short.
func colorizeLogoLine(line string) string {
	var b strings.Builder
	runes := []rune(line)
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		run := string(runes[i:j])
		switch runes[i] {
		case '*':
			b.WriteString(logoStyle.Render(run))
		case '+':
			b.WriteString(logoAccentStyle.Render(run))
		default:
			b.WriteString(run)
		}
		i = j
	}
	return b.String()
}

// ─── Turn rendering ─────────────────────────────────────────────────────────

// renderToolPanel shows the current turn's tool calls grouped by agent.
func renderToolPanel(tools []chat.ToolInvocation, fallbackAgent string, width int) string {
	if len(tools) == 0 {
		return ""
	}
	argWidth := max(width-30, 10)

	var lines []string
	for _, g := range service.GroupToolsByAgent(tools, fallbackAgent) {
		lines = append(lines, agentLabelStyle.Render("🤖 "+g.Agent))
		for _, t := range g.Tools {
			line := "  " + toolIcon(t.Status) + " " + t.Name
			if args := service.ToolArgsPreview(t.Args, argWidth); args != "" {
				line += " " + dimStyle.Render(args)
			}
			lines = append(lines, line)
		}
	}

	panel := strings.Join(lines, "\n")
	if width > 0 {
		return toolPanelStyle.Width(min(width-2, 100)).Render(panel)
	}
	return toolPanelStyle.Render(panel)
}

func toolIcon(s chat.ToolStatus) string {
	icon := service.ToolStatusIcon(s)
	switch s {
	case chat.ToolRunning:
		return toolRunningStyle.Render(icon)
	case chat.ToolCompleted:
		return toolDoneStyle.Render(icon)
	case chat.ToolError:
		return toolErrorStyle.Render(icon)
	}
	return dimStyle.Render(icon)
}

// renderToolSummary is the one-line record of a finished turn's tools.
func renderToolSummary(tools []chat.ToolInvocation) string {
	if len(tools) == 0 {
		return ""
	}
	var parts []string
	for _, t := range tools {
		parts = append(parts, toolIcon(t.Status)+" "+t.Name)
	}
	return dimStyle.Render("  tools: ") + strings.Join(parts, dimStyle.Render(" · "))
}

// renderAssistant renders an assistant message's prose for the terminal.
func renderAssistant(out render.Output, width int) string {
	return display.RenderMarkdown(out.Markdown, min(width, 120)-2)
}

// renderResources lists generated resources, numbered so /download can
// refer to them.
func renderResources(resources []render.Resource, resolve func(string) string) string {
	if len(resources) == 0 {
		return ""
	}
	var lines []string
	for i, r := range resources {
		label := r.Title
		switch r.Kind {
		case render.KindDownload:
			label = r.Icon + " " + r.Filename
		case render.KindChart:
			label = "📊 " + r.Title
		case render.KindImage:
			label = "🖼  " + r.Title
		}
		lines = append(lines,
			fmt.Sprintf("  %s %s %s", resourceStyle.Render(fmt.Sprintf("[%d]", i+1)), dimStyle.Render(r.Kind.String()), label),
			"      "+linkStyle.Render(resolve(r.URL)),
		)
	}
	return strings.Join(lines, "\n")
}

// tailLines keeps the last n lines of s.
func tailLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

func indentText(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func truncateID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
