package service

import (
	"strings"

	"agentchat-cli/internal/chat"
)

// ToolGroup is the tool calls made by one agent during a turn.
type ToolGroup struct {
	Agent string
	Tools []chat.ToolInvocation
}

// GroupToolsByAgent groups invocations by agent in order of first
// appearance. Untagged calls are grouped under fallback.
func GroupToolsByAgent(tools []chat.ToolInvocation, fallback string) []ToolGroup {
	var groups []ToolGroup
	index := make(map[string]int)
	for _, t := range tools {
		agent := t.Agent
		if agent == "" {
			agent = fallback
		}
		i, ok := index[agent]
		if !ok {
			i = len(groups)
			index[agent] = i
			groups = append(groups, ToolGroup{Agent: agent})
		}
		groups[i].Tools = append(groups[i].Tools, t)
	}
	return groups
}

func ToolStatusIcon(s chat.ToolStatus) string {
	switch s {
	case chat.ToolRunning:
		return "⟳"
	case chat.ToolCompleted:
		return "✓"
	case chat.ToolError:
		return "✗"
	}
	return "•"
}

// ToolArgsPreview flattens argument text onto one line and cuts it to max runes.
func ToolArgsPreview(args string, max int) string {
	s := strings.Join(strings.Fields(args), " ")
	if s == "{}" || s == "null" {
		return ""
	}
	r := []rune(s)
	if max > 3 && len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return s
}

// RunningCount returns how many tools are still running.
func RunningCount(tools []chat.ToolInvocation) int {
	n := 0
	for _, t := range tools {
		if t.Status == chat.ToolRunning {
			n++
		}
	}
	return n
}
