package chat

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ─── Event vocabulary ───────────────────────────────────────────────────────

var (
	contentEvents = set("RunContent", "TeamRunContent", "MemberRunContent")
	toolStart     = set("ToolCallStart", "ToolCallStarted")
	toolEnd       = set("ToolCallEnd", "ToolCallCompleted")
)

// ─── Field extraction rules ─────────────────────────────────────────────────
//
// Backends disagree on where a value lives in the payload. Each table lists
// candidate paths in priority order; the first non-empty value wins.

var (
	contentRules = paths("content", "data.content")

	contentAgentRules = paths("agent_name", "member_name", "team_name")

	agentLabelRules = paths("member_name", "agent_name")

	toolNameRules = paths(
		"tool.tool_name",
		"tool.name",
		"tool_call.function.name",
		"tool_call.name",
		"tool_calls.0.function.name",
		"tool_calls.0.name",
		"tool_name",
		"data.tool_name",
	)

	toolArgsRules = paths(
		"tool.tool_args",
		"tool.args",
		"tool.arguments",
		"tool_call.function.arguments",
		"tool_call.arguments",
		"tool_calls.0.function.arguments",
		"tool_calls.0.arguments",
		"tool_args",
		"data.tool_args",
	)

	toolIDRules = paths(
		"tool.tool_call_id",
		"tool_call.id",
		"tool_calls.0.id",
		"tool_call_id",
		"data.tool_call_id",
	)

	toolFailedRules = paths("tool.tool_call_error", "tool_call_error")
)

type fieldPath []string

func paths(specs ...string) []fieldPath {
	out := make([]fieldPath, len(specs))
	for i, s := range specs {
		out[i] = strings.Split(s, ".")
	}
	return out
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// lookup walks a decoded JSON value. Numeric path elements index arrays.
func lookup(v any, p fieldPath) (any, bool) {
	for _, key := range p {
		switch node := v.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			v = node[i]
		default:
			return nil, false
		}
	}
	return v, v != nil
}

// firstString returns the first non-empty string found along rules.
func firstString(payload map[string]any, rules []fieldPath) string {
	for _, r := range rules {
		if v, ok := lookup(payload, r); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// firstText is like firstString but accepts any non-empty value, encoding
// non-strings as JSON.
func firstText(payload map[string]any, rules []fieldPath) string {
	for _, r := range rules {
		v, ok := lookup(payload, r)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if s != "" {
				return s
			}
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			continue
		}
		return string(b)
	}
	return ""
}

func firstTrue(payload map[string]any, rules []fieldPath) bool {
	for _, r := range rules {
		if v, ok := lookup(payload, r); ok {
			if b, ok := v.(bool); ok && b {
				return true
			}
		}
	}
	return false
}
