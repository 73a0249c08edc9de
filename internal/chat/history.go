package chat

import (
	"encoding/json"
	"strings"

	"agentchat-cli/internal/api"
)

// HistoryFromRuns rebuilds a conversation from stored runs. A run that kept
// its message list contributes its user and assistant messages; otherwise
// its input/output pair is used.
func HistoryFromRuns(runs []api.Run) []Message {
	var out []Message
	for _, run := range runs {
		if len(run.Messages) > 0 {
			for _, m := range run.Messages {
				role := Role(m.Role)
				if role != RoleUser && role != RoleAssistant {
					continue
				}
				if text := rawText(m.Content); text != "" {
					out = append(out, Message{Role: role, Content: text})
				}
			}
			continue
		}

		input := rawText(run.Input)
		if input == "" {
			input = rawText(run.RunInput)
		}
		output := rawText(run.Output)
		if output == "" {
			output = rawText(run.Content)
		}
		if input != "" {
			out = append(out, Message{Role: RoleUser, Content: input})
		}
		if output != "" {
			out = append(out, Message{Role: RoleAssistant, Content: output})
		}
	}
	return out
}

// rawText extracts display text from a stored value: a plain string, an
// object carrying input_content/content/text, or a list of such parts.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return valueText(v)
}

func valueText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		for _, key := range []string{"input_content", "content", "text"} {
			if s := valueText(t[key]); s != "" {
				return s
			}
		}
	case []any:
		var parts []string
		for _, item := range t {
			if s := valueText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}
