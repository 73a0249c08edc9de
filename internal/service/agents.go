package service

import (
	"strings"

	"agentchat-cli/internal/api"
	"agentchat-cli/internal/chat"
)

// AgentChoice is one selectable agent.
type AgentChoice struct {
	ID          string
	Name        string
	Description string
}

// AgentChoices maps the agent list for selection. When the list could not be
// fetched or is empty, the default research agent is offered.
func AgentChoices(agents []api.Agent, err error) []AgentChoice {
	var out []AgentChoice
	if err == nil {
		for _, a := range agents {
			id := a.Key()
			if id == "" {
				continue
			}
			name := a.Name
			if name == "" {
				name = id
			}
			out = append(out, AgentChoice{ID: id, Name: name, Description: a.Description})
		}
	}
	if len(out) == 0 {
		out = []AgentChoice{{ID: chat.DefaultAgentID, Name: chat.DefaultAgentName}}
	}
	return out
}

// FindAgent matches by id, then case-insensitively by name.
func FindAgent(choices []AgentChoice, ref string) (AgentChoice, bool) {
	for _, c := range choices {
		if c.ID == ref {
			return c, true
		}
	}
	for _, c := range choices {
		if strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return AgentChoice{}, false
}

// AgentName returns the display name for id, or id itself.
func AgentName(choices []AgentChoice, id string) string {
	if c, ok := FindAgent(choices, id); ok {
		return c.Name
	}
	return id
}
