package tui

import (
	"fmt"

	"agentchat-cli/internal/api"
	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/config"
	"agentchat-cli/internal/render"

	tea "github.com/charmbracelet/bubbletea"
)

// Options are the collaborators the interactive mode runs on.
type Options struct {
	Config     *config.Config
	Client     api.ChatAPI
	Controller *chat.Controller
	Stabilizer *render.Stabilizer
	Refresh    *RefreshCounter // bumped by the controller's first-event hook
	Version    string
	Profile    string
}

// Run launches the interactive TUI mode (inline: answers scroll into the
// terminal history, only the live turn and prompt are redrawn).
func Run(opts Options) error {
	if opts.Controller == nil || opts.Stabilizer == nil {
		return fmt.Errorf("TUI needs a controller and a stabilizer")
	}
	m := initialModel(opts)

	p := tea.NewProgram(m)

	_, err := p.Run()
	opts.Controller.Cancel()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
