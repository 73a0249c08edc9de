package display

import (
	"fmt"
	"os"
	"strings"
	"time"

	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/render"
)

const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m"
)

func Header(text string) {
	fmt.Printf("\n%s%s%s\n", Bold+Cyan, text, Reset)
	fmt.Println(strings.Repeat("─", min(len(text)+4, 80)))
}

func SubHeader(text string) {
	fmt.Printf("%s%s%s\n", Bold+White, text, Reset)
}

func Success(text string) {
	fmt.Printf("%s✓%s %s\n", Green, Reset, text)
}

func Error(text string) {
	fmt.Fprintf(os.Stderr, "%s✗%s %s\n", Red, Reset, text)
}

func Warn(text string) {
	fmt.Printf("%s!%s %s\n", Yellow, Reset, text)
}

func Info(label, value string) {
	fmt.Printf("  %s%-20s%s %s\n", Dim, label, Reset, value)
}

func Spinner(text string) {
	fmt.Printf("\r%s⟳%s %s", Yellow, Reset, text)
}

func ClearLine() {
	fmt.Print("\r\033[K")
}

// Tool status display for streaming
func ToolStatusLabel(s chat.ToolStatus) string {
	labels := map[chat.ToolStatus]string{
		chat.ToolRunning:   Yellow + "⟳ Running" + Reset,
		chat.ToolCompleted: Green + "✓ Done" + Reset,
		chat.ToolError:     Red + "✗ Failed" + Reset,
	}
	if label, ok := labels[s]; ok {
		return label
	}
	return Gray + string(s) + Reset
}

func ModeLabel(m chat.Mode) string {
	switch m {
	case chat.ModeTeam:
		return Magenta + "👥 Team" + Reset
	case chat.ModeAgent:
		return Cyan + "🤖 Agent" + Reset
	}
	return string(m)
}

func ResourceKindLabel(k render.Kind) string {
	labels := map[render.Kind]string{
		render.KindImage:    Blue + "🖼  Image" + Reset,
		render.KindChart:    Cyan + "📊 Chart" + Reset,
		render.KindDownload: Green + "📎 File" + Reset,
	}
	if label, ok := labels[k]; ok {
		return label
	}
	return k.String()
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
