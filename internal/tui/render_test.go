package tui

import (
	"strings"
	"testing"

	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/render"
)

func TestRenderWelcome(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		out := renderWelcome("1.2.3", "", "", 80)
		if !strings.Contains(out, "v1.2.3") || !strings.Contains(out, "set server") {
			t.Errorf("welcome missing version or setup hint:\n%s", out)
		}
	})

	t.Run("long server truncated", func(t *testing.T) {
		server := "https://" + strings.Repeat("a", 60) + ".example.com"
		out := renderWelcome("1.0", server, "🤖 Research Agent", 80)
		if strings.Contains(out, server) {
			t.Error("server should be truncated")
		}
		if !strings.Contains(out, "Research Agent") {
			t.Error("target missing from welcome")
		}
	})
}

func TestTrimEmptyEdgeLines(t *testing.T) {
	got := trimEmptyEdgeLines([]string{"", "  ", "a", "", "b", " ", ""})
	if strings.Join(got, "|") != "a||b" {
		t.Errorf("trimEmptyEdgeLines = %q", got)
	}
	if got := trimEmptyEdgeLines([]string{"", " "}); len(got) != 0 {
		t.Errorf("all-blank input = %q, want empty", got)
	}
}

func TestColorizeLogoLinePreservesText(t *testing.T) {
	line := "  **  ++ x"
	out := colorizeLogoLine(line)
	for _, want := range []string{"**", "++", "x"} {
		if !strings.Contains(out, want) {
			t.Errorf("colorized line missing %q: %q", want, out)
		}
	}
}

func TestRenderToolPanel(t *testing.T) {
	if got := renderToolPanel(nil, "agent", 80); got != "" {
		t.Errorf("empty tools = %q, want empty", got)
	}

	tools := []chat.ToolInvocation{
		{Name: "web_search", Args: `{"q":"go"}`, Status: chat.ToolCompleted, Agent: "Researcher"},
		{Name: "write_file", Status: chat.ToolRunning},
	}
	out := renderToolPanel(tools, "Writer", 80)
	for _, want := range []string{"Researcher", "Writer", "web_search", "write_file", `"q"`} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}
}

func TestRenderToolSummary(t *testing.T) {
	if got := renderToolSummary(nil); got != "" {
		t.Errorf("no tools = %q", got)
	}
	out := renderToolSummary([]chat.ToolInvocation{{Name: "a", Status: chat.ToolCompleted}, {Name: "b", Status: chat.ToolError}})
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Errorf("summary = %q", out)
	}
}

func TestRenderResources(t *testing.T) {
	resolve := func(p string) string { return "http://web.test" + p }
	if got := renderResources(nil, resolve); got != "" {
		t.Errorf("no resources = %q", got)
	}

	res := []render.Resource{
		{Kind: render.KindImage, URL: "/api/images/cat.png", Title: "cat"},
		{Kind: render.KindDownload, URL: "/api/download/r.pdf", Filename: "r.pdf", Icon: "📕"},
	}
	out := renderResources(res, resolve)
	for _, want := range []string{"[1]", "[2]", "http://web.test/api/images/cat.png", "r.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("resources missing %q:\n%s", want, out)
		}
	}
}

func TestTailLines(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"a\nb\nc", 2, "b\nc"},
		{"a\nb", 5, "a\nb"},
		{"a", 0, ""},
	}
	for _, tt := range tests {
		if got := tailLines(tt.in, tt.n); got != tt.want {
			t.Errorf("tailLines(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestTruncateID(t *testing.T) {
	if got := truncateID("1234567890"); got != "12345678" {
		t.Errorf("truncateID = %q", got)
	}
	if got := truncateID("abc"); got != "abc" {
		t.Errorf("truncateID short = %q", got)
	}
}
