package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/render"
	"agentchat-cli/internal/service"
)

func TestToolStatusLabel(t *testing.T) {
	tests := []struct {
		input    chat.ToolStatus
		contains string
	}{
		{chat.ToolRunning, "Running"},
		{chat.ToolCompleted, "Done"},
		{chat.ToolError, "Failed"},
	}
	for _, tt := range tests {
		label := ToolStatusLabel(tt.input)
		if !strings.Contains(label, tt.contains) {
			t.Errorf("ToolStatusLabel(%q) = %q, want to contain %q", tt.input, label, tt.contains)
		}
		if !strings.Contains(label, Reset) {
			t.Errorf("ToolStatusLabel(%q) = %q, expected ANSI-colored output", tt.input, label)
		}
	}

	unknown := ToolStatusLabel("queued")
	if !strings.Contains(unknown, "queued") || !strings.Contains(unknown, Gray) {
		t.Errorf("ToolStatusLabel(unknown) = %q, expected gray input", unknown)
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(time.Time{}); got != "-" {
		t.Errorf("FormatTime(zero) = %q, want -", got)
	}
	ts := time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local)
	if got := FormatTime(ts); got != "2025-01-15 10:30:00" {
		t.Errorf("FormatTime() = %q", got)
	}
}

func snap(content string, tools ...chat.ToolInvocation) chat.Snapshot {
	s := chat.Snapshot{
		Messages: []chat.Message{{Role: chat.RoleUser, Content: "q"}},
		Tools:    tools,
	}
	if content != "" {
		s.Messages = append(s.Messages, chat.Message{Role: chat.RoleAssistant, Content: content})
	}
	return s
}

func TestTurnPrinterDeltas(t *testing.T) {
	var buf bytes.Buffer
	p := NewTurnPrinter(&buf)

	p.Handle(chat.Update{Kind: chat.UpdateUser, Snapshot: snap("")})
	p.Handle(chat.Update{Kind: chat.UpdateContent, Snapshot: snap("Hel")})
	p.Handle(chat.Update{Kind: chat.UpdateContent, Snapshot: snap("Hello")})
	p.Handle(chat.Update{Kind: chat.UpdateDone, Snapshot: snap("Hello")})
	p.Finish(render.Output{}, nil)

	if got := buf.String(); got != "Hello\n" {
		t.Errorf("output = %q, want %q", got, "Hello\n")
	}
}

func TestTurnPrinterToolLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewTurnPrinter(&buf)

	running := chat.ToolInvocation{Name: "search", Args: `{"q":"go"}`, Status: chat.ToolRunning}
	done := running
	done.Status = chat.ToolCompleted

	p.Handle(chat.Update{Kind: chat.UpdateContent, Snapshot: snap("Looking")})
	p.Handle(chat.Update{Kind: chat.UpdateTool, Snapshot: snap("Looking", running)})
	p.Handle(chat.Update{Kind: chat.UpdateTool, Snapshot: snap("Looking", done)})
	p.Handle(chat.Update{Kind: chat.UpdateTool, Snapshot: snap("Looking", done)})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	if lines[0] != "Looking" {
		t.Errorf("line 0 = %q, want content ended before tool line", lines[0])
	}
	if !strings.Contains(lines[1], "search") || !strings.Contains(lines[1], `{"q":"go"}`) {
		t.Errorf("line 1 = %q, want tool start", lines[1])
	}
	if !strings.Contains(lines[2], "Done") {
		t.Errorf("line 2 = %q, want completion", lines[2])
	}
}

func TestTurnPrinterAgentAndError(t *testing.T) {
	var buf bytes.Buffer
	p := NewTurnPrinter(&buf)

	s := snap("")
	s.CurrentAgent = "Researcher"
	p.Handle(chat.Update{Kind: chat.UpdateAgent, Snapshot: s})
	p.Handle(chat.Update{Kind: chat.UpdateAgent, Snapshot: s})
	p.Handle(chat.Update{Kind: chat.UpdateError, Snapshot: s, Err: errors.New("server returned 500")})

	out := buf.String()
	if strings.Count(out, "Researcher") != 1 {
		t.Errorf("agent label printed %d times, want once: %q", strings.Count(out, "Researcher"), out)
	}
	if !strings.Contains(out, "server returned 500") {
		t.Errorf("output %q missing error", out)
	}
}

func TestPrintResources(t *testing.T) {
	tr := render.New(render.DefaultPaths())
	out := tr.Transform("See /charts/sales_q1.html and DOWNLOAD: /download/report%20v2.pdf")

	var buf bytes.Buffer
	PrintResources(&buf, out.Resources, func(p string) string { return "https://web.example.com" + p })
	got := buf.String()

	for _, want := range []string{
		"📊 Sales Q1",
		"https://web.example.com/agentplatform/api/charts/sales_q1.html",
		"📕 report v2.pdf",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("PrintResources output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSessionGroups(t *testing.T) {
	var buf bytes.Buffer
	PrintSessionGroups(&buf, nil, "")
	if !strings.Contains(buf.String(), "No sessions") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	groups := []service.DayGroup{{Label: "Today", Sessions: []service.SessionDisplay{
		{ID: "s-1", Name: "Plan", TypeIcon: "🤖", Time: "09:00"},
	}}}
	PrintSessionGroups(&buf, groups, "s-1")
	got := buf.String()
	for _, want := range []string{"Today", "Plan", "09:00", "●"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintAgents(t *testing.T) {
	var buf bytes.Buffer
	PrintAgents(&buf, []service.AgentChoice{{ID: "a", Name: "Alpha", Description: "does things"}, {ID: "b", Name: "Beta"}}, "b")
	got := buf.String()
	if !strings.Contains(got, "does things") || !strings.Contains(got, "● ") {
		t.Errorf("PrintAgents output = %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	if got := RenderMarkdown("   ", 80); got != "" {
		t.Errorf("RenderMarkdown(blank) = %q, want empty", got)
	}
	got := RenderMarkdown("# Title\n\nSome **bold** text", 80)
	if !strings.Contains(got, "Title") || !strings.Contains(got, "bold") {
		t.Errorf("RenderMarkdown() = %q, want rendered content", got)
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	msgs := []chat.Message{
		{Role: chat.RoleUser, Content: "make a chart"},
		{Role: chat.RoleAssistant, Content: "Here it is: /charts/revenue.html"},
	}
	PrintHistory(&buf, msgs, render.New(render.DefaultPaths()), nil, 80)
	got := buf.String()
	if !strings.Contains(got, "make a chart") || !strings.Contains(got, "Revenue") {
		t.Errorf("PrintHistory output = %q", got)
	}
	if strings.Contains(got, "/charts/revenue.html\n\n") {
		t.Errorf("chart path should be listed as a resource, not inline prose: %q", got)
	}
}
