package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTranscript(t *testing.T) {
	stab := render.NewStabilizer(render.New(render.DefaultPaths()))
	tr := Transcript{
		SessionID: "s-1",
		Mode:      chat.ModeAgent,
		Agent:     "research-agent",
		BaseURL:   "https://chat.example.com/",
		Exported:  time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: "<script>alert(1)</script> chart please"},
			{Role: chat.RoleAssistant, Content: "**Done**: /charts/sales_q1.html"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tr, stab))
	html := buf.String()

	assert.Contains(t, html, "<title>Conversation s-1</title>")
	assert.Contains(t, html, `<base href="https://chat.example.com/">`)
	assert.Contains(t, html, "2025-03-10 09:30")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;", "user text is escaped")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "<strong>Done</strong>")
	assert.Contains(t, html, `class="chart-container"`)
	assert.Contains(t, html, "/agentplatform/api/charts/sales_q1.html")
	assert.Equal(t, 1, strings.Count(html, `class="chart-container"`))
}

func TestWriteKeepsStreamedResources(t *testing.T) {
	stab := render.NewStabilizer(render.New(render.DefaultPaths()))
	// Seen while streaming under the same slot, then retracted.
	stab.Render(render.SlotKey("s-2", 1), "Saved to outputs/images/foo.png")

	tr := Transcript{
		SessionID: "s-2",
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: "draw"},
			{Role: chat.RoleAssistant, Content: "Here you go."},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tr, stab))
	assert.Contains(t, buf.String(), "/agentplatform/api/images/foo.png")
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "agentchat-12345678-20250310-093005.html", DefaultFilename("1234567890abcdef", now))
	assert.Equal(t, "agentchat-abc-20250310-093005.html", DefaultFilename("abc", now))
}
