// Package export writes a conversation as a standalone HTML page using the
// same render tuples the chat surface shows.
package export

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"agentchat-cli/internal/chat"
	"agentchat-cli/internal/render"
)

// Transcript is one conversation to export.
type Transcript struct {
	Title     string
	SessionID string
	Mode      chat.Mode
	Agent     string
	BaseURL   string // web origin canonical asset paths resolve against
	Exported  time.Time
	Messages  []chat.Message
}

type messageView struct {
	User      bool
	Text      string
	HTML      template.HTML
	Images    template.HTML
	Charts    template.HTML
	Downloads template.HTML
}

type pageView struct {
	Transcript
	BaseHref string
	Items    []messageView
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .BaseHref}}
<base href="{{.BaseHref}}">
{{- end}}
<style>
body{font-family:system-ui,sans-serif;max-width:860px;margin:2rem auto;padding:0 1rem;color:#222}
header{border-bottom:1px solid #ddd;margin-bottom:1.5rem}
.meta{color:#777;font-size:.85rem}
.message{margin:1rem 0;padding:.75rem 1rem;border-radius:8px}
.user{background:#fff3e6;white-space:pre-wrap}
.assistant{background:#f5f5f7}
.generated-image{max-width:100%;border-radius:6px}
.chart-frame{width:100%;height:420px;border:0}
.download-container{display:flex;gap:.5rem;align-items:center}
pre{overflow-x:auto;padding:.75rem;background:#272822;color:#f8f8f2;border-radius:6px}
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<p class="meta">Session {{.SessionID}} · {{.Mode}}{{if .Agent}} · {{.Agent}}{{end}} · exported {{.Exported.Format "2006-01-02 15:04"}}</p>
</header>
{{- range .Items}}
{{- if .User}}
<div class="message user">{{.Text}}</div>
{{- else}}
<div class="message assistant">
{{.HTML}}
{{- if .Images}}
<div class="images">{{.Images}}</div>
{{- end}}
{{- if .Charts}}
<div class="charts">{{.Charts}}</div>
{{- end}}
{{- if .Downloads}}
<div class="downloads">{{.Downloads}}</div>
{{- end}}
</div>
{{- end}}
{{- end}}
</body>
</html>
`))

// Write renders t as HTML. Assistant messages are rendered through stab
// under the same slot keys the chat surface uses, so every resource the
// user saw while streaming is kept.
func Write(w io.Writer, t Transcript, stab *render.Stabilizer) error {
	if t.Title == "" {
		t.Title = "Conversation " + t.SessionID
	}
	if t.Exported.IsZero() {
		t.Exported = time.Now()
	}
	view := pageView{Transcript: t}
	if t.BaseURL != "" {
		view.BaseHref = strings.TrimRight(t.BaseURL, "/") + "/"
	}

	for i, m := range t.Messages {
		if m.Role == chat.RoleUser {
			view.Items = append(view.Items, messageView{User: true, Text: m.Content})
			continue
		}
		out := stab.Render(render.SlotKey(t.SessionID, i), m.Content)
		// Output fields are escaped by the renderer and sanitized.
		view.Items = append(view.Items, messageView{
			HTML:      template.HTML(out.Text),
			Images:    template.HTML(out.Images),
			Charts:    template.HTML(out.Charts),
			Downloads: template.HTML(out.Downloads),
		})
	}

	if err := page.Execute(w, view); err != nil {
		return fmt.Errorf("rendering transcript: %w", err)
	}
	return nil
}

// DefaultFilename is the file name used when none is given.
func DefaultFilename(sessionID string, now time.Time) string {
	id := sessionID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("agentchat-%s-%s.html", id, now.Format("20060102-150405"))
}
