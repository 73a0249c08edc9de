package render

import (
	"bytes"
	"html/template"
	"strings"
)

var blockTemplates = template.Must(template.New("blocks").Parse(`
{{- define "image" -}}
<div class="generated-image-container"><img src="{{.URL}}" alt="{{.Title}}" class="generated-image" loading="lazy"><a href="{{.URL}}" target="_blank" rel="noopener noreferrer" class="image-link">🔗 View full size</a></div>
{{- end -}}
{{- define "chart" -}}
<div class="chart-container"><div class="chart-title">📊 {{.Title}}</div><iframe src="{{.URL}}" class="chart-frame" loading="lazy" sandbox="allow-scripts allow-same-origin" title="{{.Title}}"></iframe><a href="{{.URL}}" target="_blank" rel="noopener noreferrer" class="chart-link">🔗 Open chart in new tab</a></div>
{{- end -}}
{{- define "download" -}}
<div class="download-container"><span class="download-icon">{{.Icon}}</span><span class="download-filename">{{.Filename}}</span><a href="{{.URL}}" class="download-button" data-filename="{{.Filename}}" download="{{.Filename}}">⬇ Download</a></div>
{{- end -}}
`))

// block renders the markup for a single resource.
func block(r Resource) string {
	var buf bytes.Buffer
	if err := blockTemplates.ExecuteTemplate(&buf, r.Kind.String(), r); err != nil {
		return ""
	}
	return buf.String()
}

// blocks renders resources of one kind, newline separated, in order.
func blocks(resources []Resource, kind Kind) string {
	var parts []string
	for _, r := range resources {
		if r.Kind == kind {
			if b := block(r); b != "" {
				parts = append(parts, b)
			}
		}
	}
	return strings.Join(parts, "\n")
}
