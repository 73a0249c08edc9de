package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransformer() *Transformer {
	return New(DefaultPaths())
}

func TestTransformImages(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSrc string
		wantAlt string
	}{
		{
			name:    "output path with label",
			input:   "Saved to outputs\\images\\ComfyUI_00001_.png",
			wantSrc: "/agentplatform/api/images/ComfyUI_00001_.png",
			wantAlt: "Generated image",
		},
		{
			name:    "plain output path",
			input:   "Here it is: outputs/images/cat.png",
			wantSrc: "/agentplatform/api/images/cat.png",
		},
		{
			name:    "legacy localhost markdown image",
			input:   "![plot](http://localhost:7777/images/plot.png)",
			wantSrc: "/agentplatform/api/images/plot.png",
			wantAlt: "plot",
		},
		{
			name:    "legacy localhost bare url",
			input:   "Open http://localhost:7777/images/plot.png now",
			wantSrc: "/agentplatform/api/images/plot.png",
		},
		{
			name:    "bare absolute path",
			input:   "Result: /images/sunset.jpg",
			wantSrc: "/agentplatform/api/images/sunset.jpg",
		},
		{
			name:    "already canonical",
			input:   "see /agentplatform/api/images/sunset.webp",
			wantSrc: "/agentplatform/api/images/sunset.webp",
		},
		{
			name:    "markdown link to relative image",
			input:   "[the render](generated/robot.PNG)",
			wantSrc: "/agentplatform/api/images/robot.PNG",
			wantAlt: "the render",
		},
		{
			name:    "external markdown image kept",
			input:   "![cat](https://cdn.example.com/cat.jpg)",
			wantSrc: "https://cdn.example.com/cat.jpg",
			wantAlt: "cat",
		},
		{
			name:    "standalone temporary name",
			input:   "Created ComfyUI_00042_.png successfully",
			wantSrc: "/agentplatform/api/images/ComfyUI_00042_.png",
		},
	}

	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tr.Transform(tt.input)
			assert.Contains(t, out.Images, `src="`+tt.wantSrc+`"`)
			if tt.wantAlt != "" {
				assert.Contains(t, out.Images, `alt="`+tt.wantAlt+`"`)
			}
			assert.Equal(t, 1, strings.Count(out.Images, "generated-image-container"))
			assert.NotContains(t, out.Markdown, "images/")
		})
	}
}

func TestTransformScenarioPathOnly(t *testing.T) {
	out := newTestTransformer().Transform("Saved to outputs\\images\\ComfyUI_00001_.png")
	assert.Equal(t, "", out.Text)
	assert.Equal(t, "", out.Charts)
	assert.Equal(t, "", out.Downloads)
	require.Len(t, out.Resources, 1)
	assert.Equal(t, "/agentplatform/api/images/ComfyUI_00001_.png", out.Resources[0].URL)
}

func TestTransformDownloads(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantHref     string
		wantFilename string
		wantIcon     string
		wantProse    string
	}{
		{
			name:         "marker with host",
			input:        "DOWNLOAD: http://localhost:7777/download/report%20Q1.pptx",
			wantHref:     "/agentplatform/api/download/report%20Q1.pptx",
			wantFilename: "report Q1.pptx",
			wantIcon:     "📊",
		},
		{
			name:         "marker with markdown link",
			input:        "DOWNLOAD: [data](/download/data.csv)",
			wantHref:     "/agentplatform/api/download/data.csv",
			wantFilename: "data.csv",
			wantIcon:     "📑",
		},
		{
			name:         "markdown link",
			input:        "Grab [the deck](http://localhost:7777/download/deck.pdf).",
			wantHref:     "/agentplatform/api/download/deck.pdf",
			wantFilename: "deck.pdf",
			wantIcon:     "📕",
			wantProse:    "Grab .",
		},
		{
			name:         "bare downloads url keeps sentence punctuation",
			input:        "Get it at http://localhost:7777/downloads/data.xlsx.",
			wantHref:     "/agentplatform/api/download/data.xlsx",
			wantFilename: "data.xlsx",
			wantIcon:     "📗",
			wantProse:    "Get it at .",
		},
		{
			name:         "decoded exactly once",
			input:        "DOWNLOAD: /download/a%2520b.docx",
			wantHref:     "/agentplatform/api/download/a%2520b.docx",
			wantFilename: "a%20b.docx",
			wantIcon:     "📘",
		},
		{
			name:         "unknown extension",
			input:        "DOWNLOAD: /download/notes.txt",
			wantHref:     "/agentplatform/api/download/notes.txt",
			wantFilename: "notes.txt",
			wantIcon:     "📄",
		},
	}

	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tr.Transform(tt.input)
			require.Len(t, out.Resources, 1)
			r := out.Resources[0]
			assert.Equal(t, KindDownload, r.Kind)
			assert.Equal(t, tt.wantFilename, r.Filename)
			assert.Equal(t, tt.wantIcon, r.Icon)
			assert.Contains(t, out.Downloads, `href="`+tt.wantHref+`"`)
			assert.Contains(t, out.Downloads, `<span class="download-icon">`+tt.wantIcon+`</span>`)
			assert.Equal(t, tt.wantProse, out.Markdown)
		})
	}
}

func TestTransformEscapesInterpolatedValues(t *testing.T) {
	out := newTestTransformer().Transform("DOWNLOAD: /download/%3Cscript%3Ealert(1).pdf")
	require.Len(t, out.Resources, 1)
	assert.NotContains(t, out.Downloads, "<script>")
	assert.Contains(t, out.Downloads, "&lt;script&gt;")
}

func TestTransformCharts(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSrc   string
		wantTitle string
	}{
		{
			name:      "markdown link with host",
			input:     "See [Q1 sales](http://localhost:7777/charts/sales_q1.html) for details",
			wantSrc:   "/agentplatform/api/charts/sales_q1.html",
			wantTitle: "Q1 sales",
		},
		{
			name:      "link text is the title",
			input:     "See [Revenue by Region](/charts/rev_2024.html)",
			wantSrc:   "/agentplatform/api/charts/rev_2024.html",
			wantTitle: "Revenue by Region",
		},
		{
			name:      "blank link text derives the title",
			input:     "See [ ](/charts/rev_2024.html)",
			wantSrc:   "/agentplatform/api/charts/rev_2024.html",
			wantTitle: "Rev 2024",
		},
		{
			name:      "bare path",
			input:     "Chart: /charts/revenue-by-month.html",
			wantSrc:   "/agentplatform/api/charts/revenue-by-month.html",
			wantTitle: "Revenue By Month",
		},
		{
			name:      "relative output path",
			input:     "Wrote outputs/charts/user_growth.html",
			wantSrc:   "/agentplatform/api/charts/user_growth.html",
			wantTitle: "User Growth",
		},
	}

	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tr.Transform(tt.input)
			assert.Contains(t, out.Charts, `src="`+tt.wantSrc+`"`)
			assert.Contains(t, out.Charts, "📊 "+tt.wantTitle)
			assert.Equal(t, "", out.Images)
			assert.NotContains(t, out.Markdown, ".html")
		})
	}
}

func TestTransformDeduplicatesCanonicalURLs(t *testing.T) {
	input := "First outputs/images/a.png then again /agentplatform/api/images/a.png and " +
		"http://localhost:7777/images/a.png"
	out := newTestTransformer().Transform(input)
	assert.Equal(t, 1, strings.Count(out.Images, "generated-image-container"))
	require.Len(t, out.Resources, 1)
}

func TestTransformMultipleKinds(t *testing.T) {
	input := "Chart: /charts/a.html\nImage: outputs/images/b.png\nDOWNLOAD: /download/c.zip"
	out := newTestTransformer().Transform(input)
	require.Len(t, out.Resources, 3)
	assert.Equal(t, KindChart, out.Resources[0].Kind)
	assert.NotEmpty(t, out.Charts)
	assert.NotEmpty(t, out.Images)
	assert.Contains(t, out.Downloads, "🗜️")
}

func TestTransformIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"Saved to outputs/images/x.png and DOWNLOAD: /download/y.pdf\n\n1. one\n2. two",
		"```python\nprint('hi')\n```",
	}
	tr := newTestTransformer()
	for _, in := range inputs {
		assert.Equal(t, tr.Transform(in), tr.Transform(in))
	}
}

func TestTransformCustomAssetBase(t *testing.T) {
	tr := New(Paths{AssetBase: "/api/"})
	out := tr.Transform("Saved as outputs/images/x.png")
	assert.Contains(t, out.Images, `src="/api/images/x.png"`)
}

// ─── Markdown ───────────────────────────────────────────────────────────────

func TestMarkdownRendering(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis and hard wraps",
			input:    "**bold**\nline two",
			contains: []string{"<strong>bold</strong>", "<br"},
		},
		{
			name:     "literal ordered numerals",
			input:    "1. first\n\nSome prose.\n\n3. third",
			contains: []string{`<li value="1">`, `<li value="3">`},
		},
		{
			name:     "redundant dash numerals",
			input:    "- 1. apple\n- 2. pear",
			contains: []string{"<li>apple</li>", "<li>pear</li>"},
			excludes: []string{"<ol"},
		},
		{
			name:     "links kept",
			input:    "Read [the docs](https://example.com/page).",
			contains: []string{`href="https://example.com/page"`, ">the docs</a>"},
		},
		{
			name:     "table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "fenced code is highlighted",
			input:    "```go\nfmt.Println(1)\n```",
			contains: []string{`class="chroma"`, "Println"},
		},
		{
			name:     "raw html is sanitized",
			input:    "hello <script>alert(1)</script><b>there</b>",
			excludes: []string{"<script>"},
		},
	}

	tr := newTestTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tr.Transform(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, out.Text, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, out.Text, bad)
			}
		})
	}
}

func TestChartTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sales_q1", "Sales Q1"},
		{"sales_q1.html", "Sales Q1"},
		{"revenue-by--month", "Revenue By Month"},
		{"monthly%20users", "Monthly Users"},
		{"already Titled", "Already Titled"},
	}
	for _, tt := range tests {
		if got := ChartTitle(tt.in); got != tt.want {
			t.Errorf("ChartTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDownloadIcon(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"deck.pptx", "📊"},
		{"SHEET.XLSX", "📗"},
		{"rows.csv", "📑"},
		{"paper.pdf", "📕"},
		{"memo.docx", "📘"},
		{"bundle.zip", "🗜️"},
		{"README", "📄"},
	}
	for _, tt := range tests {
		if got := DownloadIcon(tt.in); got != tt.want {
			t.Errorf("DownloadIcon(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
