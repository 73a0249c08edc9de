package render

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// Output is the render tuple for one assistant message.
type Output struct {
	Text      string // sanitized Markdown HTML of the remaining prose
	Images    string
	Charts    string
	Downloads string

	// Markdown is the prose with every resource reference removed, for
	// renderers that do their own Markdown (the terminal).
	Markdown  string
	Resources []Resource
}

// Empty reports whether the output carries nothing to show.
func (o Output) Empty() bool {
	return o.Text == "" && o.Images == "" && o.Charts == "" && o.Downloads == ""
}

// Transformer converts raw assistant text into an Output. It holds no
// per-message state; Transform is deterministic for a given input.
type Transformer struct {
	paths  Paths
	rules  []rule
	md     goldmark.Markdown
	policy *bluemonday.Policy
	logger *slog.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger used for conversion failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.logger = l
		}
	}
}

func New(paths Paths, opts ...Option) *Transformer {
	t := &Transformer{
		paths:  paths,
		rules:  buildRules(paths),
		md:     newMarkdown(),
		policy: newPolicy(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Paths returns the asset layout resources are canonicalized to.
func (t *Transformer) Paths() Paths { return t.paths }

var extraBlankLines = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

// Transform extracts image, chart and download references from raw and
// renders what is left as Markdown.
func (t *Transformer) Transform(raw string) Output {
	text := strings.ReplaceAll(raw, `\`, "/")

	var prose strings.Builder
	var resources []Resource
	seen := make(map[string]bool)
	for _, s := range tokenize(text, t.rules) {
		if s.res == nil {
			prose.WriteString(s.text)
			continue
		}
		if seen[s.res.URL] {
			continue
		}
		seen[s.res.URL] = true
		resources = append(resources, *s.res)
	}

	md := strings.TrimSpace(extraBlankLines.ReplaceAllString(prose.String(), "\n\n"))
	return Output{
		Text:      t.markdownHTML(md),
		Images:    blocks(resources, KindImage),
		Charts:    blocks(resources, KindChart),
		Downloads: blocks(resources, KindDownload),
		Markdown:  md,
		Resources: resources,
	}
}
