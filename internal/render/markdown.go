package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strconv"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ─── Markdown → HTML ────────────────────────────────────────────────────────

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			// Lower value registers last and wins over the stock HTML renderer (1000).
			renderer.WithNodeRenderers(util.Prioritized(&htmlOverrides{}, 100)),
		),
	)
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("span", "pre", "code")
	p.AllowAttrs("value").Matching(bluemonday.Integer).OnElements("li")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// "- 1. item" is a bullet carrying a redundant numeral.
var dashNumeral = regexp.MustCompile(`(?m)^([ \t]*)[-*+][ \t]+\d+[.)][ \t]+`)

func (t *Transformer) markdownHTML(text string) string {
	if text == "" {
		return ""
	}
	text = dashNumeral.ReplaceAllString(text, "$1- ")

	var buf bytes.Buffer
	if err := t.md.Convert([]byte(text), &buf); err != nil {
		t.logger.Warn("markdown conversion failed", "error", err)
		return "<p>" + html.EscapeString(text) + "</p>"
	}
	return t.policy.Sanitize(buf.String())
}

// ─── Node renderers ─────────────────────────────────────────────────────────

// htmlOverrides replaces the stock rendering of list items, links and
// fenced code.
type htmlOverrides struct{}

func (r *htmlOverrides) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

// renderListItem writes ordered items with the numeral typed in the source,
// so "1. a" ... "1. b" separated by prose does not get renumbered.
func (r *htmlOverrides) renderListItem(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</li>\n")
		return ast.WalkContinue, nil
	}
	n := node.(*ast.ListItem)
	if list, ok := n.Parent().(*ast.List); ok && list.IsOrdered() {
		if num, ok := literalNumber(source, n); ok {
			fmt.Fprintf(w, "<li value=\"%d\">", num)
		} else {
			_, _ = w.WriteString("<li>")
		}
	} else {
		_, _ = w.WriteString("<li>")
	}
	if fc := n.FirstChild(); fc != nil {
		if _, ok := fc.(*ast.TextBlock); !ok {
			_ = w.WriteByte('\n')
		}
	}
	return ast.WalkContinue, nil
}

func literalNumber(source []byte, item *ast.ListItem) (int, bool) {
	fc := item.FirstChild()
	if fc == nil || fc.Lines().Len() == 0 {
		return 0, false
	}
	pos := fc.Lines().At(0).Start
	lineStart := bytes.LastIndexByte(source[:pos], '\n') + 1
	prefix := bytes.TrimLeft(source[lineStart:pos], " \t>")
	end := 0
	for end < len(prefix) && prefix[end] >= '0' && prefix[end] <= '9' {
		end++
	}
	if end == 0 || end > 9 || end >= len(prefix) || (prefix[end] != '.' && prefix[end] != ')') {
		return 0, false
	}
	num, err := strconv.Atoi(string(prefix[:end]))
	return num, err == nil
}

// renderLink drops the anchor around links to image files; the image itself
// is shown as a resource block.
func (r *htmlOverrides) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if isImageTarget(string(n.Destination)) {
		return ast.WalkContinue, nil
	}
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func (r *htmlOverrides) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	var code bytes.Buffer
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		code.Write(seg.Value(source))
	}
	lang := string(n.Language(source))
	if err := highlight(w, lang, code.String()); err != nil {
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.WriteString(html.EscapeString(code.String()))
		_, _ = w.WriteString("</code></pre>\n")
	}
	return ast.WalkSkipChildren, nil
}

var codeFormatter = chromahtml.New(chromahtml.WithClasses(true))

func highlight(w io.Writer, lang, code string) error {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return err
	}
	return codeFormatter.Format(w, styles.Fallback, it)
}
