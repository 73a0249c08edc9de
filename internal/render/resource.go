package render

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultAssetBase is the path prefix under which the frontend proxy serves
// backend-generated assets.
const DefaultAssetBase = "/agentplatform/api"

// Paths holds the fixed bases resource URLs are rewritten to.
type Paths struct {
	AssetBase string
}

// DefaultPaths returns the production asset layout.
func DefaultPaths() Paths {
	return Paths{AssetBase: DefaultAssetBase}
}

func (p Paths) base() string {
	b := strings.TrimRight(p.AssetBase, "/")
	if b == "" {
		return DefaultAssetBase
	}
	return b
}

// ImageURL is the canonical URL of a generated image file.
func (p Paths) ImageURL(name string) string { return p.base() + "/images/" + name }

// ChartURL is the canonical URL of an interactive chart; name excludes ".html".
func (p Paths) ChartURL(name string) string { return p.base() + "/charts/" + name + ".html" }

// DownloadURL is the canonical URL of a downloadable file. filename is the
// already-decoded name.
func (p Paths) DownloadURL(filename string) string {
	return p.base() + "/download/" + url.PathEscape(filename)
}

// ─── Resources ──────────────────────────────────────────────────────────────

type Kind int

const (
	KindImage Kind = iota
	KindChart
	KindDownload
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindChart:
		return "chart"
	case KindDownload:
		return "download"
	}
	return "unknown"
}

// Resource is one media reference recognized in assistant text.
type Resource struct {
	Kind     Kind
	URL      string // canonical
	Title    string // chart title or image alt text
	Filename string // downloads only, percent-decoded
	Icon     string // downloads only
}

var downloadIcons = map[string]string{
	"pptx": "📊",
	"xlsx": "📗",
	"csv":  "📑",
	"pdf":  "📕",
	"docx": "📘",
	"zip":  "🗜️",
}

const defaultDownloadIcon = "📄"

// DownloadIcon returns the icon shown next to a file of the given name.
func DownloadIcon(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if icon, ok := downloadIcons[ext]; ok {
		return icon
	}
	return defaultDownloadIcon
}

var titleSeparators = regexp.MustCompile(`[_\-]+`)

// ChartTitle derives a display title from a chart file name:
// "sales_q1.html" becomes "Sales Q1".
func ChartTitle(name string) string {
	name = strings.TrimSuffix(path.Base(name), ".html")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	name = strings.Join(strings.Fields(titleSeparators.ReplaceAllString(name, " ")), " ")
	// Casers keep state, so each call gets its own.
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// decodeFilename percent-decodes name exactly once.
func decodeFilename(name string) string {
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// lastSegment returns the final path element of a URL or path, without any
// query string or fragment.
func lastSegment(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimRight(raw, "/")
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

var imageExt = regexp.MustCompile(`(?i)\.(?:png|jpe?g|gif|webp|svg)$`)

var tempImageName = regexp.MustCompile(`^ComfyUI_\d+_\.png$`)

// isImageTarget reports whether a link target points at an image file.
func isImageTarget(target string) bool {
	name := lastSegment(target)
	return imageExt.MatchString(name) || tempImageName.MatchString(name)
}
