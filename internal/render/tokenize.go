package render

import (
	"regexp"
	"strings"
)

// ─── Segments ───────────────────────────────────────────────────────────────
//
// Assistant text is tokenized into an ordered list of segments. Each rule
// scans only the plain-text segments left by earlier rules, so a span that
// has been claimed as a resource can never be matched a second time.

type segment struct {
	text string
	res  *Resource
}

type rule struct {
	name  string
	re    *regexp.Regexp
	build func(g groups) *Resource
}

type groups func(name string) string

func tokenize(text string, rules []rule) []segment {
	segs := []segment{{text: text}}
	for _, r := range rules {
		var next []segment
		for _, s := range segs {
			if s.res != nil {
				next = append(next, s)
				continue
			}
			next = append(next, r.split(s.text)...)
		}
		segs = next
	}
	return segs
}

func (r rule) split(text string) []segment {
	var out []segment
	emit := func(s string) {
		if s != "" {
			out = append(out, segment{text: s})
		}
	}

	lead := r.re.SubexpIndex("lead")
	names := r.re.SubexpNames()
	pos, from := 0, 0
	for from <= len(text) {
		loc := r.re.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			break
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += from
			}
		}
		start, end := loc[0], loc[1]
		if lead > 0 && loc[2*lead+1] >= 0 {
			start = loc[2*lead+1]
		}

		g := func(name string) string {
			for i, n := range names {
				if n == name && loc[2*i] >= 0 {
					return text[loc[2*i]:loc[2*i+1]]
				}
			}
			return ""
		}
		res := r.build(g)
		if res == nil {
			from = max(end, from+1)
			continue
		}
		emit(text[pos:start])
		out = append(out, segment{res: res})
		pos, from = end, end
		if end == start {
			from++
		}
	}
	emit(text[pos:])
	return out
}

// ─── Rules ──────────────────────────────────────────────────────────────────

const (
	hostPat      = `https?://[^\s/()\[\]<>"']+`
	localHostPat = `https?://(?:localhost|127\.0\.0\.1)(?::\d+)?`
	leadPat      = `(?P<lead>^|[\s(:"'>])`
	fileChar     = "[^\\s/()\\[\\]<>\"'`]"
	imageNamePat = fileChar + `+?\.(?i:png|jpe?g|gif|webp|svg)\b`
	chartNamePat = fileChar + `+?`
	fileNamePat  = fileChar + "*[^\\s/()\\[\\]<>\"'`.,;:!?]"
)

func expand(pattern string, p Paths) *regexp.Regexp {
	return regexp.MustCompile(strings.NewReplacer(
		"{host}", hostPat,
		"{localhost}", localHostPat,
		"{base}", regexp.QuoteMeta(p.base()),
		"{lead}", leadPat,
		"{img}", imageNamePat,
		"{chart}", chartNamePat,
		"{file}", fileNamePat,
	).Replace(pattern))
}

// buildRules returns the extraction rules in evaluation order: downloads,
// then charts, then images from most to least specific.
func buildRules(p Paths) []rule {
	download := func(g groups) *Resource {
		raw := g("url")
		if raw == "" {
			raw = g("bare")
		}
		name := decodeFilename(lastSegment(raw))
		if name == "" {
			return nil
		}
		return &Resource{
			Kind:     KindDownload,
			URL:      p.DownloadURL(name),
			Filename: name,
			Icon:     DownloadIcon(name),
		}
	}
	chart := func(g groups) *Resource {
		name := g("name")
		title := strings.TrimSpace(g("label"))
		if title == "" {
			title = ChartTitle(name)
		}
		return &Resource{Kind: KindChart, URL: p.ChartURL(name), Title: title}
	}
	image := func(g groups) *Resource {
		return &Resource{Kind: KindImage, URL: p.ImageURL(g("name")), Title: altText(g("label"))}
	}
	linkedImage := func(g groups) *Resource {
		target := g("url")
		if !isImageTarget(target) {
			return nil
		}
		u := target
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			u = p.ImageURL(lastSegment(target))
		}
		return &Resource{Kind: KindImage, URL: u, Title: altText(g("label"))}
	}

	return []rule{
		{
			name:  "download marker",
			re:    expand(`DOWNLOAD:[ \t]*(?:!?\[(?P<label>[^\]]*)\]\(\s*<?(?P<url>[^\s)>]+)>?\s*\)|(?P<bare>\S*[^\s.,;:!?)\]]))`, p),
			build: download,
		},
		{
			name:  "download link",
			re:    expand(`!?\[(?P<label>[^\]]*)\]\(\s*<?(?P<url>(?:{host})?(?:{base})?/downloads?/{file})>?\s*\)`, p),
			build: download,
		},
		{
			name:  "download url",
			re:    expand(`{lead}(?P<url>(?:{host})?(?:{base})?/downloads?/{file})`, p),
			build: download,
		},
		{
			name:  "chart link",
			re:    expand(`!?\[(?P<label>[^\]]*)\]\(\s*<?(?:{host})?(?:{base})?(?:\.?/)?(?:outputs/)?charts/(?P<name>{chart})\.html>?\s*\)`, p),
			build: chart,
		},
		{
			name:  "chart url",
			re:    expand(`{lead}(?:{host})?(?:{base})?(?:\.?/)?(?:outputs/)?charts/(?P<name>{chart})\.html\b`, p),
			build: chart,
		},
		{
			name:  "hosted image link",
			re:    expand(`!?\[(?P<label>[^\]]*)\]\(\s*<?(?:{localhost}(?:{base})?|{host}{base})/images/(?P<name>{img})>?\s*\)`, p),
			build: image,
		},
		{
			name:  "hosted image url",
			re:    expand(`(?:{localhost}(?:{base})?|{host}{base})/images/(?P<name>{img})`, p),
			build: image,
		},
		{
			name:  "image link",
			re:    expand(`!?\[(?P<label>[^\]]*)\]\(\s*<?(?P<url>[^\s)>]+)>?(?:\s+"[^"]*")?\s*\)`, p),
			build: linkedImage,
		},
		{
			name:  "output image path",
			re:    expand("(?:(?i:path|saved as|saved to|saved at)[ \\t]*:?[ \\t]*)?(?:[^\\s()\\[\\]<>\"'`]*/)?outputs/images/(?P<name>{img})", p),
			build: image,
		},
		{
			name:  "image path",
			re:    expand(`{lead}(?:{base})?/images/(?P<name>{img})`, p),
			build: image,
		},
		{
			name:  "temporary image",
			re:    expand(`\b(?P<name>ComfyUI_\d+_\.png)\b`, p),
			build: image,
		},
	}
}

func altText(label string) string {
	if label = strings.TrimSpace(label); label != "" {
		return label
	}
	return "Generated image"
}
