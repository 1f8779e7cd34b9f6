// internal/head/builder.go
//
// The Builder collects everything that should appear inside a page's
// <head> element.  It is scoped to a single render call.  Handlers push
// tags into the builder, then the page layout decides where to emit each
// slice.
//
// Features
// --------
//   - SetTitle             – single <title> tag (last call wins).
//   - Meta, Stylesheet,
//     Script               – tags with deduplication by URL or name.
//   - Render helpers       – methods returning template.HTML.
package head

import (
	"html/template"
	"strings"
	"sync"
)

// Builder may be shared by helpers running on one request; a mutex guards
// writes.
type Builder struct {
	mu sync.Mutex

	title string

	metas   []string
	links   []string
	scripts []string

	seen map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) {
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// Title returns a fully formed <title> tag or an empty string.
func (b *Builder) Title() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.title == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(b.title) + "</title>")
}

// Meta adds <meta name=… content=…>.  A second call for the same name is
// ignored.
func (b *Builder) Meta(name, content string) {
	b.add("meta:"+name, &b.metas,
		`<meta name="`+attr(name)+`" content="`+attr(content)+`">`)
}

// Stylesheet links a CSS file once.
func (b *Builder) Stylesheet(href string) {
	b.add("link:"+href, &b.links, `<link rel="stylesheet" href="`+attr(href)+`">`)
}

// Script adds a deferred external script once.
func (b *Builder) Script(src string) {
	b.add("script:"+src, &b.scripts, `<script src="`+attr(src)+`" defer></script>`)
}

func (b *Builder) add(key string, tgt *[]string, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

func attr(s string) string { return template.HTMLEscapeString(s) }

// ------------------------------------------------------------------
// Rendering helpers called from the page layout
// ------------------------------------------------------------------

func (b *Builder) Metas() template.HTML   { return b.concat(b.metas) }
func (b *Builder) Links() template.HTML   { return b.concat(b.links) }
func (b *Builder) Scripts() template.HTML { return b.concat(b.scripts) }

// concat joins pre-escaped tags with newlines.
func (b *Builder) concat(sl []string) template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	return template.HTML(strings.Join(sl, "\n"))
}
