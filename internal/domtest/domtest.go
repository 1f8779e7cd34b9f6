// Package domtest parses rendered HTML and answers the questions UI tests
// ask: which elements carry a test id, which input has a placeholder, which
// control a label points at, and whether some text is visible.
//
// Only text nodes count as visible text.  Input values, attributes, and
// <script> / <style> bodies are ignored, matching how a user reads the page.
package domtest

import (
	"net/url"
	"regexp"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// Doc is a parsed document.
type Doc struct {
	root *html.Node
}

// Parse parses body or fails the test.
func Parse(tb testing.TB, body string) *Doc {
	tb.Helper()
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		tb.Fatalf("parse html: %v", err)
	}
	return &Doc{root: root}
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the concatenated visible text under n.
func Text(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

// AllByTestID returns every element with data-testid == id.
func (d *Doc) AllByTestID(id string) []*html.Node {
	return d.findAll(func(n *html.Node) bool {
		v, ok := Attr(n, "data-testid")
		return ok && v == id
	})
}

// ByPlaceholder returns the first element whose placeholder equals p.
func (d *Doc) ByPlaceholder(p string) *html.Node {
	return d.first(func(n *html.Node) bool {
		v, ok := Attr(n, "placeholder")
		return ok && v == p
	})
}

// ByLabelText returns the control referenced by the <label> whose text is
// exactly text.
func (d *Doc) ByLabelText(text string) *html.Node {
	label := d.first(func(n *html.Node) bool {
		return n.Data == "label" && strings.TrimSpace(Text(n)) == text
	})
	target, ok := Attr(label, "for")
	if !ok {
		return nil
	}
	return d.first(func(n *html.Node) bool {
		id, ok := Attr(n, "id")
		return ok && id == target
	})
}

// Buttons returns every element exposed with the button role.
func (d *Doc) Buttons() []*html.Node {
	return d.findAll(func(n *html.Node) bool {
		if n.Data == "button" {
			return true
		}
		role, _ := Attr(n, "role")
		return role == "button"
	})
}

// HasText reports whether any single text node matches re.
func (d *Doc) HasText(re *regexp.Regexp) bool {
	found := false
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.TextNode && re.MatchString(n.Data) {
			found = true
		}
		return !found && !hidden(n)
	})
	return found
}

// HasExactText reports whether any element's trimmed text equals s.
func (d *Doc) HasExactText(s string) bool {
	return d.first(func(n *html.Node) bool {
		return strings.TrimSpace(Text(n)) == s
	}) != nil
}

// FormValues serialises every named input and textarea the way a browser
// posts a form: repeated names keep document order.
func (d *Doc) FormValues() url.Values {
	vals := url.Values{}
	for _, n := range d.findAll(func(n *html.Node) bool { return n.Data == "input" || n.Data == "textarea" }) {
		name, ok := Attr(n, "name")
		if !ok || name == "" {
			continue
		}
		if n.Data == "textarea" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				sb.WriteString(c.Data)
			}
			vals.Add(name, sb.String())
			continue
		}
		v, _ := Attr(n, "value")
		vals.Add(name, v)
	}
	return vals
}

func (d *Doc) first(match func(*html.Node) bool) *html.Node {
	all := d.findAll(match)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func (d *Doc) findAll(match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// walk visits n depth-first; returning false skips n's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func hidden(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "textarea")
}

func collectText(n *html.Node, sb *strings.Builder) {
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return !hidden(c)
	})
}
