package contact

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/head"
)

//go:embed templates/page.html
var pageHTML string

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Head *head.Builder
	Form template.HTML
}

// renderPage writes the full document for st.  Failures are system errors
// and become a 500.
func (c *Component) renderPage(w http.ResponseWriter, st form.State) {
	tok, err := c.csrf.Generate()
	if err != nil {
		c.fail(w, "csrf generate", err)
		return
	}
	markup, err := form.RenderForm(c.schema, st, form.RenderOptions{Action: "/", CSRFToken: tok})
	if err != nil {
		c.fail(w, "render form", err)
		return
	}

	hb := head.New()
	hb.SetTitle(c.schema.Def().Title)
	hb.Meta("viewport", "width=device-width, initial-scale=1")
	hb.Stylesheet("/static/contact.css")
	hb.Script("/static/contact.js")

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, pageData{Head: hb, Form: markup}); err != nil {
		c.fail(w, "render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store") // pages embed a CSRF token
	_, _ = w.Write(buf.Bytes())
}

func (c *Component) fail(w http.ResponseWriter, what string, err error) {
	c.log.Errorw("contact page failed", "step", what, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
