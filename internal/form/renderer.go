// internal/form/renderer.go
//
// Contact form subsystem: HTML renderer.
//
// Context
//   Given a Schema and a State this file converts the form into plain,
//   accessible HTML.  The renderer is a pure function of its inputs, so the
//   HTTP layer can re-render after every event without hidden state.
//
// Workflow
//   •  RenderForm writes the header and the sanitised intro, then each field via writeField, then the
//      hidden meta inputs, the submit button, and (after a clean submit) the
//      submission summary.
//   •  Every active error becomes its own <p data-testid="error"> element
//      directly under its input.  No placeholder elements are written for
//      valid fields, so counting error elements counts failing fields.
//   •  The touched set travels as repeated hidden `touched` inputs; together
//      with the field values it is all Schema.Restore needs.  After a clean
//      submit the snapshot travels as `submitted.<field>` inputs.
//   •  The caller receives template.HTML so the surrounding page template
//      does not double-escape the markup.
//
// Style
//   Output HTML carries no framework classes.  Each input gets
//   id="fld-{name}" and is wrapped in <div class="form-field">.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"
)

// RenderOptions bundles optional parameters influencing HTML output.
type RenderOptions struct {
	// Action is the submit target.  Empty defaults to "/".
	Action string
	// CSRFToken is embedded as a hidden input when non-empty.
	CSRFToken string
}

// RenderForm returns the HTML markup for st.
func RenderForm(sc *Schema, st State, opts RenderOptions) (template.HTML, error) {
	action := opts.Action
	if action == "" {
		action = "/"
	}
	fd := sc.Def()

	var buf bytes.Buffer
	buf.WriteString(`<form id="` + html.EscapeString(fd.ID) + `-form" class="contact-form" method="post" action="` +
		html.EscapeString(action) + `" novalidate>` + "\n")
	buf.WriteString(`<h1>` + html.EscapeString(fd.Title) + `</h1>` + "\n")
	if intro := fd.IntroHTML(); intro != "" {
		buf.WriteString(`<div class="intro" data-testid="intro">` + intro + `</div>` + "\n")
	}

	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := writeField(&buf, f, st.Values[f.Name], st.Errors[f.Name]); err != nil {
			return "", err
		}
	}

	// Hidden meta inputs.
	if opts.CSRFToken != "" {
		buf.WriteString(`<input type="hidden" name="csrf_token" value="` + html.EscapeString(opts.CSRFToken) + `">` + "\n")
	}
	for _, name := range sc.TouchedList(st) {
		buf.WriteString(`<input type="hidden" name="touched" value="` + html.EscapeString(name) + `">` + "\n")
	}
	if st.Phase() == Submitted {
		for _, f := range fd.Fields {
			buf.WriteString(`<input type="hidden" name="` + html.EscapeString(SubmittedPrefix+f.Name) +
				`" value="` + html.EscapeString(st.Submitted[f.Name]) + `">` + "\n")
		}
	}

	buf.WriteString(`<button type="submit">` + html.EscapeString(fd.Submit) + `</button>` + "\n")
	buf.WriteString(`</form>` + "\n")

	if st.Phase() == Submitted {
		writeSubmission(&buf, fd, st.Submitted)
	}
	return template.HTML(buf.String()), nil
}

// writeField emits HTML for one field, its current value, and its error (if
// any) into buf.
func writeField(buf *bytes.Buffer, f *FieldDef, val, errMsg string) error {
	buf.WriteString(`<div class="form-field">` + "\n")

	idAttr := `id="fld-` + html.EscapeString(f.Name) + `"`
	nameAttr := `name="` + html.EscapeString(f.Name) + `"`

	// Label first (for accessibility)
	buf.WriteString(`<label for="fld-` + html.EscapeString(f.Name) + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	switch f.Type {
	case "text", "email":
		buf.WriteString(`<input ` + idAttr + ` ` + nameAttr + ` type="` + f.Type + `"`)
		writeConstraints(buf, f)
		if val != "" {
			buf.WriteString(` value="` + html.EscapeString(val) + `"`)
		}
		buf.WriteString(`>` + "\n")

	case "textarea":
		buf.WriteString(`<textarea ` + idAttr + ` ` + nameAttr)
		writeConstraints(buf, f)
		buf.WriteString(`>`)
		buf.WriteString(html.EscapeString(val))
		buf.WriteString(`</textarea>` + "\n")

	default:
		return fmt.Errorf("writeField: unsupported field type %q in form field %s", f.Type, f.Name)
	}

	if errMsg != "" {
		buf.WriteString(`<p data-testid="error" class="error" id="err-` + html.EscapeString(f.Name) + `">Error: ` +
			html.EscapeString(errMsg) + `</p>` + "\n")
	}

	buf.WriteString(`</div>` + "\n")
	return nil
}

// writeConstraints attaches placeholder and HTML5 hints.  The form is marked
// novalidate, so they are hints only and never block a submit.
func writeConstraints(buf *bytes.Buffer, f *FieldDef) {
	if f.Placeholder != "" {
		buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
	}
	if f.Required {
		buf.WriteString(` required`)
	}
	if f.MinLength > 0 {
		buf.WriteString(` minlength="` + strconv.Itoa(f.MinLength) + `"`)
	}
	if f.MaxLength > 0 {
		buf.WriteString(` maxlength="` + strconv.Itoa(f.MaxLength) + `"`)
	}
	if f.Pattern != "" {
		buf.WriteString(` pattern="` + html.EscapeString(f.Pattern) + `"`)
	}
}

// writeSubmission echoes a clean submit.  Values are escaped, never
// filtered, so the page shows exactly what was typed.  Empty optional fields
// are skipped so an absent message leaves no trace.
func writeSubmission(buf *bytes.Buffer, fd *FormDef, snap Values) {
	buf.WriteString(`<div class="submission" data-testid="submission">` + "\n")
	buf.WriteString(`<h2>You Submitted:</h2>` + "\n")
	for _, f := range fd.Fields {
		v := snap[f.Name]
		if v == "" {
			continue
		}
		buf.WriteString(`<p data-testid="` + html.EscapeString(f.Name) + `Display">` +
			html.EscapeString(SummaryLabel(f)) + `: ` + html.EscapeString(v) + `</p>` + "\n")
	}
	buf.WriteString(`</div>` + "\n")
}

// SummaryLabel is the field label without the trailing required marker.
func SummaryLabel(f FieldDef) string {
	l := f.Label
	for len(l) > 0 && l[len(l)-1] == '*' {
		l = l[:len(l)-1]
	}
	return l
}
