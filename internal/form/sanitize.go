// internal/form/sanitize.go
//
// Contact form subsystem: operator markup sanitiser.
//
// Context
//   A form definition may carry an `intro` paragraph shown under the title.
//   Override definitions are files an operator edits by hand, so the intro
//   may contain light markup (links, emphasis, line breaks).  The markup is
//   passed through a bluemonday policy before it reaches any front-end.
//
// Workflow
//   •  IntroHTML keeps user-generated-content markup and drops scripts,
//      styles, event handlers, and unsafe URLs.  The HTML renderer writes
//      its result unescaped.
//   •  IntroText strips every tag for the terminal front-end, which has no
//      way to show markup.
//
// Notes
//   Submitted values never pass through here.  They are echoed back
//   verbatim and HTML-escaped by the renderer.
//
//------------------------------------------------------------------------------

package form

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce  sync.Once
	introPolicy *bluemonday.Policy
	textPolicy  *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		introPolicy = bluemonday.UGCPolicy()
		introPolicy.RequireNoFollowOnLinks(true)
		introPolicy.AddTargetBlankToFullyQualifiedLinks(true)
		textPolicy = bluemonday.StrictPolicy()
	})
	return introPolicy, textPolicy
}

// IntroHTML returns the definition's intro as safe HTML.  Empty when the
// definition has none.
func (fd *FormDef) IntroHTML() string {
	if strings.TrimSpace(fd.Intro) == "" {
		return ""
	}
	ugc, _ := policies()
	return strings.TrimSpace(ugc.Sanitize(fd.Intro))
}

// IntroText returns the intro with all markup removed, for plain-text
// front-ends.
func (fd *FormDef) IntroText() string {
	if strings.TrimSpace(fd.Intro) == "" {
		return ""
	}
	_, strict := policies()
	return strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(fd.Intro))), " ")
}
