package contact

import (
	"errors"
	"net/http"

	"github.com/yanizio/contactform/internal/form"
	"github.com/yanizio/contactform/internal/metrics"
	"github.com/yanizio/contactform/internal/requestinfo"
)

const (
	eventChange = "change"
	eventBlur   = "blur"
	eventSubmit = "submit"
	eventReset  = "reset"

	maxBody = 64 << 10
)

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handlePage(w http.ResponseWriter, r *http.Request) {
	c.renderPage(w, c.schema.New())
}

func (c *Component) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if !c.verifyForm(w, r) {
		return
	}

	st, err := form.HandleSubmit(c.schema, r)
	if err != nil && !form.IsValidationError(err) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	c.observeSubmit(r, failedFields(form.ValidationFields(err)))
	c.renderPage(w, st)
}

// handleEvent serves the form-post flavour of Change and Blur.  The posted
// `field` names the field the event targets.
func (c *Component) handleEvent(event string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.verifyForm(w, r) {
			return
		}
		st, err := c.apply(form.DecodeState(c.schema, r.PostForm), event, r.PostForm.Get("field"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.renderPage(w, st)
	}
}

func (c *Component) handleReset(w http.ResponseWriter, r *http.Request) {
	if !c.verifyForm(w, r) {
		return
	}
	metrics.FormEvents.WithLabelValues(eventReset).Inc()
	c.renderPage(w, c.schema.Reset())
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// apply runs one non-submit event through the reducer.
func (c *Component) apply(st form.State, event, field string) (form.State, error) {
	var err error
	switch event {
	case eventChange:
		st, err = c.schema.Change(st, field, st.Values[field])
	case eventBlur:
		st, err = c.schema.Blur(st, field)
	case eventReset:
		st = c.schema.Reset()
	default:
		return st, errUnknownEvent
	}
	if err != nil {
		return st, err
	}
	metrics.FormEvents.WithLabelValues(event).Inc()
	return st, nil
}

var errUnknownEvent = errors.New("unknown event")

// verifyForm parses the body and checks the CSRF token.  It writes the
// error response itself and returns false when the request must stop.
func (c *Component) verifyForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	if !c.csrf.Verify(r.PostForm.Get("csrf_token")) {
		c.reject(w, r)
		return false
	}
	return true
}

func (c *Component) reject(w http.ResponseWriter, r *http.Request) {
	metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
	c.log.Warnw("contact form csrf rejected",
		append([]any{"path", r.URL.Path}, requestinfo.FromContext(r.Context()).Summary()...)...)
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

// failedFields lists the names of failing fields, in field order.
func failedFields(errs []form.ErrorField) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Name)
	}
	return out
}

// observeSubmit feeds metrics and writes one log line per submit attempt.
// Field values are never logged.
func (c *Component) observeSubmit(r *http.Request, failed []string) {
	metrics.ObserveSubmit(failed)

	outcome := metrics.OutcomeAccepted
	if len(failed) > 0 {
		outcome = metrics.OutcomeInvalid
	}
	kv := []any{"outcome", outcome, "failed", failed}
	kv = append(kv, requestinfo.FromContext(r.Context()).Summary()...)
	c.log.Infow("contact form submitted", kv...)
}
