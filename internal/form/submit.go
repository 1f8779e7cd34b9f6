// internal/form/submit.go
//
// Contact form subsystem: request decoding and the Submit helper.
//
// Context
//   HTML front-ends keep form state in the page: field values, repeated
//   `touched` inputs, and after a clean submit one `submitted.<field>`
//   input per field holding the snapshot.  DecodeState turns a parsed POST body back into a
//   State, and HandleSubmit runs the whole submit path in one call so
//   handlers stay terse.
//
//------------------------------------------------------------------------------

package form

import (
	"net/http"
	"net/url"
)

// SubmittedPrefix prefixes the hidden inputs that carry the snapshot.
const SubmittedPrefix = "submitted."

// DecodeState rebuilds a State from posted form values.
func DecodeState(sc *Schema, posted url.Values) State {
	vals := make(Values, len(sc.Def().Fields))
	for _, f := range sc.Def().Fields {
		if raw, ok := posted[f.Name]; ok && len(raw) > 0 {
			vals[f.Name] = raw[0]
		}
	}
	var snap Values
	for _, f := range sc.Def().Fields {
		if raw, ok := posted[SubmittedPrefix+f.Name]; ok && len(raw) > 0 {
			if snap == nil {
				snap = make(Values, len(sc.Def().Fields))
			}
			snap[f.Name] = raw[0]
		}
	}
	return sc.RestoreSubmitted(sc.Restore(vals, posted["touched"]), snap)
}

// HandleSubmit parses r, replays the posted state through Submit, and returns
// the resulting state.  On validation failure the state is still returned
// (for re-rendering) together with a ValidationError; check it with
// IsValidationError.  Other errors are system failures.
func HandleSubmit(sc *Schema, r *http.Request) (State, error) {
	if err := r.ParseForm(); err != nil {
		return sc.New(), err
	}

	st := sc.Submit(DecodeState(sc, r.PostForm))
	if errs := sc.ErrorList(st); len(errs) > 0 {
		return st, validationError{Fields: errs}
	}
	return st, nil
}
