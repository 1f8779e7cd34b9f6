package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yanizio/contactform/internal/form"
)

// apiRequest is one event against a client-held state.
type apiRequest struct {
	Values    form.Values `json:"values"`
	Touched   []string    `json:"touched"`
	Submitted form.Values `json:"submitted"` // snapshot from an earlier response, optional
	Event     string      `json:"event"`     // change, blur, submit, or reset
	Field     string      `json:"field"`     // change and blur only
}

// apiResponse mirrors form.State in a client-friendly shape.
type apiResponse struct {
	Values    form.Values       `json:"values"`
	Touched   []string          `json:"touched"`
	Errors    []form.ErrorField `json:"errors"`
	Submitted form.Values       `json:"submitted,omitempty"`
	Phase     string            `json:"phase"`
}

type apiError struct {
	Error string `json:"error"`
}

// handleAPI answers POST /api/contact.  The CSRF token travels in the
// X-CSRF-Token header.  A submit with failing fields returns 422 with the
// same body shape as a success.
func (c *Component) handleAPI(w http.ResponseWriter, r *http.Request) {
	if !c.csrf.Verify(r.Header.Get("X-CSRF-Token")) {
		c.reject(w, r)
		return
	}

	var req apiRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "malformed request body"})
		return
	}

	st := c.schema.RestoreSubmitted(c.schema.Restore(req.Values, req.Touched), req.Submitted)
	status := http.StatusOK
	if req.Event == eventSubmit {
		st = c.schema.Submit(st)
		c.observeSubmit(r, failedFields(c.schema.ErrorList(st)))
		if st.ErrorCount() > 0 {
			status = http.StatusUnprocessableEntity
		}
	} else {
		var err error
		st, err = c.apply(st, req.Event, req.Field)
		switch {
		case errors.Is(err, form.ErrUnknownField), errors.Is(err, errUnknownEvent):
			writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
			return
		case err != nil:
			c.log.Errorw("contact api event failed", "event", req.Event, "err", err)
			writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
			return
		}
	}

	writeJSON(w, status, c.toResponse(st))
}

func (c *Component) toResponse(st form.State) apiResponse {
	errs := c.schema.ErrorList(st)
	if errs == nil {
		errs = []form.ErrorField{}
	}
	touched := c.schema.TouchedList(st)
	if touched == nil {
		touched = []string{}
	}
	return apiResponse{
		Values:    st.Values,
		Touched:   touched,
		Errors:    errs,
		Submitted: st.Submitted,
		Phase:     st.Phase().String(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
