// internal/form/state.go
//
// Contact form subsystem: state and reducer.
//
// Context
//   A Schema is a compiled FormDef.  It owns the pure transitions that every
//   front-end drives:
//
//       Change(state, field, value) → state   keystroke / edit
//       Blur(state, field)          → state   focus leaves a field
//       Submit(state)               → state   submit attempt
//
//   None of them mutate their input; each returns a fresh State.  Errors hold
//   an entry for a field exactly when that field has been validated once
//   (changed, blurred, or submitted) and its current value fails its rule.
//
// Phases
//   Editing    – Submitted is nil.
//   Submitted  – Submitted holds the snapshot of a clean submit and Errors
//                is empty.  Any Change drops the snapshot and returns to
//                Editing.  Blur alone keeps it.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"maps"
)

// Values maps field name → current text.
type Values map[string]string

// Clone returns an independent copy.  A nil receiver yields nil.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	return maps.Clone(v)
}

// Phase is the logical state of the form.
type Phase int

const (
	Editing Phase = iota
	Submitted
)

func (p Phase) String() string {
	if p == Submitted {
		return "submitted"
	}
	return "editing"
}

// State is the in-memory form state.  Treat it as a value: transitions copy
// the maps before writing.
type State struct {
	Values    Values
	Touched   map[string]bool
	Errors    map[string]string
	Submitted Values // nil until a clean submit
}

// Phase reports Editing or Submitted.
func (s State) Phase() Phase {
	if s.Submitted != nil {
		return Submitted
	}
	return Editing
}

// ErrorCount is the number of fields currently failing.
func (s State) ErrorCount() int { return len(s.Errors) }

func (s State) clone() State {
	return State{
		Values:    s.Values.Clone(),
		Touched:   maps.Clone(s.Touched),
		Errors:    maps.Clone(s.Errors),
		Submitted: s.Submitted.Clone(),
	}
}

// -----------------------------------------------------------------------------
// Schema
// -----------------------------------------------------------------------------

// Schema pairs a FormDef with its compiled rules.  Safe for concurrent use.
type Schema struct {
	def   *FormDef
	rules map[string]rule
}

// Compile builds a Schema.  fd must have passed LoadFormDef / ParseFormDef.
func Compile(fd *FormDef) *Schema {
	s := &Schema{def: fd, rules: make(map[string]rule, len(fd.Fields))}
	for _, f := range fd.Fields {
		s.rules[f.Name] = compileRule(f)
	}
	return s
}

// Contact returns the Schema for the embedded contact form.
func Contact() *Schema { return Compile(ContactDef()) }

// Def exposes the underlying definition.
func (sc *Schema) Def() *FormDef { return sc.def }

// New returns the empty state of a freshly mounted form.
func (sc *Schema) New() State {
	vals := make(Values, len(sc.def.Fields))
	for _, f := range sc.def.Fields {
		vals[f.Name] = ""
	}
	return State{
		Values:  vals,
		Touched: map[string]bool{},
		Errors:  map[string]string{},
	}
}

// Reset is an alias for New, named for the event that triggers it.
func (sc *Schema) Reset() State { return sc.New() }

// Check runs the rule for field against value.  It returns "" when the value
// passes.
func (sc *Schema) Check(field, value string) (string, error) {
	r, ok := sc.rules[field]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	return r.check(value), nil
}

// Change records a new value for field and re-validates that field only.
func (sc *Schema) Change(st State, field, value string) (State, error) {
	r, ok := sc.rules[field]
	if !ok {
		return st, fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	next := st.clone()
	if next.Values == nil {
		next.Values = Values{}
	}
	next.Values[field] = value
	next.Submitted = nil
	next.touch(field, r.check(value))
	return next, nil
}

// Blur marks field as visited and validates its current value.
func (sc *Schema) Blur(st State, field string) (State, error) {
	r, ok := sc.rules[field]
	if !ok {
		return st, fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	next := st.clone()
	next.touch(field, r.check(next.Values[field]))
	return next, nil
}

// Submit validates every field.  On any failure the errors are recorded and
// Submitted is left as it was.  On success the values are snapshotted into
// Submitted and Errors is emptied.
func (sc *Schema) Submit(st State) State {
	next := st.clone()
	for _, f := range sc.def.Fields {
		next.touch(f.Name, sc.rules[f.Name].check(next.Values[f.Name]))
	}
	if len(next.Errors) > 0 {
		return next
	}
	snap := make(Values, len(sc.def.Fields))
	for _, f := range sc.def.Fields {
		snap[f.Name] = next.Values[f.Name]
	}
	next.Submitted = snap
	next.Errors = map[string]string{}
	return next
}

// Restore rebuilds a state from raw values and the set of fields already
// visited, re-deriving Errors.  Unknown names are ignored.  Front-ends that
// keep state on the client (HTML forms) use it to resume between requests.
func (sc *Schema) Restore(vals Values, touched []string) State {
	st := sc.New()
	for _, f := range sc.def.Fields {
		if v, ok := vals[f.Name]; ok {
			st.Values[f.Name] = v
		}
	}
	for _, name := range touched {
		r, ok := sc.rules[name]
		if !ok {
			continue
		}
		st.touch(name, r.check(st.Values[name]))
	}
	return st
}

// RestoreSubmitted reattaches a snapshot carried by the client.  Only a
// snapshot in which every field passes its rule is accepted, since Submit
// never records any other kind; otherwise st is returned unchanged.
func (sc *Schema) RestoreSubmitted(st State, snap Values) State {
	if len(snap) == 0 {
		return st
	}
	clean := make(Values, len(sc.def.Fields))
	for _, f := range sc.def.Fields {
		v := snap[f.Name]
		if sc.rules[f.Name].check(v) != "" {
			return st
		}
		clean[f.Name] = v
	}
	next := st.clone()
	next.Submitted = clean
	return next
}

// ErrorList returns the active errors in field order.
func (sc *Schema) ErrorList(st State) []ErrorField {
	var out []ErrorField
	for _, f := range sc.def.Fields {
		if msg, ok := st.Errors[f.Name]; ok {
			out = append(out, ErrorField{Name: f.Name, Message: msg})
		}
	}
	return out
}

// TouchedList returns visited fields in field order.
func (sc *Schema) TouchedList(st State) []string {
	var out []string
	for _, f := range sc.def.Fields {
		if st.Touched[f.Name] {
			out = append(out, f.Name)
		}
	}
	return out
}

// touch marks field visited and records or clears its error.
func (s *State) touch(field, msg string) {
	if s.Touched == nil {
		s.Touched = map[string]bool{}
	}
	if s.Errors == nil {
		s.Errors = map[string]string{}
	}
	s.Touched[field] = true
	if msg == "" {
		delete(s.Errors, field)
		return
	}
	s.Errors[field] = msg
}
