// internal/form/validate.go
//
// Contact form subsystem: field rules.
//
// Context
//   Each FieldDef compiles into one rule.  The rule is a go-playground
//   validator tag string (`required,min=5`, `required,email`, and so on)
//   plus an optional regex, evaluated per value with validator.Var.  Rules
//   are pure predicates: they never look at other fields, the state, or the
//   renderer.
//
// Messages
//   Validator failures are translated into user-facing text keyed by the
//   field name, e.g. “firstName is a required field” or “email must be a
//   valid email address”.  A FieldDef.ErrorMsg overrides all of them.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate is safe for concurrent use.
var validate = validator.New()

// ErrUnknownField is returned when an event names a field the form lacks.
var ErrUnknownField = errors.New("form: unknown field")

// ErrorField describes a single validation failure so front-ends can render
// a field-level message.
type ErrorField struct {
	Name    string `json:"name"`    // field name
	Message string `json:"message"` // user-facing message
}

// validationError wraps []ErrorField and satisfies the error interface.
//
// It allows callers to distinguish user input errors from system failures
// via errors.As / IsValidationError.
type validationError struct{ Fields []ErrorField }

func (ve validationError) Error() string { return "form validation failed" }

// IsValidationError reports whether err came from a failed submit.
func IsValidationError(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// ValidationFields returns the field errors carried by err, or nil.
func ValidationFields(err error) []ErrorField {
	var ve validationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// -----------------------------------------------------------------------------
// Rules
// -----------------------------------------------------------------------------

// rule is the compiled form of one FieldDef.  An empty tag and nil pattern
// means the field never fails.
type rule struct {
	field   FieldDef
	tag     string
	pattern *regexp.Regexp
}

// compileRule converts declarative FieldDef attributes into a validator tag.
func compileRule(f FieldDef) rule {
	var tags []string
	switch {
	case f.Required:
		tags = append(tags, "required")
	case f.MinLength > 0 || f.MaxLength > 0 || f.Type == "email":
		// Optional fields are only checked once something was entered.
		tags = append(tags, "omitempty")
	}
	if f.MinLength > 0 {
		tags = append(tags, "min="+strconv.Itoa(f.MinLength))
	}
	if f.MaxLength > 0 {
		tags = append(tags, "max="+strconv.Itoa(f.MaxLength))
	}
	if f.Type == "email" {
		tags = append(tags, "email")
	}

	r := rule{field: f, tag: strings.Join(tags, ",")}
	if f.Pattern != "" {
		r.pattern = regexp.MustCompile(f.Pattern) // pre-validated at load
	}
	return r
}

// check returns the user-facing message for value, or "" when it passes.
func (r rule) check(value string) string {
	if r.tag != "" {
		if err := validate.Var(value, r.tag); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return r.message(verrs[0].Tag(), verrs[0].Param())
			}
			return r.message("", "")
		}
	}
	if r.pattern != nil && value != "" && !r.pattern.MatchString(value) {
		return r.message("pattern", "")
	}
	return ""
}

func (r rule) message(tag, param string) string {
	if r.field.ErrorMsg != "" {
		return r.field.ErrorMsg
	}
	name := r.field.Name
	switch tag {
	case "required":
		return name + " is a required field"
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", name, param)
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", name, param)
	case "email":
		return name + " must be a valid email address"
	case "pattern":
		return name + " does not match the required format"
	default:
		return name + " is invalid"
	}
}
