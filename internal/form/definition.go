// internal/form/definition.go
//
// Contact form subsystem: YAML definition loader.
//
// Context
//   The contact form is declared in YAML.  The definition names the form,
//   its header text, and each field with its label, placeholder, and rules.
//   A default definition ships embedded in the binary (contact.yaml); an
//   operator may point `form.definition` at an override file, provided the
//   override keeps the same field names.
//
// Workflow
//   •  Structs mirror the YAML schema: FormDef → FieldDef.
//   •  LoadFormDef / ParseFormDef decode YAML and validate structural rules.
//   •  LoadSchema picks the embedded or override definition and compiles it.
//
// Style
//   Full sentences, two spaces after periods, Oxford commas.
//
//------------------------------------------------------------------------------

package form

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.
type FormDef struct {
	ID     string     `yaml:"id"`     // Identifier, e.g. "contact".
	Title  string     `yaml:"title"`  // Header text rendered above the inputs.
	Intro  string     `yaml:"intro"`  // Optional HTML paragraph under the title.  Sanitised on render.
	Submit string     `yaml:"submit"` // Submit button caption.  Defaults to "Submit".
	Fields []FieldDef `yaml:"fields"` // Ordered field list.
}

// FieldDef describes a single input control.  Validation metadata lives
// inline so every front-end enforces the same rules.
type FieldDef struct {
	Name        string `yaml:"name"`        // State key and error prefix.  Required.
	Label       string `yaml:"label"`       // Human-readable label.  Required.
	Type        string `yaml:"type"`        // text, email, or textarea.
	Placeholder string `yaml:"placeholder"` // Optional placeholder text.
	Required    bool   `yaml:"required"`    // True if input is mandatory.
	MinLength   int    `yaml:"minlength"`   // ≥ 0, 0 means unset.
	MaxLength   int    `yaml:"maxlength"`   // ≥ 0, 0 means unset.
	Pattern     string `yaml:"pattern"`     // Regex pattern string.
	ErrorMsg    string `yaml:"error"`       // Custom message for any failure, optional.
}

// Field returns the named field definition.
func (fd *FormDef) Field(name string) (FieldDef, bool) {
	for _, f := range fd.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// -----------------------------------------------------------------------------
// Embedded default
// -----------------------------------------------------------------------------

//go:embed contact.yaml
var contactYAML []byte

// ContactDef parses the embedded contact form definition.  The embedded file
// is covered by tests, so a failure here is a build defect and panics.
func ContactDef() *FormDef {
	fd, err := ParseFormDef(contactYAML, "contact.yaml")
	if err != nil {
		panic(fmt.Sprintf("form: embedded contact definition: %v", err))
	}
	return fd
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// LoadFormDef reads and parses one YAML file.
func LoadFormDef(path string) (*FormDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}
	return ParseFormDef(raw, path)
}

// ParseFormDef decodes raw YAML.  source only decorates error messages.
func ParseFormDef(raw []byte, source string) (*FormDef, error) {
	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", source, err)
	}
	if fd.Submit == "" {
		fd.Submit = "Submit"
	}
	if err := validateFormDef(&fd, source); err != nil {
		return nil, err
	}
	return &fd, nil
}

// LoadSchema returns the compiled contact form.  An empty path selects the
// embedded definition.  An override must declare the same fields as the
// embedded one, in any order, because front-ends address fields by name.
func LoadSchema(path string) (*Schema, error) {
	fd := ContactDef()
	if path != "" {
		override, err := LoadFormDef(path)
		if err != nil {
			return nil, err
		}
		if err := sameFields(fd, override); err != nil {
			return nil, fmt.Errorf("form %s: %w", path, err)
		}
		fd = override
	}
	return Compile(fd), nil
}

func sameFields(want, got *FormDef) error {
	if len(want.Fields) != len(got.Fields) {
		return fmt.Errorf("want %d fields, got %d", len(want.Fields), len(got.Fields))
	}
	for _, f := range want.Fields {
		if _, ok := got.Field(f.Name); !ok {
			return fmt.Errorf("missing field '%s'", f.Name)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

var supportedTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"textarea": true,
}

// validateFormDef enforces structural rules that YAML tags cannot express.
func validateFormDef(fd *FormDef, source string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", source)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", source)
	}

	seen := make(map[string]struct{}, len(fd.Fields))
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := validateField(f, source); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", source, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// validateField confirms that essential attributes are present and sane.
func validateField(f *FieldDef, source string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", source)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", source, f.Name)
	}
	if !supportedTypes[f.Type] {
		return fmt.Errorf("form %s: field '%s' unsupported type %q", source, f.Name, f.Type)
	}
	if f.Pattern != "" {
		if _, err := regexp.Compile(f.Pattern); err != nil {
			return fmt.Errorf("form %s: field '%s' invalid regex pattern: %v", source, f.Name, err)
		}
	}
	if f.MinLength < 0 || f.MaxLength < 0 {
		return fmt.Errorf("form %s: field '%s' minlength/maxlength cannot be negative", source, f.Name)
	}
	if f.MaxLength > 0 && f.MinLength > f.MaxLength {
		return fmt.Errorf("form %s: field '%s' minlength greater than maxlength", source, f.Name)
	}
	return nil
}
