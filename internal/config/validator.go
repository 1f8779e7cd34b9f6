// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// unmarshals the merged Koanf tree into a `Config` instance.  Any
// validation error aborts startup, ensuring the binary never runs with
// malformed configuration.
//
// Struct tags cover shape; validateStruct adds the cross-field rule that a
// configured CSRF key must decode to at least 32 bytes.

package config

import (
	"encoding/base64"
	"fmt"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = validator.New()

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	if err := v.Struct(c); err != nil {
		return err
	}
	if c.Form.CSRFKey != "" {
		b, err := base64.RawURLEncoding.DecodeString(c.Form.CSRFKey)
		if err != nil {
			b, err = base64.URLEncoding.DecodeString(c.Form.CSRFKey)
		}
		if err != nil || len(b) < 32 {
			return fmt.Errorf("form.csrf_key must be base64url of at least 32 bytes")
		}
	}
	return nil
}
