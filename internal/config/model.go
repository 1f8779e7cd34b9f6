// internal/config/model.go
//
// Typed configuration model for the contact form service.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from four layers:
//
//   • Default()                                 – compiled-in values,
//   • `conf/contactform.yaml`                   – optional static file,
//   • optional `conf/.env`                      – dotenv values,
//   • `CONTACT_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the binary fails fast
// if a value is malformed.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • Durations accept Go syntax ("10s", "1m30s").
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ForceHTTPS   bool          `koanf:"force_https"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gt=0"`

	// TrustedProxies lists the CIDRs whose X-Forwarded-For entries are
	// believed.  Empty means the peer address is the client.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,cidr"`
}

//
// Log section
//

// Log controls the zap logger.  Dir is resolved against Paths.Root when
// relative.
type Log struct {
	Dir     string `koanf:"dir"     validate:"required"`
	Level   string `koanf:"level"   validate:"oneof=debug info warn error"`
	Console bool   `koanf:"console"`
}

//
// Form section
//

// Form points at an optional definition override and the CSRF key.
//
// CSRFKey is base64url of at least 32 bytes.  Empty means a random key per
// process, so rendered forms die with a restart.
type Form struct {
	Definition string `koanf:"definition"`
	CSRFKey    string `koanf:"csrf_key"`
}

//
// Geo section
//

// Geo names the GeoLite2-City database.  Empty disables lookups.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

// Metrics toggles the /metrics endpoint.
type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root   string // CONTACT_ROOT or discovered parent
	Source string // config file actually read, empty when none
}

//
// Root aggregate
//

// Config is the aggregate returned by Load().
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Log     Log     `koanf:"log"`
	Form    Form    `koanf:"form"`
	Geo     Geo     `koanf:"geo"`
	Metrics Metrics `koanf:"metrics"`
	Paths   Paths   `koanf:"-"`
}

// Default returns the compiled-in configuration.  Load starts from it, so a
// missing YAML file still yields a runnable service.
func Default() Config {
	return Config{
		HTTP: HTTP{
			ListenAddr:   ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Log: Log{
			Dir:     "logs",
			Level:   "info",
			Console: true,
		},
		Metrics: Metrics{Enabled: true},
	}
}
