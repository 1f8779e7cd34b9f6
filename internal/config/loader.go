// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one `Config` struct from four layers (highest precedence
last):

  1. Default() values.
  2. The YAML file: the explicit path when given, otherwise
     `<root>/conf/contactform.yaml` if it exists.
  3. Optional `<root>/conf/.env` file.  godotenv never overrides variables
     already present in the process environment.
  4. Environment variables prefixed `CONTACT_`, where `__` maps to "."
     (e.g., `CONTACT_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled onto the defaults, enriched with
the runtime root path, and validated.

Instrumentation
---------------
  • DEBUG spans, root discovery, YAML read, env overlay.
  • ERROR spans, YAML parse, env overlay, unmarshal, validation failures.
  • INFO span, final "config loaded" with key highlights.
  • Logs use the global sugared logger (`zap.S()`), which is a no-op until
    main installs the file logger.  Callers report a failed Load themselves.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/contactform.yaml`,
    so `go run ./cmd/contactform` works from any sub-directory.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	envPrefix   = "CONTACT_"
	defaultFile = "contactform.yaml"
)

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves CONTACT_ROOT or climbs directories until
// conf/contactform.yaml is found.  Falls back to the working directory.
func rootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", defaultFile)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads defaults, YAML, .env, and env overrides, then validates.  An
// explicit path that does not exist is an error; the implicit default file
// is optional.
func Load(path string) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, "conf", defaultFile)
	}
	source := ""
	if _, err := os.Stat(path); err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		zap.S().Debugw("config yaml absent, using defaults", "file", path)
	} else {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", path, "err", err)
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
		source = path
		zap.S().Debugw("config yaml loaded", "file", path)
	}

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	// Env overrides: CONTACT_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config: env overlay: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Paths = Paths{Root: root, Source: source}
	cfg.Log.Dir = resolve(root, cfg.Log.Dir)
	cfg.Form.Definition = resolve(root, cfg.Form.Definition)
	cfg.Geo.DBPath = resolve(root, cfg.Geo.DBPath)

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, fmt.Errorf("config: %w", err)
	}

	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"source", cfg.Paths.Source,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// envKey maps CONTACT_LOG__LEVEL to log.level.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

// listKeys are the settings whose env values are comma-separated lists.
var listKeys = map[string]bool{"http.trusted_proxies": true}

// envValue maps the variable name with envKey and splits list settings.
func envValue(name, value string) (string, any) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}
	var items []string
	for _, it := range strings.Split(value, ",") {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	return key, items
}

// resolve anchors a relative path at root.  Empty stays empty.
func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
