package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// tempRoot makes an isolated root with an optional conf/contactform.yaml.
func tempRoot(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(root, "conf", defaultFile), []byte(yaml), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("CONTACT_ROOT", root)
	return root
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	root := tempRoot(t, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Paths = Paths{Root: root}
	want.Log.Dir = filepath.Join(root, "logs")
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLAndEnvOverlay(t *testing.T) {
	root := tempRoot(t, `
http:
  listen_addr: "127.0.0.1:9000"
  read_timeout: 3s
log:
  level: debug
  dir: /var/log/contact
form:
  definition: conf/contact.yaml
`)
	t.Setenv("CONTACT_HTTP__LISTEN_ADDR", "127.0.0.1:9100")
	t.Setenv("CONTACT_METRICS__ENABLED", "false")
	t.Setenv("CONTACT_HTTP__TRUSTED_PROXIES", "10.0.0.0/8,192.168.0.0/16")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:9100" {
		t.Errorf("listen_addr = %q, env should win", cfg.HTTP.ListenAddr)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second {
		t.Errorf("read_timeout = %v", cfg.HTTP.ReadTimeout)
	}
	if diff := cmp.Diff([]string{"10.0.0.0/8", "192.168.0.0/16"}, cfg.HTTP.TrustedProxies); diff != "" {
		t.Errorf("trusted_proxies (-want +got):\n%s", diff)
	}
	if cfg.HTTP.WriteTimeout != 15*time.Second {
		t.Errorf("write_timeout = %v, default lost", cfg.HTTP.WriteTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Dir != "/var/log/contact" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics.enabled override ignored")
	}
	if cfg.Form.Definition != filepath.Join(root, "conf", "contact.yaml") {
		t.Errorf("definition = %q", cfg.Form.Definition)
	}
	if cfg.Paths.Source != filepath.Join(root, "conf", defaultFile) {
		t.Errorf("source = %q", cfg.Paths.Source)
	}
}

func TestLoadDotEnv(t *testing.T) {
	root := tempRoot(t, "")
	if err := os.WriteFile(filepath.Join(root, "conf", ".env"), []byte("CONTACT_LOG__LEVEL=warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("CONTACT_LOG__LEVEL") })

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("log.level = %q, want warn from .env", cfg.Log.Level)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	root := tempRoot(t, "")
	if _, err := Load(filepath.Join(root, "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name, yaml, want string
	}{
		{"bad level", "log:\n  level: loud\n", "Level"},
		{"bad addr", "http:\n  listen_addr: nope\n", "ListenAddr"},
		{"short key", "form:\n  csrf_key: c2hvcnQ\n", "csrf_key"},
		{"zero timeout", "http:\n  idle_timeout: 0s\n", "IdleTimeout"},
		{"bad proxy", "http:\n  trusted_proxies: [10.0.0.1]\n", "TrustedProxies"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tempRoot(t, tc.yaml)
			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	if got := envKey("CONTACT_HTTP__LISTEN_ADDR"); got != "http.listen_addr" {
		t.Fatalf("envKey = %q", got)
	}
}

func TestEnvValueSplitsLists(t *testing.T) {
	key, val := envValue("CONTACT_HTTP__TRUSTED_PROXIES", " 10.0.0.0/8 ,,192.168.0.0/16")
	if key != "http.trusted_proxies" {
		t.Fatalf("key = %q", key)
	}
	if diff := cmp.Diff([]string{"10.0.0.0/8", "192.168.0.0/16"}, val); diff != "" {
		t.Fatalf("value (-want +got):\n%s", diff)
	}
	if _, val := envValue("CONTACT_LOG__LEVEL", "warn"); val != "warn" {
		t.Fatalf("scalar value = %v", val)
	}
}
