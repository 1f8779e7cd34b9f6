//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types and helpers that collect per-request metadata
//  (user-agent fingerprint, IP + geolocation, URL, and timestamp).
//  These structs are inert.  They contain no pointers to database
//  handles or large buffers, so they are safe to log or JSON-encode.
//
//  The contact component logs a compact summary of it with every
//  submit, so operators can tell browser traffic from scripted posts.
//
//  Dependencies
//  • github.com/avct/uasurfer          (UA parsing)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup)
//

package requestinfo

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties.
type UA struct {
	Raw         string // Entire User-Agent header
	Browser     string // "Chrome", "Firefox", "Safari", etc.
	Version     string // "124.0.6367"
	OS          string // "macOS", "Windows", "Android", "iOS", etc.
	OSVersion   string // "14.5", "11", "10.0"
	Device      string // "Desktop", "Phone", "Tablet", "TV", ...
	Platform    string // "Mac", "Windows", "Linux", "iPad", "iPhone", ...
	IsBot       bool   // True if uasurfer recognises a crawler or script
	PrimaryLang string // First tag from Accept-Language ("en", "es", ...)
}

// Geo holds IP-based geolocation hints.
// These are best-effort and may be empty if the DB has no match.
type Geo struct {
	IP         net.IP // Client address after the proxy trust check
	CountryISO string // "US", "CA", "FR", ...
	City       string // "Chicago", "Paris", ...
}

// RequestInfo travels in the request context; handlers read it with
// FromContext.
type RequestInfo struct {
	UA        UA
	Geo       Geo
	URL       *url.URL // Pointer copy, safe to dereference read-only
	Timestamp time.Time
}

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is a singleton MaxMind handle.  It is safe for concurrent
// reads, which is all we ever perform.  nil disables lookups.
var (
	geoMu     sync.RWMutex
	geoReader *geoip2.Reader
)

// InitGeo opens the GeoLite2-City database.  An empty path leaves lookups
// disabled and is not an error.
func InitGeo(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return fmt.Errorf("requestinfo: open GeoLite2 DB %s: %w", dbPath, err)
	}
	geoMu.Lock()
	old := geoReader
	geoReader = r
	geoMu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// CloseGeo releases the database opened by InitGeo.
func CloseGeo() error {
	geoMu.Lock()
	defer geoMu.Unlock()
	if geoReader == nil {
		return nil
	}
	err := geoReader.Close()
	geoReader = nil
	return err
}

// Summary is the compact key/value form used in log lines.
func (ri *RequestInfo) Summary() []any {
	if ri == nil {
		return nil
	}
	return []any{
		"ip", ri.Geo.IP.String(),
		"country", ri.Geo.CountryISO,
		"browser", ri.UA.Browser,
		"os", ri.UA.OS,
		"device", ri.UA.Device,
		"bot", ri.UA.IsBot,
		"lang", ri.UA.PrimaryLang,
	}
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//
//  The Enrich middleware stores *RequestInfo inside the request context so
//  any code holding only http.Request can retrieve the struct.
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich.
// It returns nil if the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader, acceptLang string) UA {
	u := uasurfer.Parse(uaHeader)

	// Browser family string
	br := strings.TrimPrefix(u.Browser.Name.String(), "Browser")

	// Browser version "major.minor.patch" (trim trailing ".0")
	brVer := trimVersion(u.Browser.Version)

	// OS name and version
	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}
	osVer := trimVersion(u.OS.Version)

	// Device class
	device := deviceTypeToString(u.DeviceType)

	// Platform string ("Mac", "Windows", ...)
	platform := strings.TrimPrefix(u.OS.Platform.String(), "Platform")

	return UA{
		Raw:         uaHeader,
		Browser:     br,
		Version:     brVer,
		OS:          osName,
		OSVersion:   osVer,
		Device:      device,
		Platform:    platform,
		IsBot:       u.IsBot(),
		PrimaryLang: primaryLang(acceptLang),
	}
}

// trimVersion builds "major.minor.patch" and removes trailing ".0".
func trimVersion(v uasurfer.Version) string {
	out := strings.TrimSuffix(
		strings.TrimSuffix(
			strings.TrimSuffix(
				strings.Join([]string{
					intToStr(v.Major),
					intToStr(v.Minor),
					intToStr(v.Patch),
				}, "."),
				".0",
			), ".0",
		), ".0",
	)
	if out == "" {
		return "0"
	}
	return out
}

func intToStr(i int) string {
	return strconv.Itoa(i)
}

// deviceTypeToString maps uasurfer.DeviceType to a user-friendly string.
func deviceTypeToString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	case uasurfer.DeviceTV:
		return "TV"
	default:
		return "Unknown"
	}
}

// primaryLang extracts the first language subtag before any ";q=" rule.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag, _, _ := strings.Cut(al, ",")
	tag, _, _ = strings.Cut(tag, ";")
	return strings.ToLower(strings.TrimSpace(tag))
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	geoMu.RLock()
	defer geoMu.RUnlock()
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
