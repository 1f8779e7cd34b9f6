// internal/requestinfo/middleware.go
//
// HTTP middleware that attaches *RequestInfo to each request.
//
/*
Context
--------
The contact component logs who posted the form: every submit and every
CSRF rejection carries RequestInfo.Summary().  The client address in that
summary must not be something the poster can choose, so this middleware
owns the proxy trust decision:

  1. The peer address (r.RemoteAddr) is the client unless it falls inside
     one of the configured trusted proxy CIDRs.
  2. Behind a trusted proxy, X-Forwarded-For is read right to left and
     the first hop outside the trusted set is the client.  X-Real-Ip is
     used only when a trusted proxy sent no X-Forwarded-For.
  3. The User-Agent and Accept-Language headers are parsed, and a
     GeoLite2 lookup runs when a database is configured.

Instrumentation
---------------
At `log.level: debug` each request logs the Summary() fields together
with the method and path, matching what the contact handlers log at info.
*/
package requestinfo

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"go.uber.org/zap"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Middleware returns the enrichment handler.  trusted holds CIDRs of the
// reverse proxies allowed to report the client address.
func Middleware(trusted []string) (func(http.Handler) http.Handler, error) {
	proxies := make([]netip.Prefix, 0, len(trusted))
	for _, c := range trusted {
		p, err := netip.ParsePrefix(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("requestinfo: trusted proxy %q: %w", c, err)
		}
		proxies = append(proxies, p.Masked())
	}
	return func(next http.Handler) http.Handler {
		return enrich(proxies, next)
	}, nil
}

// Enrich attaches *RequestInfo trusting no proxy: the peer is the client.
func Enrich(next http.Handler) http.Handler { return enrich(nil, next) }

func enrich(proxies []netip.Prefix, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			UA:        parseUA(r.UserAgent(), r.Header.Get("Accept-Language")),
			Geo:       lookupGeo(clientIP(r, proxies)),
			URL:       r.URL,
			Timestamp: time.Now().UTC(),
		}

		zap.S().Debugw("request info",
			append(info.Summary(), "method", r.Method, "path", r.URL.Path)...)

		ctx := context.WithValue(r.Context(), ctxKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/*──────────────────────────── client IP ────────────────────────────────────*/

// clientIP resolves the poster's address.  Forwarding headers count only
// when the peer is a trusted proxy.
func clientIP(r *http.Request, proxies []netip.Prefix) net.IP {
	peer, ok := parseAddr(r.RemoteAddr)
	if !ok {
		return nil
	}
	if !trustedAddr(peer, proxies) {
		return toIP(peer)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		client := peer
		for i := len(hops) - 1; i >= 0; i-- {
			hop, ok := parseAddr(strings.TrimSpace(hops[i]))
			if !ok {
				break
			}
			client = hop
			if !trustedAddr(hop, proxies) {
				break
			}
		}
		return toIP(client)
	}
	if hop, ok := parseAddr(strings.TrimSpace(r.Header.Get("X-Real-Ip"))); ok {
		return toIP(hop)
	}
	return toIP(peer)
}

// parseAddr accepts "ip:port" or a bare address.
func parseAddr(s string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), true
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

func trustedAddr(a netip.Addr, proxies []netip.Prefix) bool {
	for _, p := range proxies {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

func toIP(a netip.Addr) net.IP { return net.IP(a.AsSlice()) }
