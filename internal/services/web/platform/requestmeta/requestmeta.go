// Package requestmeta resolves request scheme and origin facts used by
// cookie and form protections.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// Policy controls how the request scheme is resolved.
//
// TrustForwardedProto must be enabled explicitly before X-Forwarded-Proto is
// read. ForceHTTPS marks every request secure, for deployments that terminate
// TLS upstream without forwarding the scheme.
type Policy struct {
	TrustForwardedProto bool
	ForceHTTPS          bool
}

// Scheme returns "https" or "http" for r.
func (p Policy) Scheme(r *http.Request) string {
	if p.ForceHTTPS {
		return "https"
	}
	if r == nil {
		return "http"
	}
	if p.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.TLS != nil {
		return "https"
	}
	if r.URL != nil && strings.EqualFold(r.URL.Scheme, "https") {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether cookies for r should be marked Secure.
func (p Policy) IsHTTPS(r *http.Request) bool {
	return p.Scheme(r) == "https"
}

// SameOrigin reports whether the Origin header, or failing that the Referer,
// names the host r was sent to.
func (p Policy) SameOrigin(r *http.Request) bool {
	if r == nil {
		return false
	}
	host, port := splitHost(r.Host)
	if host == "" {
		return false
	}
	scheme := p.Scheme(r)
	if port == "" {
		port = defaultPort(scheme)
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	parsed, err := url.Parse(claimed)
	if err != nil || parsed.Scheme == "" {
		return false
	}
	originScheme := strings.ToLower(parsed.Scheme)
	if originScheme != scheme {
		return false
	}
	originPort := parsed.Port()
	if originPort == "" {
		originPort = defaultPort(originScheme)
	}
	return strings.EqualFold(parsed.Hostname(), host) && originPort == port
}

func splitHost(raw string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}

func defaultPort(scheme string) string {
	if scheme == "https" {
		return "443"
	}
	return "80"
}
