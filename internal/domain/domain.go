package domain

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Registrable returns the registrable domain (eTLD+1) for a URL, lower-cased,
// so "https://sub.example.co.uk/x" yields "example.co.uk". Hosts without a
// derivable eTLD+1 (IP literals, "localhost", bare labels) fall back to the
// host itself so comparisons still work against internal targets. Malformed
// URLs yield "".
func Registrable(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return ""
	}
	// IP literals have no registrable domain; the PSL lookup would otherwise
	// mangle them (e.g. "127.0.0.1" into "0.1").
	if net.ParseIP(host) != nil {
		return host
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return etld1
}
