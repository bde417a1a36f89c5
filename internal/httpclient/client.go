package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Config holds settings for the HTTP client.
type Config struct {
	Timeout   time.Duration
	Proxy     func(*http.Request) (*url.URL, error)
	UserAgent string
	Insecure  bool
}

// uaRoundTripper wraps a base RoundTripper to set a default User-Agent.
// Some servers block Go's default UA, so callers usually configure a
// browser-looking one.
type uaRoundTripper struct {
	base      http.RoundTripper
	userAgent string
}

func (t *uaRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return base.RoundTrip(req)
	}
	// Clone so retries or redirects never observe a mutated request.
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return base.RoundTrip(r)
}

// New returns a configured HTTP client with manual redirect handling;
// following the chain is the resolver's job. The client pools connections
// across calls and is safe for concurrent use by many workers. The timeout
// applies to each individual request, not to a whole redirect chain.
func New(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy:           cfg.Proxy,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.Insecure}, // #nosec G402
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConnsPerHost: 10,
	}

	return &http.Client{
		Transport: &uaRoundTripper{base: transport, userAgent: cfg.UserAgent},
		Timeout:   cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// prevent automatic redirects
			return http.ErrUseLastResponse
		},
	}
}
