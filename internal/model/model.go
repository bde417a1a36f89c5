package model

import "time"

// Category is the closed set of buckets a checked URL can land in.
type Category string

const (
	CategoryNoRedirect Category = "no_redirect"
	CategorySameDomain Category = "same_domain"
	CategoryNewDomain  Category = "new_domain"
	CategoryInvalid    Category = "invalid"
)

// ErrorKind identifies why a URL could not be resolved.
type ErrorKind string

const (
	// KindTooManyRedirects means the chain was still redirecting when the
	// configured limit was reached.
	KindTooManyRedirects ErrorKind = "TOO_MANY_REDIRECTS"
	// KindRequestError covers every transport-level failure: DNS, connect,
	// TLS, timeout, malformed response.
	KindRequestError ErrorKind = "REQUEST_ERROR"
)

// Outcome is the result of resolving one URL's redirect chain. It is created
// once by the resolver and never mutated afterwards.
type Outcome struct {
	URL      string `json:"url"`
	FinalURL string `json:"final_url,omitempty"`
	// Chain holds every URL visited in order, final destination included.
	Chain []string `json:"chain,omitempty"`
	// RedirectCount is the number of chain entries excluding the final
	// destination; 0 means the URL answered directly.
	RedirectCount int       `json:"redirect_count"`
	ErrorKind     ErrorKind `json:"error,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	DurationMs    int64     `json:"duration_ms"`
}

// Failed reports whether the resolver gave up on this URL.
func (o Outcome) Failed() bool { return o.ErrorKind != "" }

// ClassifiedResult pairs an Outcome with its category. This is the unit the
// reporter consumes.
type ClassifiedResult struct {
	Outcome
	Category Category `json:"category"`
}
