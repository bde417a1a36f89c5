package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fla4sh/redirectscope/internal/model"
)

// bodyDrainLimit caps how much of a response body is read before closing,
// enough to let the connection be reused without downloading large pages.
const bodyDrainLimit = 64 * 1024

// Resolver follows HTTP redirect chains for single URLs. One instance is
// safe for concurrent use by many workers; the underlying client amortizes
// connection setup across calls.
type Resolver struct {
	client       *http.Client
	maxRedirects int
}

// New creates a Resolver. The client must have automatic redirects disabled
// (see httpclient.New); maxRedirects is the number of hops followed before
// the chain is declared a failure.
func New(client *http.Client, maxRedirects int) *Resolver {
	return &Resolver{client: client, maxRedirects: maxRedirects}
}

// Resolve issues a GET for target and follows Location redirects up to the
// configured limit. It always returns an Outcome: transport failures become
// REQUEST_ERROR outcomes and an overlong chain becomes TOO_MANY_REDIRECTS
// rather than a truncated success.
//
// The client timeout applies to each request in the chain individually, not
// to the chain as a whole, so a chain of n redirects can take up to n+1
// timeouts of wall clock. This mirrors the reference behavior; do not
// tighten it into an aggregate deadline.
func (r *Resolver) Resolve(ctx context.Context, target string) model.Outcome {
	out := model.Outcome{URL: target, StartedAt: time.Now()}
	current := target

	for hop := 0; ; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			return r.fail(out, model.KindRequestError, err.Error())
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return r.fail(out, model.KindRequestError, err.Error())
		}
		out.Chain = append(out.Chain, current)

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			loc := resp.Header.Get("Location")
			drain(resp)
			if loc == "" {
				// Redirect status without a target: treat as the final stop.
				break
			}
			if hop >= r.maxRedirects {
				return r.fail(out, model.KindTooManyRedirects,
					fmt.Sprintf("exceeded maximum of %d redirects", r.maxRedirects))
			}
			next, perr := url.Parse(loc)
			if perr != nil {
				return r.fail(out, model.KindRequestError,
					fmt.Sprintf("invalid Location %q: %v", loc, perr))
			}
			current = resp.Request.URL.ResolveReference(next).String()
			continue
		}

		drain(resp)
		break
	}

	out.FinalURL = current
	out.RedirectCount = len(out.Chain) - 1
	out.DurationMs = time.Since(out.StartedAt).Milliseconds()
	return out
}

func (r *Resolver) fail(out model.Outcome, kind model.ErrorKind, reason string) model.Outcome {
	out.ErrorKind = kind
	out.Reason = reason
	if n := len(out.Chain); n > 0 {
		out.RedirectCount = n - 1
	}
	out.DurationMs = time.Since(out.StartedAt).Milliseconds()
	return out
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, bodyDrainLimit))
	_ = resp.Body.Close()
}
