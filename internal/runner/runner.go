package runner

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/fla4sh/redirectscope/internal/classify"
	"github.com/fla4sh/redirectscope/internal/model"
	"github.com/fla4sh/redirectscope/internal/resolver"
)

// Config holds settings for the runner.
type Config struct {
	Threads   int
	RateLimit int // requests per second, 0 = unlimited
	// OnResult, when set, is invoked once per classified result as it
	// arrives. Invocations are serialized; the callback must not block for
	// long or it stalls every worker.
	OnResult func(model.ClassifiedResult)
}

// Runner fans a URL list out over a fixed pool of workers, resolving and
// classifying each URL. The results slice is the only state shared across
// workers and is guarded by a single mutex.
type Runner struct {
	cfg Config
	res *resolver.Resolver
}

// New creates a new Runner. A non-positive thread count is bumped to one.
func New(cfg Config, res *resolver.Resolver) *Runner {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	return &Runner{cfg: cfg, res: res}
}

// Run processes every URL and returns exactly one result per input, even for
// failures. Results are appended in completion order; input order is not
// preserved. A slow or hanging URL only occupies its own worker, bounded by
// the resolver's per-request timeout.
func (r *Runner) Run(ctx context.Context, urls []string) []model.ClassifiedResult {
	out := make([]model.ClassifiedResult, 0, len(urls))
	mu := &sync.Mutex{}

	var limiter *rate.Limiter
	if r.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.cfg.RateLimit), 1)
	}

	jobs := make(chan string)
	wg := sync.WaitGroup{}
	for i := 0; i < r.cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range jobs {
				res := model.ClassifiedResult{Outcome: r.check(ctx, limiter, target)}
				res.Category = classify.Classify(res.Outcome)
				mu.Lock()
				out = append(out, res)
				if r.cfg.OnResult != nil {
					r.cfg.OnResult(res)
				}
				mu.Unlock()
			}
		}()
	}

	go func() {
		for _, t := range urls {
			jobs <- t
		}
		close(jobs)
	}()

	wg.Wait()
	return out
}

func (r *Runner) check(ctx context.Context, limiter *rate.Limiter, target string) model.Outcome {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			// Context died while rate-limited; the URL still gets a result.
			return model.Outcome{URL: target, ErrorKind: model.KindRequestError, Reason: err.Error()}
		}
	}
	return r.res.Resolve(ctx, target)
}
