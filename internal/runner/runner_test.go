package runner_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/fla4sh/redirectscope/internal/httpclient"
	"github.com/fla4sh/redirectscope/internal/model"
	"github.com/fla4sh/redirectscope/internal/resolver"
	"github.com/fla4sh/redirectscope/internal/runner"
)

func setupServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/r", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("landed"))
	})
	return httptest.NewServer(mux)
}

// fixtureURLs mixes direct, redirecting and unreachable targets. Every URL is
// unique so category maps can be compared across runs.
func fixtureURLs(srv *httptest.Server, n int) []string {
	urls := make([]string, 0, n)
	for i := 0; i < n; i++ {
		switch i % 3 {
		case 0:
			urls = append(urls, fmt.Sprintf("%s/ok?i=%d", srv.URL, i))
		case 1:
			urls = append(urls, fmt.Sprintf("%s/r?i=%d", srv.URL, i))
		default:
			// port 1 has no listener; connect fails fast
			urls = append(urls, fmt.Sprintf("http://127.0.0.1:1/x?i=%d", i))
		}
	}
	return urls
}

func newRunner(srv *httptest.Server, threads int, onResult func(model.ClassifiedResult)) *runner.Runner {
	client := httpclient.New(httpclient.Config{Timeout: 5 * time.Second})
	res := resolver.New(client, 10)
	return runner.New(runner.Config{Threads: threads, OnResult: onResult}, res)
}

func TestRunOneResultPerURL(t *testing.T) {
	srv := setupServer()
	defer srv.Close()

	urls := fixtureURLs(srv, 60)
	results := newRunner(srv, 7, nil).Run(context.Background(), urls)
	if len(results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(results))
	}

	gotURLs := make([]string, len(results))
	for i, res := range results {
		gotURLs[i] = res.URL
	}
	sort.Strings(gotURLs)
	wantURLs := append([]string(nil), urls...)
	sort.Strings(wantURLs)
	for i := range wantURLs {
		if gotURLs[i] != wantURLs[i] {
			t.Fatalf("result set does not match input set at %d: %s vs %s", i, gotURLs[i], wantURLs[i])
		}
	}
}

func TestRunCategories(t *testing.T) {
	srv := setupServer()
	defer srv.Close()

	urls := fixtureURLs(srv, 30)
	results := newRunner(srv, 5, nil).Run(context.Background(), urls)

	counts := map[model.Category]int{}
	for _, res := range results {
		counts[res.Category]++
	}
	if counts[model.CategoryNoRedirect] != 10 {
		t.Fatalf("expected 10 no_redirect, got %d", counts[model.CategoryNoRedirect])
	}
	// /r and /final share the server host, so redirects stay same_domain.
	if counts[model.CategorySameDomain] != 10 {
		t.Fatalf("expected 10 same_domain, got %d", counts[model.CategorySameDomain])
	}
	if counts[model.CategoryInvalid] != 10 {
		t.Fatalf("expected 10 invalid, got %d", counts[model.CategoryInvalid])
	}
}

func TestRunThreadCountInvariance(t *testing.T) {
	srv := setupServer()
	defer srv.Close()

	urls := fixtureURLs(srv, 200)
	var baseline map[string]model.Category
	for _, threads := range []int{1, 5, 50} {
		results := newRunner(srv, threads, nil).Run(context.Background(), urls)
		got := make(map[string]model.Category, len(results))
		for _, res := range results {
			got[res.URL] = res.Category
		}
		if baseline == nil {
			baseline = got
			continue
		}
		for u, cat := range baseline {
			if got[u] != cat {
				t.Fatalf("threads=%d changed category of %s: %v vs %v", threads, u, got[u], cat)
			}
		}
	}
}

func TestRunOnResultCallback(t *testing.T) {
	srv := setupServer()
	defer srv.Close()

	urls := fixtureURLs(srv, 21)
	calls := 0
	// The runner serializes OnResult, so a plain counter is safe.
	results := newRunner(srv, 4, func(model.ClassifiedResult) { calls++ }).Run(context.Background(), urls)
	if calls != len(results) {
		t.Fatalf("expected %d callback invocations, got %d", len(results), calls)
	}
}

func TestRunZeroThreadsStillCompletes(t *testing.T) {
	srv := setupServer()
	defer srv.Close()

	client := httpclient.New(httpclient.Config{Timeout: 5 * time.Second})
	res := resolver.New(client, 10)
	results := runner.New(runner.Config{Threads: 0}, res).Run(context.Background(), []string{srv.URL + "/ok"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}
