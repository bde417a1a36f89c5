package report

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/fla4sh/redirectscope/internal/domain"
	"github.com/fla4sh/redirectscope/internal/model"
)

// Paths names the per-category output files. An empty path skips that file.
type Paths struct {
	NewDomain  string
	SameDomain string
	Invalid    string
	// Valid receives the same new_domain records as NewDomain. The
	// duplication is intentional, kept for output compatibility.
	Valid string
}

// Summary counts results per category.
type Summary struct {
	Total      int
	NoRedirect int
	SameDomain int
	NewDomain  int
	Invalid    int
}

// Summarize derives per-category counters from the results.
func Summarize(results []model.ClassifiedResult) Summary {
	sum := Summary{Total: len(results)}
	for _, res := range results {
		switch res.Category {
		case model.CategoryNoRedirect:
			sum.NoRedirect++
		case model.CategorySameDomain:
			sum.SameDomain++
		case model.CategoryNewDomain:
			sum.NewDomain++
		case model.CategoryInvalid:
			sum.Invalid++
		}
	}
	return sum
}

// ByCategory filters results to one category, preserving their order.
func ByCategory(results []model.ClassifiedResult, cat model.Category) []model.ClassifiedResult {
	var out []model.ClassifiedResult
	for _, res := range results {
		if res.Category == cat {
			out = append(out, res)
		}
	}
	return out
}

// WriteFiles writes the category report files. A file is only created when
// its category has at least one result. The four files are independent, so
// they are written concurrently.
func WriteFiles(results []model.ClassifiedResult, paths Paths) error {
	newDomain := ByCategory(results, model.CategoryNewDomain)
	sameDomain := ByCategory(results, model.CategorySameDomain)
	invalid := ByCategory(results, model.CategoryInvalid)

	var g errgroup.Group
	g.Go(func() error { return writeRedirects(paths.NewDomain, newDomain, true) })
	g.Go(func() error { return writeRedirects(paths.Valid, newDomain, true) })
	g.Go(func() error { return writeRedirects(paths.SameDomain, sameDomain, false) })
	g.Go(func() error { return writeInvalid(paths.Invalid, invalid) })
	return g.Wait()
}

func writeRedirects(path string, results []model.ClassifiedResult, crossDomain bool) error {
	if path == "" || len(results) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, res := range results {
		fmt.Fprintf(w, "FROM: %s\n", res.URL)
		fmt.Fprintf(w, "  TO: %s (%d redirects)\n", res.FinalURL, res.RedirectCount)
		if crossDomain {
			fmt.Fprintf(w, "  Initial Domain: %s\n", domain.Registrable(res.URL))
			fmt.Fprintf(w, "  Final Domain:   %s\n", domain.Registrable(res.FinalURL))
		} else {
			fmt.Fprintf(w, "  Domain: %s\n", domain.Registrable(res.URL))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeInvalid(path string, results []model.ClassifiedResult) error {
	if path == "" || len(results) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, res := range results {
		fmt.Fprintf(w, "URL: %s\n", res.URL)
		fmt.Fprintf(w, "  STATUS: %s\n", res.ErrorKind)
		fmt.Fprintf(w, "  REASON: %s\n", res.Reason)
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
