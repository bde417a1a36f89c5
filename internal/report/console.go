package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/fla4sh/redirectscope/internal/model"
)

var categoryColors = map[model.Category]*color.Color{
	model.CategoryNoRedirect: color.New(color.FgGreen),
	model.CategorySameDomain: color.New(color.FgYellow),
	model.CategoryNewDomain:  color.New(color.FgRed),
	model.CategoryInvalid:    color.New(color.FgHiBlack),
}

// PrintResult writes a one-line colorized summary of a single result.
func PrintResult(w io.Writer, res model.ClassifiedResult) {
	tag := categoryColors[res.Category].Sprintf("[%s]", res.Category)
	switch res.Category {
	case model.CategoryInvalid:
		fmt.Fprintf(w, "%s %s (%s: %s)\n", tag, res.URL, res.ErrorKind, res.Reason)
	case model.CategoryNoRedirect:
		fmt.Fprintf(w, "%s %s\n", tag, res.URL)
	default:
		fmt.Fprintf(w, "%s %s -> %s (%d redirects)\n", tag, res.URL, res.FinalURL, res.RedirectCount)
	}
}

// PrintSummary writes the per-category counters.
func PrintSummary(w io.Writer, sum Summary) {
	fmt.Fprintf(w, "\nProcessed %d URLs:\n", sum.Total)
	fmt.Fprintf(w, "  %s %d\n", categoryColors[model.CategoryNoRedirect].Sprintf("%-12s", model.CategoryNoRedirect), sum.NoRedirect)
	fmt.Fprintf(w, "  %s %d\n", categoryColors[model.CategorySameDomain].Sprintf("%-12s", model.CategorySameDomain), sum.SameDomain)
	fmt.Fprintf(w, "  %s %d\n", categoryColors[model.CategoryNewDomain].Sprintf("%-12s", model.CategoryNewDomain), sum.NewDomain)
	fmt.Fprintf(w, "  %s %d\n", categoryColors[model.CategoryInvalid].Sprintf("%-12s", model.CategoryInvalid), sum.Invalid)
}
