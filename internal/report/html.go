package report

import (
	"html/template"
	"io"
	"time"

	"github.com/fla4sh/redirectscope/internal/model"
)

type htmlSection struct {
	Category model.Category
	Results  []model.ClassifiedResult
}

type htmlPage struct {
	GeneratedAt time.Time
	Summary     Summary
	Sections    []htmlSection
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"formatTime": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
}).Parse(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Redirect Inspection Report</title></head><body>
<h1>Redirect Inspection Report</h1>
<p>Generated at {{formatTime .GeneratedAt}} | {{.Summary.Total}} URLs | {{.Summary.NewDomain}} new domain | {{.Summary.SameDomain}} same domain | {{.Summary.NoRedirect}} no redirect | {{.Summary.Invalid}} invalid</p>
{{range .Sections}}<h2>{{.Category}}</h2><ul>
{{range .Results}}<li>{{.URL}}{{if .FinalURL}} &rarr; {{.FinalURL}} ({{.RedirectCount}} redirects){{end}}{{if .Reason}} [{{.ErrorKind}}: {{.Reason}}]{{end}}</li>
{{end}}</ul>
{{end}}</body></html>
`))

// WriteHTML renders a basic HTML report with results grouped by category.
func WriteHTML(w io.Writer, results []model.ClassifiedResult) error {
	page := htmlPage{GeneratedAt: time.Now(), Summary: Summarize(results)}
	for _, cat := range []model.Category{
		model.CategoryNewDomain,
		model.CategorySameDomain,
		model.CategoryNoRedirect,
		model.CategoryInvalid,
	} {
		if group := ByCategory(results, cat); len(group) > 0 {
			page.Sections = append(page.Sections, htmlSection{Category: cat, Results: group})
		}
	}
	return htmlTemplate.Execute(w, page)
}
