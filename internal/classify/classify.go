package classify

import (
	"github.com/fla4sh/redirectscope/internal/domain"
	"github.com/fla4sh/redirectscope/internal/model"
)

// Classify maps an outcome to exactly one category. The function is pure and
// total over every outcome shape, so the same outcome always yields the same
// category no matter which worker produced it.
//
// Domain comparison is exact string equality on the lower-cased registrable
// domain; the scheme is deliberately excluded, so an http to https hop on
// the same domain is still same_domain.
func Classify(o model.Outcome) model.Category {
	switch {
	case o.Failed():
		return model.CategoryInvalid
	case o.RedirectCount == 0:
		return model.CategoryNoRedirect
	case domain.Registrable(o.URL) == domain.Registrable(o.FinalURL):
		return model.CategorySameDomain
	default:
		return model.CategoryNewDomain
	}
}
