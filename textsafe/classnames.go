package textsafe

import (
	"strings"

	"github.com/samber/lo"
)

// ClassNames joins the non-empty string values with a single space. false,
// nil, "" and any other non-string value are dropped.
func ClassNames(values ...any) string {
	classes := lo.FilterMap(values, func(value any, _ int) (string, bool) {
		class, ok := value.(string)
		return class, ok && class != ""
	})

	return strings.Join(classes, " ")
}

// When returns class if cond holds, for use as a ClassNames argument.
func When(cond bool, class string) string {
	if cond {
		return class
	}
	return ""
}
