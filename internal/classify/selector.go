package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/gval"
)

// PackageSelector evaluates a boolean expression over a package name,
// taken from a ConfigStore's AllowedAnalysisPackagesExpr (or built from
// a flat AllowedAnalysisPackages list when no expression is configured).
// It follows the label selector used for rule-set filtering elsewhere in
// this codebase, adapted from matching label key=value pairs to matching
// package-name prefixes. The expression is kept as text: every Allows call
// substitutes its prefix tests and evaluates the result with gval.
type PackageSelector struct {
	expr     string
	language gval.Language
}

// NewPackageSelector returns a selector for expr, a boolean expression built from
// `pkg.hasPrefix("...")`, `&&`, `||`, `!` and parentheses, e.g.:
//
//	pkg.hasPrefix("org.springframework.web.client") || pkg.hasPrefix("com.acme.shared")
//
// An empty expr compiles to a selector that always evaluates false (no
// package is allow-listed), matching an unconfigured ALLOWED_ANALYSIS_PACKAGES.
// expr is not validated here; an expression that fails to evaluate makes
// Allows return false.
func NewPackageSelector(expr string) (*PackageSelector, error) {
	language := gval.NewLanguage(
		gval.Ident(),
		gval.Parentheses(),
		gval.Constant("true", true),
		gval.Constant("false", false),
		gval.PrefixOperator("!", func(_ context.Context, v interface{}) (interface{}, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("unexpected %T, expected bool", v)
			}
			return !b, nil
		}),
		gval.InfixBoolOperator("&&", func(a, b bool) (interface{}, error) { return a && b, nil }),
		gval.InfixBoolOperator("||", func(a, b bool) (interface{}, error) { return a || b, nil }),
	)
	if expr == "" {
		return &PackageSelector{expr: "", language: language}, nil
	}
	return &PackageSelector{expr: expr, language: language}, nil
}

// Allows reports whether pkgName satisfies the selector's expression. The
// `pkg` identifier in the expression is bound to literal true/false for
// each `pkg.hasPrefix("...")` test by textual substitution before
// evaluation, since gval has no notion of a bound receiver method on a
// plain string without a richer evaluation context; this mirrors the
// teacher's own "rewrite the expression to a pure boolean string, then
// hand it to gval" approach for label selectors.
func (s *PackageSelector) Allows(pkgName string) bool {
	if s.expr == "" {
		return false
	}
	boolExpr := substitutePrefixTests(s.expr, pkgName)
	val, err := gval.Evaluate(boolExpr, nil)
	if err != nil {
		return false
	}
	b, _ := val.(bool)
	return b
}

// substitutePrefixTests replaces every `pkg.hasPrefix("literal")` call in
// expr with the literal boolean "true"/"false" according to whether
// pkgName has that prefix, leaving &&/||/!/parentheses for gval to
// evaluate as plain boolean algebra.
func substitutePrefixTests(expr, pkgName string) string {
	const fn = `pkg.hasPrefix("`
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(expr[i:], fn)
		if idx < 0 {
			b.WriteString(expr[i:])
			break
		}
		idx += i
		b.WriteString(expr[i:idx])
		rest := expr[idx+len(fn):]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			b.WriteString(expr[idx:])
			break
		}
		prefix := rest[:end]
		closeParen := strings.IndexByte(rest[end:], ')')
		if closeParen < 0 {
			b.WriteString(expr[idx:])
			break
		}
		if strings.HasPrefix(pkgName, prefix) {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		i = idx + len(fn) + end + closeParen + 1
	}
	return b.String()
}

// AllowedExprFromList builds the default `pkg.hasPrefix(...) || ...`
// expression for a flat ALLOWED_ANALYSIS_PACKAGES list, used when a
// ConfigStore has no explicit AllowedAnalysisPackagesExpr configured.
func AllowedExprFromList(packages []string) string {
	parts := make([]string, len(packages))
	for i, p := range packages {
		parts[i] = fmt.Sprintf(`pkg.hasPrefix("%s")`, p)
	}
	return strings.Join(parts, " || ")
}
