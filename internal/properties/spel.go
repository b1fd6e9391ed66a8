package properties

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/gval"
)

// spelLanguage evaluates the arithmetic/string/ternary subset of SpEL that
// shows up in Spring property files and annotation attributes: numeric and
// string literals, +/-/*//, comparisons, &&/||/!, and string concatenation
// via '+'. It reuses gval.Full() rather than hand-rolling an expression
// grammar, the same "gval.Language for a small embedded expression
// language" idiom used for boolean label-selector expressions elsewhere
// in this codebase.
var spelLanguage = gval.Full()

// resolveSpELAll replaces every #{...} expression in text with its
// evaluated result. ${...} placeholders inside an expression are expected
// to already have been substituted by ResolveAll before this runs, so the
// expression text gval sees is self-contained. An expression that fails to
// parse or evaluate is left in the output unchanged (fail-soft, consistent
// with the rest of property resolution never aborting the pipeline).
func resolveSpELAll(text string, props Properties) string {
	if !strings.Contains(text, "#{") {
		return text
	}
	for _, raw := range extractSpELExpressions(text) {
		full := "#{" + raw + "}"
		val, err := spelLanguage.Evaluate(raw, nil)
		if err != nil {
			continue
		}
		text = strings.Replace(text, full, stringifySpEL(val), 1)
	}
	return text
}

// extractSpELExpressions mirrors extractPlaceholders' nesting-aware scan,
// but for the #{...} delimiter.
func extractSpELExpressions(s string) []string {
	var out []string
	i := 0
	for {
		start := strings.Index(s[i:], "#{")
		if start < 0 {
			break
		}
		start += i
		depth := 0
		j := start
		end := -1
		for ; j < len(s); j++ {
			switch {
			case strings.HasPrefix(s[j:], "#{"):
				depth++
				j++
			case s[j] == '}':
				depth--
				if depth == 0 {
					end = j
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			break
		}
		out = append(out, s[start+2:end])
		i = end + 1
	}
	return out
}

func stringifySpEL(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
