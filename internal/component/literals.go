package component

import (
	"strings"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// ExtractString resolves a call argument's source text to a best-effort
// literal value, following the no-classpath resolution chain: a quoted
// string literal resolves directly; a `String.format(fmt, ...)` call
// resolves to its format-string argument; a top-level `+` concatenation
// recurses on both sides and joins them, substituting the dynamic marker
// for any side that cannot be resolved; a bare identifier is first tried
// against the enclosing method's local variable declarations, then
// against the class's @Value/constant field map by name; anything else
// falls back to the dynamic marker.
func ExtractString(expr string, m *astfrontend.MethodDecl, cc CaptureContext) string {
	return extractString(expr, m, cc, 0)
}

const maxExtractDepth = 8

func extractString(expr string, m *astfrontend.MethodDecl, cc CaptureContext, depth int) string {
	expr = strings.TrimSpace(expr)
	if expr == "" || depth > maxExtractDepth {
		return model.DynamicMarker
	}

	if parts := splitTopLevelPlus(expr); len(parts) > 1 {
		var b strings.Builder
		for _, p := range parts {
			b.WriteString(extractString(p, m, cc, depth+1))
		}
		return b.String()
	}

	if lit, ok := literalValue(expr); ok {
		return lit
	}

	if strings.HasPrefix(expr, "String.format(") && strings.HasSuffix(expr, ")") {
		args := splitTopLevel(argsInsideParens(expr), ',')
		if len(args) > 0 {
			return extractString(args[0], m, cc, depth+1)
		}
		return model.DynamicMarker
	}

	if isIdentifier(expr) {
		return resolveIdentifier(expr, m, cc)
	}

	return model.DynamicMarker
}

func resolveIdentifier(name string, m *astfrontend.MethodDecl, cc CaptureContext) string {
	name = strings.TrimPrefix(name, "this.")
	if m.Body != nil {
		if init, ok := astfrontend.FindLocalVarInitializer(m.Body, cc.Src, name); ok {
			return extractString(init, m, cc, maxExtractDepth)
		}
	}
	if v, ok := cc.ValueFields.LookupBySuffix(name); ok {
		return v
	}
	return model.DynamicMarker
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// splitTopLevelPlus splits expr on '+' operators outside of quotes and
// parentheses, matching Java string concatenation's left-to-right shape.
func splitTopLevelPlus(expr string) []string {
	return splitTopLevel(expr, '+')
}

func splitTopLevel(expr string, sep byte) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '"' && (i == 0 || expr[i-1] != '\\'):
			inQuote = !inQuote
		case inQuote:
			continue
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, expr[start:i])
			start = i + 1
		}
	}
	parts = append(parts, expr[start:])
	return parts
}
