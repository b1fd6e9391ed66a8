// Package valuefields builds a fqClass.field -> resolvedString map for
// every @Value-annotated field and every static final String constant with
// a literal initializer, so component classification can later resolve a
// FieldRead expression encountered while extracting a URL or topic literal.
package valuefields

import (
	"strings"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/properties"
)

// Map is fqClass.field -> resolved string value.
type Map map[string]string

// Lookup returns the resolved value for "fqClass.field" if present.
func (m Map) Lookup(fqClassField string) (string, bool) {
	v, ok := m[fqClassField]
	return v, ok
}

// LookupBySuffix looks up a bare field name by suffix match against every
// recorded "fqClass.field" key, used when the enclosing class of a field
// reference cannot be determined precisely. Returns the first match in
// map iteration order;
// callers needing determinism should prefer Lookup with a known class.
func (m Map) LookupBySuffix(fieldName string) (string, bool) {
	suffix := "." + fieldName
	for k, v := range m {
		if strings.HasSuffix(k, suffix) {
			return v, true
		}
	}
	return "", false
}

// Build walks every parsed type (optionally restricted to basePackage) and
// records each @Value field and static final String constant.
func Build(units []*astfrontend.CompilationUnit, props properties.Properties, basePackage string) Map {
	out := Map{}
	for _, cu := range units {
		for _, td := range cu.Types {
			if basePackage != "" && !inBasePackage(td.QualifiedName, basePackage) {
				continue
			}
			for _, f := range td.Fields {
				key := td.QualifiedName + "." + f.Name

				if ann := astfrontend.AnnotationNamed(f.Annotations, "Value"); ann != nil {
					placeholder := ann.Args["value"]
					out[key] = properties.ResolveAll(placeholder, props)
					continue
				}

				if f.IsStatic && f.IsFinal && f.TypeSimple == "String" && f.Initializer != "" {
					if lit, ok := stringLiteral(f.Initializer); ok {
						out[key] = properties.ResolveAll(lit, props)
					}
				}
			}
		}
	}
	return out
}

func inBasePackage(qualifiedName, basePackage string) bool {
	return qualifiedName == basePackage || strings.HasPrefix(qualifiedName, basePackage+".")
}

// stringLiteral reports whether expr is (only) a quoted string literal and
// returns its unquoted value. Constants built from concatenation or method
// calls are intentionally not recorded: only literal initializers are
// trustworthy without evaluating arbitrary expressions.
func stringLiteral(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)
	if len(expr) >= 2 && expr[0] == '"' && expr[len(expr)-1] == '"' {
		return expr[1 : len(expr)-1], true
	}
	return "", false
}
