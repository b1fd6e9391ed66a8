// Package component is Pass 1 of the analyzer pipeline: for each
// classified type it builds a model.ParsedComponent — implemented
// interfaces, injected dependencies, methods/endpoints/Kafka listener
// methods, and every raw/external/Kafka call captured from each method
// body.
package component

import "strings"

// QualifyType resolves a bare type's simple name to a best-effort
// qualified name using the compilation unit's import list, falling back
// to pkg.simpleName (same-package assumption) when no import matches, and
// to the bare name itself for unresolvable/primitive types. This is the
// "no-classpath, best-effort" resolution the pipeline is specified to use
// throughout: it never consults an actual classpath or build tool.
func QualifyType(simpleName string, imports []string, pkg string) string {
	simpleName = stripGenerics(simpleName)
	if simpleName == "" {
		return ""
	}
	if isPrimitive(simpleName) {
		return simpleName
	}
	for _, imp := range imports {
		if strings.HasSuffix(imp, "."+simpleName) {
			return imp
		}
	}
	if pkg == "" {
		return simpleName
	}
	return pkg + "." + simpleName
}

func stripGenerics(t string) string {
	if idx := strings.IndexByte(t, '<'); idx >= 0 {
		t = t[:idx]
	}
	return strings.TrimSuffix(t, "[]")
}

func isPrimitive(t string) bool {
	switch t {
	case "int", "long", "short", "byte", "char", "boolean", "float", "double", "void":
		return true
	}
	return false
}
