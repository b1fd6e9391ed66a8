package component

import (
	"strings"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// ImplementedInterfaces collects both the simple and qualified names of
// every super-interface td declares.
func ImplementedInterfaces(td *astfrontend.TypeDecl, imports []string, pkg string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, iface := range td.Interfaces {
		simple := stripGenerics(iface)
		add(simple)
		add(QualifyType(simple, imports, pkg))
	}
	return out
}

// InjectedDependencies extracts td's constructor- and field-autowired
// dependencies, skipping any field whose qualified type is a standard
// library type unless selector allow-lists its package.
func InjectedDependencies(td *astfrontend.TypeDecl, imports []string, pkg string, selector *classify.PackageSelector) map[string]*model.InjectedDependency {
	deps := map[string]*model.InjectedDependency{}

	lombokAllArgs := astfrontend.HasAnnotation(td.Annotations, "RequiredArgsConstructor") ||
		astfrontend.HasAnnotation(td.Annotations, "AllArgsConstructor")

	fieldsByType := map[string][]*astfrontend.FieldDecl{}
	for _, f := range td.Fields {
		fieldsByType[f.TypeSimple] = append(fieldsByType[f.TypeSimple], f)
	}

	if lombokAllArgs {
		for _, f := range td.Fields {
			if f.IsStatic || !f.IsFinal {
				continue
			}
			addDependency(deps, f, imports, pkg, model.InjectConstructor, selector)
		}
	}

	for _, m := range td.Methods {
		if !m.IsConstructor || len(m.Params) == 0 {
			continue
		}
		for _, p := range m.Params {
			for _, f := range fieldsByType[p.TypeSimple] {
				if f.Name != p.Name {
					continue
				}
				addDependency(deps, f, imports, pkg, model.InjectConstructor, selector)
			}
		}
	}

	for _, f := range td.Fields {
		if astfrontend.HasAnnotation(f.Annotations, "Autowired") ||
			astfrontend.HasAnnotation(f.Annotations, "Inject") ||
			astfrontend.HasAnnotation(f.Annotations, "Resource") {
			addDependency(deps, f, imports, pkg, model.InjectFieldAutowired, selector)
		}
	}

	return deps
}

func addDependency(deps map[string]*model.InjectedDependency, f *astfrontend.FieldDecl, imports []string, pkg string, kind model.InjectionType, selector *classify.PackageSelector) {
	if _, exists := deps[f.Name]; exists {
		return
	}
	qualified := QualifyType(f.TypeSimple, imports, pkg)
	if classify.IsStandardType(qualified, selector) {
		return
	}
	deps[f.Name] = &model.InjectedDependency{
		FieldName:             f.Name,
		DeclaredTypeSimple:    stripGenerics(f.TypeSimple),
		DeclaredTypeQualified: qualified,
		InjectionType:         kind,
	}
}

// FieldTypeSimple returns a lookup of field name -> declared simple type,
// used by raw-invocation capture to resolve a receiver expression's
// declared type from the enclosing class's fields.
func FieldTypeSimple(td *astfrontend.TypeDecl) map[string]string {
	out := map[string]string{}
	for _, f := range td.Fields {
		out[f.Name] = stripGenerics(f.TypeSimple)
	}
	return out
}

// ParamTypeSimple returns method parameter name -> declared simple type.
func ParamTypeSimple(m *astfrontend.MethodDecl) map[string]string {
	out := map[string]string{}
	for _, p := range m.Params {
		out[p.Name] = stripGenerics(p.TypeSimple)
	}
	return out
}

// simpleReceiverName extracts the leading identifier of a receiver
// expression, e.g. "repository" from "repository" or "this.repository",
// "restTemplate" from "restTemplate.getForObject(...)"
// chain text collapsed to its first segment.
func simpleReceiverName(expr string) string {
	expr = strings.TrimPrefix(expr, "this.")
	if idx := strings.IndexByte(expr, '.'); idx >= 0 {
		expr = expr[:idx]
	}
	if idx := strings.IndexByte(expr, '('); idx >= 0 {
		expr = expr[:idx]
	}
	return expr
}
