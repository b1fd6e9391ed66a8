package classify

import (
	"strings"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// classAnnotations are the class-level annotation simple names that map
// directly to a ComponentType, checked in this precedence order.
var classAnnotations = []struct {
	name string
	kind model.ComponentType
}{
	{"RestController", model.RestController},
	{"Controller", model.Controller},
	{"Service", model.Service},
	{"Repository", model.Repository},
	{"Configuration", model.Configuration},
	{"Component", model.Component},
}

// Classify tags td with a ComponentType following the fixed first-match
// precedence: class-level annotation, @Component+KafkaListener method,
// *Repository super-interface, any KafkaListener method, else Unknown.
func Classify(td *astfrontend.TypeDecl) model.ComponentType {
	for _, ca := range classAnnotations {
		if astfrontend.HasAnnotation(td.Annotations, ca.name) {
			if ca.kind == model.Component && hasKafkaListenerMethod(td) {
				return model.KafkaListener
			}
			return ca.kind
		}
	}

	if td.Kind == "interface" && extendsRepositoryLike(td) {
		return model.Repository
	}

	if hasKafkaListenerMethod(td) {
		return model.KafkaListener
	}

	return model.Unknown
}

// InBasePackage applies the package filter of §4.3: in Spring-Boot mode
// (basePackage non-empty) only types under basePackage are classified;
// everything else is considered for non-Spring (aggregate) mode.
func InBasePackage(qualifiedName, basePackage string) bool {
	if basePackage == "" {
		return true
	}
	return qualifiedName == basePackage || strings.HasPrefix(qualifiedName, basePackage+".")
}

func hasKafkaListenerMethod(td *astfrontend.TypeDecl) bool {
	for _, m := range td.Methods {
		if astfrontend.HasAnnotation(m.Annotations, "KafkaListener") || astfrontend.HasAnnotation(m.Annotations, "KafkaHandler") {
			return true
		}
	}
	return false
}

func extendsRepositoryLike(td *astfrontend.TypeDecl) bool {
	for _, iface := range td.Interfaces {
		simple := simpleGenericName(iface)
		if strings.HasSuffix(simple, "Repository") {
			return true
		}
	}
	return false
}

// simpleGenericName strips a trailing generic parameter list, turning
// "JpaRepository<Order, Long>" into "JpaRepository".
func simpleGenericName(t string) string {
	if idx := strings.IndexByte(t, '<'); idx >= 0 {
		return t[:idx]
	}
	return t
}
