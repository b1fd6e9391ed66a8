// Package resolver is Pass 2 of the analyzer pipeline: once every
// component in a ParsedApplication has been classified and built, it
// builds the interface→implementation map and resolves each injected
// dependency to a concrete component, following a fixed, deterministic
// precedence so the same input always resolves the same way.
package resolver

import (
	"github.com/go-logr/logr"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// Resolve runs both resolution steps over app: first populating
// app.InterfaceToImpls from every class component's implemented
// interfaces, then resolving each component's injected dependencies
// against componentIndex/interface map.
func Resolve(app *model.ParsedApplication, log logr.Logger) {
	buildInterfaceMap(app)
	resolveDependencies(app, log)
}

// buildInterfaceMap records, for every class component (interfaces
// themselves never implement anything), the qualified names of every
// interface it declares, in classifier insertion order — the order
// AddInterfaceImpl's caller here must preserve for the ambiguity
// tie-break in resolveDependencies to be deterministic.
func buildInterfaceMap(app *model.ParsedApplication) {
	for _, c := range app.ComponentsInOrder() {
		for _, iface := range c.ImplementedInterfaces {
			app.AddInterfaceImpl(iface, c.QualifiedName)
		}
	}
}

// resolveDependencies walks every component's InjectedDependencies in
// classifier insertion order and resolves each one per §4.6's precedence:
// a direct componentIndex hit (by qualified, then simple name) wins
// outright; otherwise the interface map is consulted (by qualified, then
// simple name) and a single implementation resolves unambiguously, while
// more than one is resolved to the first by insertion order and logged as
// an ambiguity; zero implementations leaves the dependency unresolved.
func resolveDependencies(app *model.ParsedApplication, log logr.Logger) {
	for _, c := range app.ComponentsInOrder() {
		for _, dep := range c.InjectedDependencies {
			resolveOne(app, c, dep, log)
		}
	}
}

func resolveOne(app *model.ParsedApplication, owner *model.ParsedComponent, dep *model.InjectedDependency, log logr.Logger) {
	if target, ok := app.ComponentIndex[dep.DeclaredTypeQualified]; ok {
		dep.Resolve(target.ClassName, target.QualifiedName)
		return
	}
	if target, ok := app.ComponentIndex[dep.DeclaredTypeSimple]; ok {
		dep.Resolve(target.ClassName, target.QualifiedName)
		return
	}

	impls := app.InterfaceToImpls[dep.DeclaredTypeQualified]
	if len(impls) == 0 {
		impls = app.InterfaceToImpls[dep.DeclaredTypeSimple]
	}
	switch len(impls) {
	case 0:
		return // unresolved: downstream reports mark it, pipeline never fails
	case 1:
		resolveToQualified(app, dep, impls[0])
	default:
		log.V(2).Info("ambiguous dependency resolution, picking first by insertion order",
			"owner", owner.QualifiedName,
			"field", dep.FieldName,
			"declaredType", dep.DeclaredTypeQualified,
			"candidates", impls,
		)
		resolveToQualified(app, dep, impls[0])
	}
}

func resolveToQualified(app *model.ParsedApplication, dep *model.InjectedDependency, qualified string) {
	if target, ok := app.ComponentIndex[qualified]; ok {
		dep.Resolve(target.ClassName, target.QualifiedName)
		return
	}
	dep.Resolve(qualified, qualified)
}
