package resolver

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

func newDep(field, simple, qualified string) *model.InjectedDependency {
	return &model.InjectedDependency{
		FieldName:             field,
		DeclaredTypeSimple:    simple,
		DeclaredTypeQualified: qualified,
		InjectionType:         model.InjectConstructor,
	}
}

func TestResolveDirectComponentHit(t *testing.T) {
	app := model.NewParsedApplication()
	service := model.NewParsedComponent("OrderService", "com.example.OrderService", "com.example", model.Service)
	app.AddComponent(service)

	controller := model.NewParsedComponent("OrderController", "com.example.OrderController", "com.example", model.RestController)
	dep := newDep("orderService", "OrderService", "com.example.OrderService")
	controller.InjectedDependencies["orderService"] = dep
	app.AddComponent(controller)

	Resolve(app, logr.Discard())

	if !dep.Resolved() {
		t.Fatal("expected direct component-index hit to resolve")
	}
	if dep.ResolvedTypeQualified != "com.example.OrderService" {
		t.Errorf("ResolvedTypeQualified = %q, want com.example.OrderService", dep.ResolvedTypeQualified)
	}
}

func TestResolveSingleInterfaceImplementation(t *testing.T) {
	app := model.NewParsedApplication()
	impl := model.NewParsedComponent("JpaOrderRepository", "com.example.JpaOrderRepository", "com.example", model.Repository)
	impl.ImplementedInterfaces = []string{"OrderRepository", "com.example.OrderRepository"}
	app.AddComponent(impl)

	service := model.NewParsedComponent("OrderService", "com.example.OrderService", "com.example", model.Service)
	dep := newDep("repository", "OrderRepository", "com.example.OrderRepository")
	service.InjectedDependencies["repository"] = dep
	app.AddComponent(service)

	Resolve(app, logr.Discard())

	if !dep.Resolved() {
		t.Fatal("expected single-implementation interface resolution")
	}
	if dep.ResolvedTypeQualified != "com.example.JpaOrderRepository" {
		t.Errorf("ResolvedTypeQualified = %q, want com.example.JpaOrderRepository", dep.ResolvedTypeQualified)
	}
}

func TestResolveAmbiguousInterfacePicksFirstByInsertionOrder(t *testing.T) {
	app := model.NewParsedApplication()
	first := model.NewParsedComponent("PrimaryNotifier", "com.example.PrimaryNotifier", "com.example", model.Service)
	first.ImplementedInterfaces = []string{"Notifier"}
	app.AddComponent(first)

	second := model.NewParsedComponent("SecondaryNotifier", "com.example.SecondaryNotifier", "com.example", model.Service)
	second.ImplementedInterfaces = []string{"Notifier"}
	app.AddComponent(second)

	consumer := model.NewParsedComponent("OrderService", "com.example.OrderService", "com.example", model.Service)
	dep := newDep("notifier", "Notifier", "Notifier")
	consumer.InjectedDependencies["notifier"] = dep
	app.AddComponent(consumer)

	Resolve(app, logr.Discard())

	if dep.ResolvedTypeQualified != "com.example.PrimaryNotifier" {
		t.Errorf("ResolvedTypeQualified = %q, want the first-registered implementation", dep.ResolvedTypeQualified)
	}
}

func TestResolveZeroImplementationsLeavesUnresolved(t *testing.T) {
	app := model.NewParsedApplication()
	consumer := model.NewParsedComponent("OrderService", "com.example.OrderService", "com.example", model.Service)
	dep := newDep("repository", "OrderRepository", "com.example.OrderRepository")
	consumer.InjectedDependencies["repository"] = dep
	app.AddComponent(consumer)

	Resolve(app, logr.Discard())

	if dep.Resolved() {
		t.Errorf("expected dependency with no candidate implementation to remain unresolved, got %+v", dep)
	}
}
