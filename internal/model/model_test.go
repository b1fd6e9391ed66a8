package model

import "testing"

func TestAppKeySpringBootVsNonSpring(t *testing.T) {
	app := NewParsedApplication()
	app.IsSpringBoot = true
	app.MainClassPackage = "com.example.orders"
	app.MainClassSimpleName = "OrderApplication"
	if got, want := app.AppKey(), "com.example.orders.OrderApplication"; got != want {
		t.Errorf("AppKey() = %q, want %q", got, want)
	}

	nonSpring := NewParsedApplication()
	nonSpring.RootPath = "/repo/orders"
	if got, want := nonSpring.AppKey(), "/repo/orders::NON_SPRING"; got != want {
		t.Errorf("AppKey() = %q, want %q", got, want)
	}
}

func TestAppKeyDefaultPackageOmitsLeadingDot(t *testing.T) {
	app := NewParsedApplication()
	app.IsSpringBoot = true
	app.MainClassSimpleName = "OrderApplication"
	if got, want := app.AppKey(), "OrderApplication"; got != want {
		t.Errorf("AppKey() = %q, want %q", got, want)
	}
}

func TestAddComponentBucketsByTypeAndIsFirstWinsOnDuplicateQualifiedName(t *testing.T) {
	app := NewParsedApplication()
	c1 := NewParsedComponent("OrderService", "com.example.orders.OrderService", "com.example.orders", Service)
	c2 := NewParsedComponent("OrderService", "com.example.orders.OrderService", "com.example.orders", Service)

	app.AddComponent(c1)
	app.AddComponent(c2)

	if len(app.Services) != 1 {
		t.Fatalf("expected 1 service after duplicate insert, got %d", len(app.Services))
	}
	if app.ComponentIndex["com.example.orders.OrderService"] != c1 {
		t.Error("expected first-wins semantics on duplicate qualified name")
	}
	if len(app.ComponentsInOrder()) != 1 {
		t.Errorf("ComponentsInOrder() length = %d, want 1", len(app.ComponentsInOrder()))
	}
}

func TestAddComponentRoutesEachComponentType(t *testing.T) {
	app := NewParsedApplication()
	app.AddComponent(NewParsedComponent("C", "pkg.C", "pkg", Controller))
	app.AddComponent(NewParsedComponent("R", "pkg.R", "pkg", Repository))
	app.AddComponent(NewParsedComponent("Cfg", "pkg.Cfg", "pkg", Configuration))
	app.AddComponent(NewParsedComponent("K", "pkg.K", "pkg", KafkaListener))

	if len(app.Controllers) != 1 || len(app.Repositories) != 1 || len(app.Configurations) != 1 || len(app.KafkaListeners) != 1 {
		t.Fatalf("expected one component in each bucket, got Controllers=%d Repositories=%d Configurations=%d KafkaListeners=%d",
			len(app.Controllers), len(app.Repositories), len(app.Configurations), len(app.KafkaListeners))
	}
}

func TestInjectedDependencyResolvedIsNeverHalfFilled(t *testing.T) {
	dep := &InjectedDependency{FieldName: "orderService"}
	if dep.Resolved() {
		t.Fatal("expected an unresolved dependency before Resolve is called")
	}
	dep.Resolve("OrderServiceImpl", "com.example.orders.OrderServiceImpl")
	if !dep.Resolved() {
		t.Fatal("expected Resolved()=true after Resolve")
	}
	if dep.ResolvedTypeSimple == "" || dep.ResolvedTypeQualified == "" {
		t.Error("expected both resolved fields to be set")
	}
}

func TestRawInvocationDedupeKey(t *testing.T) {
	r := &RawInvocation{DeclaredTypeQualified: "com.example.orders.OrderService", MethodName: "findById"}
	if got, want := r.DedupeKey(), "com.example.orders.OrderService#findById"; got != want {
		t.Errorf("DedupeKey() = %q, want %q", got, want)
	}
}
