package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/konveyor/java-arch-analyzer/internal/classify"
)

func writeFile(t *testing.T, dir, relPath, content string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

const orderApplicationSource = `
package com.example.orders;

@SpringBootApplication
public class OrderApplication {
    public static void main(String[] args) {}
}
`

const orderControllerSource = `
package com.example.orders;

@RestController
public class OrderController {
    private final OrderService orderService;

    public OrderController(OrderService orderService) {
        this.orderService = orderService;
    }

    @GetMapping("/orders/{id}")
    public Order getOrder(String id) {
        return orderService.findById(id);
    }
}
`

const orderServiceSource = `
package com.example.orders;

@Service
public class OrderService {
    public Order findById(String id) {
        return null;
    }
}
`

func TestAnalyzeRepositoryBuildsSpringBootApplication(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/OrderApplication.java", orderApplicationSource)
	writeFile(t, dir, "src/OrderController.java", orderControllerSource)
	writeFile(t, dir, "src/OrderService.java", orderServiceSource)

	cfg := classify.NewDefaultConfigStore()
	result, err := AnalyzeRepository(context.Background(), dir, cfg, logr.Discard())
	if err != nil {
		t.Fatalf("AnalyzeRepository: %v", err)
	}
	if len(result.Applications) != 1 {
		t.Fatalf("expected 1 application, got %d", len(result.Applications))
	}
	app := result.Applications[0]
	if !app.IsSpringBoot {
		t.Fatal("expected IsSpringBoot=true")
	}
	if app.AppKey() != "com.example.orders.OrderApplication" {
		t.Errorf("AppKey() = %q", app.AppKey())
	}
	if len(app.Controllers) != 1 {
		t.Fatalf("expected 1 controller, got %d", len(app.Controllers))
	}
	if len(app.Services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(app.Services))
	}
	if status := result.Status[app.AppKey()]; status != StatusSuccess {
		t.Errorf("Status = %q, want %q", status, StatusSuccess)
	}

	dep, ok := app.Controllers[0].InjectedDependencies["orderService"]
	if !ok {
		t.Fatal("expected orderService dependency to be captured")
	}
	if !dep.Resolved() {
		t.Errorf("expected orderService dependency to resolve, got unresolved (%+v)", dep)
	}
}

const paymentInterfaceSource = `
package com.example.payments;

public interface PaymentService {
    void charge(String accountId);
}
`

const paymentServiceImplSource = `
package com.example.payments;

@Service
public class PaymentServiceImpl implements PaymentService {
    public void charge(String accountId) {}
}
`

const paymentControllerSource = `
package com.example.payments;

@RestController
public class PaymentController {
    private final PaymentService paymentService;

    public PaymentController(PaymentService paymentService) {
        this.paymentService = paymentService;
    }

    @PostMapping("/payments/{id}")
    public void pay(String id) {
        paymentService.charge(id);
    }
}
`

func TestAnalyzeRepositoryDoesNotDuplicateInterfaceImplementations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/PaymentService.java", paymentInterfaceSource)
	writeFile(t, dir, "src/PaymentServiceImpl.java", paymentServiceImplSource)
	writeFile(t, dir, "src/PaymentController.java", paymentControllerSource)

	cfg := classify.NewDefaultConfigStore()
	result, err := AnalyzeRepository(context.Background(), dir, cfg, logr.Discard())
	if err != nil {
		t.Fatalf("AnalyzeRepository: %v", err)
	}
	if len(result.Applications) != 1 {
		t.Fatalf("expected 1 aggregate application, got %d", len(result.Applications))
	}
	app := result.Applications[0]

	impls := app.InterfaceToImpls["PaymentService"]
	if len(impls) != 1 {
		t.Fatalf("InterfaceToImpls[PaymentService] = %v, want exactly 1 entry", impls)
	}
	if impls[0] != "com.example.payments.PaymentServiceImpl" {
		t.Errorf("InterfaceToImpls[PaymentService][0] = %q, want com.example.payments.PaymentServiceImpl", impls[0])
	}

	if len(app.Controllers) != 1 {
		t.Fatalf("expected 1 controller, got %d", len(app.Controllers))
	}
	dep, ok := app.Controllers[0].InjectedDependencies["paymentService"]
	if !ok {
		t.Fatal("expected paymentService dependency to be captured")
	}
	if !dep.Resolved() {
		t.Errorf("expected paymentService dependency to resolve unambiguously, got unresolved (%+v)", dep)
	}
	if dep.ResolvedTypeQualified != "com.example.payments.PaymentServiceImpl" {
		t.Errorf("ResolvedTypeQualified = %q, want com.example.payments.PaymentServiceImpl", dep.ResolvedTypeQualified)
	}
}

func TestAnalyzeRepositoryProducesNonSpringAggregateWhenNoMainClass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/OrderService.java", orderServiceSource)

	cfg := classify.NewDefaultConfigStore()
	result, err := AnalyzeRepository(context.Background(), dir, cfg, logr.Discard())
	if err != nil {
		t.Fatalf("AnalyzeRepository: %v", err)
	}
	if len(result.Applications) != 1 {
		t.Fatalf("expected 1 aggregate application, got %d", len(result.Applications))
	}
	app := result.Applications[0]
	if app.IsSpringBoot {
		t.Fatal("expected IsSpringBoot=false")
	}
	if !strings.HasSuffix(app.AppKey(), "::NON_SPRING") {
		t.Errorf("AppKey() = %q, want suffix ::NON_SPRING", app.AppKey())
	}
}
