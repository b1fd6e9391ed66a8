package classify

import (
	"context"
	"testing"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

func parseType(t *testing.T, src string) *astfrontend.TypeDecl {
	t.Helper()
	p := astfrontend.NewParser()
	cu, err := p.Parse(context.Background(), "T.java", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	t.Cleanup(cu.Close)
	if len(cu.Types) != 1 {
		t.Fatalf("Types = %d, want 1", len(cu.Types))
	}
	return cu.Types[0]
}

func TestClassifyRestController(t *testing.T) {
	td := parseType(t, `
package com.example;
@RestController
public class OrderController {}
`)
	if got := Classify(td); got != model.RestController {
		t.Errorf("Classify() = %v, want RestController", got)
	}
}

func TestClassifyComponentWithKafkaListenerMethod(t *testing.T) {
	td := parseType(t, `
package com.example;
@Component
public class OrderEvents {
    @KafkaListener(topics = "orders")
    public void onOrder(String event) {}
}
`)
	if got := Classify(td); got != model.KafkaListener {
		t.Errorf("Classify() = %v, want KafkaListener", got)
	}
}

func TestClassifyRepositoryInterface(t *testing.T) {
	td := parseType(t, `
package com.example;
public interface OrderRepository extends JpaRepository<Order, Long> {}
`)
	if got := Classify(td); got != model.Repository {
		t.Errorf("Classify() = %v, want Repository", got)
	}
}

func TestClassifyUnknown(t *testing.T) {
	td := parseType(t, `
package com.example;
public class PlainUtility {}
`)
	if got := Classify(td); got != model.Unknown {
		t.Errorf("Classify() = %v, want Unknown", got)
	}
}

func TestInBasePackage(t *testing.T) {
	if !InBasePackage("com.example.orders.OrderService", "com.example") {
		t.Error("expected com.example.orders.OrderService to be in base package com.example")
	}
	if InBasePackage("com.other.OrderService", "com.example") {
		t.Error("expected com.other.OrderService to be outside base package com.example")
	}
	if !InBasePackage("anything", "") {
		t.Error("empty basePackage should match everything (non-Spring mode)")
	}
}
