package astfrontend

import (
	"context"
	"testing"
)

const sampleSource = `
package com.example.orders;

import org.springframework.stereotype.Service;

@Service
public class OrderService {
    private final OrderRepository repository;

    public OrderService(OrderRepository repository) {
        this.repository = repository;
    }

    public Order findOrder(String id) {
        String query = "SELECT * FROM orders WHERE id = " + id;
        return repository.findById(id);
    }
}
`

func TestParseExtractsPackageAndImports(t *testing.T) {
	p := NewParser()
	cu, err := p.Parse(context.Background(), "OrderService.java", []byte(sampleSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer cu.Close()

	if cu.Package != "com.example.orders" {
		t.Errorf("Package = %q, want %q", cu.Package, "com.example.orders")
	}
	if len(cu.Imports) != 1 || cu.Imports[0] != "org.springframework.stereotype.Service" {
		t.Errorf("Imports = %v", cu.Imports)
	}
}

func TestParseExtractsTypeDecl(t *testing.T) {
	p := NewParser()
	cu, err := p.Parse(context.Background(), "OrderService.java", []byte(sampleSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer cu.Close()

	if len(cu.Types) != 1 {
		t.Fatalf("Types = %d, want 1", len(cu.Types))
	}
	td := cu.Types[0]
	if td.Name != "OrderService" {
		t.Errorf("Name = %q, want %q", td.Name, "OrderService")
	}
	if td.QualifiedName != "com.example.orders.OrderService" {
		t.Errorf("QualifiedName = %q", td.QualifiedName)
	}
	if !HasAnnotation(td.Annotations, "Service") {
		t.Errorf("Annotations = %v, want @Service", td.Annotations)
	}
	if len(td.Fields) != 1 || td.Fields[0].Name != "repository" {
		t.Errorf("Fields = %v", td.Fields)
	}
	if len(td.Methods) != 2 {
		t.Fatalf("Methods = %d, want 2 (constructor + findOrder)", len(td.Methods))
	}
}

func TestWalkInvocationsAndStringLiterals(t *testing.T) {
	p := NewParser()
	cu, err := p.Parse(context.Background(), "OrderService.java", []byte(sampleSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer cu.Close()

	var findOrder *MethodDecl
	for _, m := range cu.Types[0].Methods {
		if m.Name == "findOrder" {
			findOrder = m
		}
	}
	if findOrder == nil || findOrder.Body == nil {
		t.Fatal("findOrder method body not found")
	}

	invocations := WalkInvocations(findOrder.Body, []byte(sampleSource))
	found := false
	for _, inv := range invocations {
		if inv.MethodName == "findById" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a findById invocation, got %+v", invocations)
	}

	literals := WalkStringLiterals(findOrder.Body, []byte(sampleSource))
	if len(literals) != 1 || literals[0].Value != "SELECT * FROM orders WHERE id = " {
		t.Errorf("literals = %+v", literals)
	}
}
