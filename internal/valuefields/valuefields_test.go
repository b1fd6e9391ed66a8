package valuefields

import (
	"context"
	"testing"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/properties"
)

const sampleSource = `
package com.example.orders;

public class OrderClient {
    @Value("${orders.base-url:http://localhost:8080}")
    private String baseUrl;

    private static final String TOPIC = "orders.created";
}
`

func parseOne(t *testing.T) *astfrontend.CompilationUnit {
	t.Helper()
	p := astfrontend.NewParser()
	cu, err := p.Parse(context.Background(), "OrderClient.java", []byte(sampleSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cu
}

func TestBuildValueAnnotatedField(t *testing.T) {
	cu := parseOne(t)
	defer cu.Close()

	m := Build([]*astfrontend.CompilationUnit{cu}, properties.Properties{}, "")
	got, ok := m.Lookup("com.example.orders.OrderClient.baseUrl")
	if !ok {
		t.Fatal("expected baseUrl to be recorded")
	}
	if got != "http://localhost:8080" {
		t.Errorf("baseUrl = %q, want default value resolved", got)
	}
}

func TestBuildStaticFinalStringConstant(t *testing.T) {
	cu := parseOne(t)
	defer cu.Close()

	m := Build([]*astfrontend.CompilationUnit{cu}, properties.Properties{}, "")
	got, ok := m.Lookup("com.example.orders.OrderClient.TOPIC")
	if !ok {
		t.Fatal("expected TOPIC constant to be recorded")
	}
	if got != "orders.created" {
		t.Errorf("TOPIC = %q, want %q", got, "orders.created")
	}
}

func TestBuildRespectsBasePackageFilter(t *testing.T) {
	cu := parseOne(t)
	defer cu.Close()

	m := Build([]*astfrontend.CompilationUnit{cu}, properties.Properties{}, "com.other")
	if len(m) != 0 {
		t.Errorf("expected no fields recorded outside base package, got %v", m)
	}
}
