package classify

import "testing"

func TestPackageSelectorAllows(t *testing.T) {
	sel, err := NewPackageSelector(AllowedExprFromList([]string{"org.springframework.web.client", "com.acme.shared"}))
	if err != nil {
		t.Fatalf("NewPackageSelector() error = %v", err)
	}

	tests := []struct {
		pkg  string
		want bool
	}{
		{"org.springframework.web.client.RestTemplate", true},
		{"com.acme.shared.util", true},
		{"com.acme.other", false},
		{"java.util", false},
	}
	for _, tt := range tests {
		if got := sel.Allows(tt.pkg); got != tt.want {
			t.Errorf("Allows(%q) = %v, want %v", tt.pkg, got, tt.want)
		}
	}
}

func TestPackageSelectorEmptyExprAllowsNothing(t *testing.T) {
	sel, err := NewPackageSelector("")
	if err != nil {
		t.Fatalf("NewPackageSelector() error = %v", err)
	}
	if sel.Allows("anything") {
		t.Error("empty expression should allow nothing")
	}
}

func TestPackageSelectorCompoundExpression(t *testing.T) {
	sel, err := NewPackageSelector(`!pkg.hasPrefix("java.") || pkg.hasPrefix("java.util")`)
	if err != nil {
		t.Fatalf("NewPackageSelector() error = %v", err)
	}
	if !sel.Allows("com.acme.Foo") {
		t.Error("expected non-java package to be allowed")
	}
	if sel.Allows("java.io.File") {
		t.Error("expected java.io to be disallowed")
	}
	if !sel.Allows("java.util.List") {
		t.Error("expected java.util to be allowed by the second disjunct")
	}
}

func TestIsStandardType(t *testing.T) {
	sel, _ := NewPackageSelector(AllowedExprFromList([]string{"org.springframework.web.client"}))

	tests := []struct {
		qn   string
		want bool
	}{
		{"java.util.List", true},
		{"org.springframework.stereotype.Service", true},
		{"org.springframework.web.client.RestTemplate", false}, // allow-listed
		{"com.example.orders.OrderService", false},
	}
	for _, tt := range tests {
		if got := IsStandardType(tt.qn, sel); got != tt.want {
			t.Errorf("IsStandardType(%q) = %v, want %v", tt.qn, got, tt.want)
		}
	}
}
