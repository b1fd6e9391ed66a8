package canonical

import (
	"testing"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/orders/{id}", "/orders/{*}"},
		{"/orders/42", "/orders/{*}"},
		{"/orders/42/items", "/orders/{*}/items"},
		{"/orders/<dynamic>", "/orders/{*}"},
		{"/orders/3fa85f64-5717-4562-b3fc-2c963f66afa6", "/orders/{*}"},
		{"/orders/", "/orders"},
		{"/", "/"},
		{"/health", "/health"},
	}
	for _, tc := range cases {
		if got := NormalizePath(tc.path); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestNormalizeExternalURL(t *testing.T) {
	got := NormalizeExternalURL("http://orders-service:8080/orders/42?expand=items")
	if got != "/orders/{*}" {
		t.Errorf("NormalizeExternalURL() = %q, want /orders/{*}", got)
	}
}

func TestParamTypes(t *testing.T) {
	cases := []struct {
		signature string
		want      []string
	}{
		{"(String id, Order order)", []string{"String", "Order"}},
		{"(List<Order> orders)", []string{"List<Order>"}},
		{"()", nil},
		{"(Map<String, Integer> counts)", []string{"Map<String", "Integer>"}},
	}
	for _, tc := range cases {
		got := ParamTypes(tc.signature)
		if len(got) != len(tc.want) {
			t.Fatalf("ParamTypes(%q) = %v, want %v", tc.signature, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParamTypes(%q)[%d] = %q, want %q", tc.signature, i, got[i], tc.want[i])
			}
		}
	}
}

func TestControllerServiceRepositoryID(t *testing.T) {
	if got := ControllerID("com.example", "OrderController"); got != "controller:com.example.OrderController" {
		t.Errorf("ControllerID() = %q", got)
	}
	if got := ServiceID("", "OrderService"); got != "service:OrderService" {
		t.Errorf("ServiceID() with empty pkg = %q, want service:OrderService", got)
	}
	if got := RepositoryID("com.example", ""); got != "repository:unknown" {
		t.Errorf("RepositoryID() with empty class = %q, want repository:unknown", got)
	}
}

func TestEndpointID(t *testing.T) {
	got := EndpointID(model.MethodGET, "/orders/{id}")
	if got != "endpoint:GET:/orders/{*}" {
		t.Errorf("EndpointID() = %q, want endpoint:GET:/orders/{*}", got)
	}
	if got := EndpointID(model.MethodGET, ""); got != "endpoint:unknown" {
		t.Errorf("EndpointID() with empty path = %q, want endpoint:unknown", got)
	}
}

func TestMethodID(t *testing.T) {
	got := MethodID("com.example.OrderService", "charge", "(String accountId, Order order)")
	want := "method:com.example.OrderService.charge(String,Order)"
	if got != model.CanonicalID(want) {
		t.Errorf("MethodID() = %q, want %q", got, want)
	}
}

func TestExternalCallID(t *testing.T) {
	got := ExternalCallID(model.MethodPOST, "http://payments-service/accounts/42/charge", true)
	want := "external:POST:/accounts/{*}/charge:resolved=true"
	if got != model.CanonicalID(want) {
		t.Errorf("ExternalCallID() = %q, want %q", got, want)
	}
}

func TestKafkaTopicAndDatabaseTableID(t *testing.T) {
	if got := KafkaTopicID("orders.created"); got != "kafka_topic:orders.created" {
		t.Errorf("KafkaTopicID() = %q", got)
	}
	if got := DatabaseTableID("Orders"); got != "database_table:orders" {
		t.Errorf("DatabaseTableID() = %q, want database_table:orders", got)
	}
}

func TestEdgeID(t *testing.T) {
	src := ControllerID("com.example", "OrderController")
	tgt := ServiceID("com.example", "OrderService")
	got := EdgeID("CALLS", src, tgt)
	want := "calls:controller:com.example.OrderController->service:com.example.OrderService"
	if got != model.CanonicalID(want) {
		t.Errorf("EdgeID() = %q, want %q", got, want)
	}
}
