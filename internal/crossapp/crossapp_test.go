package crossapp

import (
	"regexp"
	"testing"

	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

func buildTestApp() *model.ParsedApplication {
	app := model.NewParsedApplication()
	app.MainClassSimpleName = "OrderApplication"
	app.MainClassPackage = "com.example"
	app.IsSpringBoot = true

	controller := model.NewParsedComponent("OrderController", "com.example.OrderController", "com.example", model.RestController)
	getOrder := model.NewParsedMethod("getOrder", "getOrder(String)")
	getOrder.HTTPMethod = model.MethodGET
	getOrder.Path = "/orders/{id}"
	controller.Methods = append(controller.Methods, getOrder)
	app.AddComponent(controller)

	listener := model.NewParsedComponent("OrderEvents", "com.example.OrderEvents", "com.example", model.KafkaListener)
	onOrder := model.NewParsedMethod("onOrder", "onOrder(String)")
	onOrder.KafkaTopic = "orders.created"
	listener.KafkaListenerMethods = append(listener.KafkaListenerMethods, onOrder)
	app.AddComponent(listener)

	return app
}

func TestPathToPatternMatchesVariableSegment(t *testing.T) {
	pattern := regexp.MustCompile(pathToPattern("/orders/{id}"))
	if !pattern.MatchString("/orders/42") {
		t.Errorf("pattern %q should match /orders/42", pattern)
	}
	if pattern.MatchString("/orders") {
		t.Errorf("pattern %q should not match /orders (missing segment)", pattern)
	}
}

func TestNormalizeURLStripsSchemeHostAndQuery(t *testing.T) {
	got := normalizeURL("http://payments.internal:8080/accounts/42?expand=true")
	if got != "/accounts/42" {
		t.Errorf("normalizeURL() = %q, want /accounts/42", got)
	}
}

func TestResolveExternalCallMatchesEndpoint(t *testing.T) {
	app := buildTestApp()
	registry := BuildEndpointRegistry([]*model.ParsedApplication{app})

	call := &model.ParsedExternalCall{HTTPMethod: model.MethodGET, URL: "http://orders-service/orders/42"}
	resolveExternalCall(call, registry)

	if !call.Resolved {
		t.Fatalf("expected call to resolve, reason: %q", call.ResolutionReason)
	}
	if call.TargetHandlerMethod != "getOrder" {
		t.Errorf("TargetHandlerMethod = %q, want getOrder", call.TargetHandlerMethod)
	}
}

func TestResolveExternalCallDynamicURLUnresolved(t *testing.T) {
	call := &model.ParsedExternalCall{HTTPMethod: model.MethodGET, URL: model.DynamicMarker}
	resolveExternalCall(call, nil)

	if call.Resolved {
		t.Fatal("expected dynamic URL to remain unresolved")
	}
	if call.ResolutionReason != reasonDynamicURLTemplate {
		t.Errorf("ResolutionReason = %q, want %q", call.ResolutionReason, reasonDynamicURLTemplate)
	}
}

func TestResolveExternalCallConcatenatedDynamicURLUnresolved(t *testing.T) {
	call := &model.ParsedExternalCall{HTTPMethod: model.MethodGET, URL: model.DynamicMarker + "/users/" + model.DynamicMarker}
	resolveExternalCall(call, nil)

	if call.Resolved {
		t.Fatal("expected a URL with a dynamic segment to remain unresolved")
	}
	if call.ResolutionReason != reasonDynamicURLTemplate {
		t.Errorf("ResolutionReason = %q, want %q", call.ResolutionReason, reasonDynamicURLTemplate)
	}
}

func TestResolveKafkaCallMatchesConsumer(t *testing.T) {
	app := buildTestApp()
	consumers := BuildConsumerRegistry([]*model.ParsedApplication{app})
	cfg := classify.NewDefaultConfigStore()

	call := &model.ParsedKafkaCall{Direction: model.DirectionProducer, RawTopic: "orders.created"}
	resolveKafkaCall(call, consumers, cfg)

	if !call.Resolved {
		t.Fatalf("expected kafka call to resolve, reason: %q", call.ResolutionReason)
	}
	if call.TargetConsumerMethod != "onOrder" {
		t.Errorf("TargetConsumerMethod = %q, want onOrder", call.TargetConsumerMethod)
	}
}

func TestResolveKafkaCallDefaultTopicSentinelUnresolvedWithoutConfig(t *testing.T) {
	cfg := classify.NewDefaultConfigStore()
	call := &model.ParsedKafkaCall{Direction: model.DirectionProducer, RawTopic: model.DefaultTopicMarker}
	resolveKafkaCall(call, nil, cfg)

	if call.Resolved || call.TopicResolved {
		t.Fatal("expected sendDefault sentinel to remain unresolved with no DefaultTopicName configured")
	}
}

func TestResolveKafkaCallDefaultTopicSentinelResolvesWhenConfigured(t *testing.T) {
	app := buildTestApp()
	consumers := BuildConsumerRegistry([]*model.ParsedApplication{app})
	cfg := classify.NewDefaultConfigStore()
	cfg.DefaultTopicName = "orders.created"

	call := &model.ParsedKafkaCall{Direction: model.DirectionProducer, RawTopic: model.DefaultTopicMarker}
	resolveKafkaCall(call, consumers, cfg)

	if !call.Resolved {
		t.Fatalf("expected sendDefault sentinel to resolve once configured, reason: %q", call.ResolutionReason)
	}
}

func TestIsUnresolvableTopic(t *testing.T) {
	cases := []struct {
		topic string
		want  bool
	}{
		{"", true},
		{model.DynamicMarker, true},
		{model.DefaultTopicMarker, true},
		{"${kafka.topic}", true},
		{"#{someExpression}", true},
		{"orders.created", false},
	}
	for _, tc := range cases {
		if got := isUnresolvableTopic(tc.topic); got != tc.want {
			t.Errorf("isUnresolvableTopic(%q) = %v, want %v", tc.topic, got, tc.want)
		}
	}
}
