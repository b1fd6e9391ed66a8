package crossapp

import (
	"strings"

	"github.com/go-logr/logr"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// ResolveExternalCalls fills resolution fields on every ParsedExternalCall
// reachable from apps' components, matching each against registry per
// §4.7: an empty or dynamic URL is unresolved outright; otherwise the
// first registry entry whose HTTP method matches and whose path pattern
// fullmatches the normalized URL wins, ties broken by registry (insertion)
// order.
func ResolveExternalCalls(apps []*model.ParsedApplication, registry []EndpointRecord, log logr.Logger) {
	for _, app := range apps {
		for _, c := range app.ComponentsInOrder() {
			for _, m := range allMethodsOf(c) {
				for _, call := range m.ExternalCalls {
					resolveExternalCall(call, registry)
					if !call.Resolved {
						log.V(3).Info("external call left unresolved", "owner", c.QualifiedName, "method", m.MethodName, "url", call.URL, "reason", call.ResolutionReason)
					}
				}
			}
		}
	}
}

func resolveExternalCall(call *model.ParsedExternalCall, registry []EndpointRecord) {
	if call.URL == "" || strings.Contains(call.URL, model.DynamicMarker) {
		call.ResolutionReason = reasonDynamicURLTemplate
		return
	}

	normalized := normalizeURL(call.URL)
	method := model.HTTPMethod(strings.ToUpper(string(call.HTTPMethod)))

	for _, entry := range registry {
		if entry.HTTPMethod != method {
			continue
		}
		if !entry.PathPattern.MatchString(normalized) {
			continue
		}
		call.Resolved = true
		call.TargetService = entry.ServiceName
		call.TargetEndpoint = entry.Path
		call.TargetControllerClass = entry.ControllerClass
		call.TargetHandlerMethod = entry.HandlerMethod
		return
	}

	call.ResolutionReason = renderReason(reasonNoEndpointTemplate, map[string]string{
		"method": string(method),
		"path":   normalized,
	})
}

// allMethodsOf returns every ParsedMethod on c, including kafka-listener
// methods, since an external HTTP call or Kafka producer call can be made
// from within a @KafkaListener method body just as from a regular one.
func allMethodsOf(c *model.ParsedComponent) []*model.ParsedMethod {
	out := make([]*model.ParsedMethod, 0, len(c.Methods)+len(c.KafkaListenerMethods))
	out = append(out, c.Methods...)
	out = append(out, c.KafkaListenerMethods...)
	return out
}
