package graph

import (
	"strings"

	"github.com/google/uuid"

	"github.com/konveyor/java-arch-analyzer/internal/canonical"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// Emit translates a resolved ParsedApplication into a node/edge batch:
// Application, Controller, Endpoint, Service, Repository, KafkaListener,
// KafkaTopic, DatabaseTable, ExternalCall and Method nodes, joined by
// HAS_*/HAS_ENDPOINT/CALLS/MAKES_EXTERNAL_CALL/CALLS_ENDPOINT/
// PRODUCES_TO/CONSUMES_FROM/ACCESSES edges. Configuration components are
// classified upstream (for @Bean/DI resolution) but carry no graph node of
// their own, so they are not emitted here.
func Emit(app *model.ParsedApplication) Batch {
	e := &emitter{app: app}
	e.appNode()
	for _, c := range app.Controllers {
		e.controller(c)
	}
	for _, c := range app.Services {
		e.plainComponent(c, "service", canonical.ServiceID(c.PackageName, c.ClassName), "HAS_SERVICE")
	}
	for _, c := range app.Repositories {
		e.repository(c)
	}
	for _, c := range app.KafkaListeners {
		e.kafkaListener(c)
	}
	return e.batch
}

type emitter struct {
	app   *model.ParsedApplication
	batch Batch
	appID model.CanonicalID
}

func newID() string { return uuid.NewString() }

func (e *emitter) addNode(kind string, cid model.CanonicalID, props map[string]interface{}) {
	e.batch.Nodes = append(e.batch.Nodes, Node{InternalID: newID(), CanonicalID: cid, Kind: kind, Properties: props})
}

func (e *emitter) addEdge(edgeType string, src, dst model.CanonicalID, props map[string]interface{}) {
	e.batch.Edges = append(e.batch.Edges, Edge{
		InternalID:     newID(),
		CanonicalID:    canonical.EdgeID(edgeType, src, dst),
		Type:           edgeType,
		SrcCanonicalID: src,
		DstCanonicalID: dst,
		Properties:     props,
	})
}

func (e *emitter) appNode() {
	appID := canonical.ApplicationID(e.app.AppKey())
	e.appID = appID
	e.addNode("Application", appID, map[string]interface{}{
		"mainClass":   e.app.MainClassSimpleName,
		"package":     e.app.MainClassPackage,
		"isSpringBoot": e.app.IsSpringBoot,
		"rootPath":    e.app.RootPath,
	})
}

func (e *emitter) controller(c *model.ParsedComponent) {
	id := canonical.ControllerID(c.PackageName, c.ClassName)
	e.addNode("Controller", id, map[string]interface{}{
		"class":       c.QualifiedName,
		"componentType": string(c.ComponentType),
		"baseUrl":     c.BaseURL,
	})
	e.addEdge("HAS_CONTROLLER", e.appID, id, nil)

	for _, m := range c.Methods {
		e.method(c, id, m)
		if m.Path == "" {
			continue
		}
		epID := canonical.EndpointID(m.HTTPMethod, m.Path)
		e.addNode("Endpoint", epID, map[string]interface{}{
			"httpMethod": string(m.HTTPMethod),
			"path":       m.Path,
			"controller": c.QualifiedName,
			"handler":    m.MethodName,
		})
		e.addEdge("HAS_ENDPOINT", id, epID, nil)
	}
}

func (e *emitter) plainComponent(c *model.ParsedComponent, kind string, id model.CanonicalID, edgeType string) {
	e.addNode(capitalize(kind), id, map[string]interface{}{
		"class":         c.QualifiedName,
		"componentType": string(c.ComponentType),
	})
	e.addEdge(edgeType, e.appID, id, nil)
	for _, m := range c.Methods {
		e.method(c, id, m)
	}
}

func (e *emitter) repository(c *model.ParsedComponent) {
	id := canonical.RepositoryID(c.PackageName, c.ClassName)
	e.addNode("Repository", id, map[string]interface{}{
		"class":          c.QualifiedName,
		"repositoryType": string(c.RepositoryTypeValue),
		"entityClass":    c.EntityClassName,
		"tableName":      c.TableName,
		"tableSource":    string(c.TableSource),
	})
	e.addEdge("HAS_REPOSITORY", e.appID, id, nil)

	if c.TableName != "" {
		tableID := canonical.DatabaseTableID(c.TableName)
		e.addNode("DatabaseTable", tableID, map[string]interface{}{"name": c.TableName})
		ops := make([]string, 0, len(c.DatabaseOperations))
		for _, op := range c.DatabaseOperations {
			ops = append(ops, string(op))
		}
		e.addEdge("ACCESSES", id, tableID, map[string]interface{}{"operations": ops})
	}

	for _, m := range c.Methods {
		e.method(c, id, m)
	}
}

func (e *emitter) kafkaListener(c *model.ParsedComponent) {
	id := canonical.KafkaListenerID(c.PackageName, c.ClassName)
	e.addNode("KafkaListener", id, map[string]interface{}{
		"class": c.QualifiedName,
	})
	e.addEdge("HAS_KAFKA_LISTENER", e.appID, id, nil)

	for _, m := range c.KafkaListenerMethods {
		methodID := e.method(c, id, m)
		if m.KafkaTopic == "" {
			continue
		}
		topicID := canonical.KafkaTopicID(m.KafkaTopic)
		e.addNode("KafkaTopic", topicID, map[string]interface{}{"name": m.KafkaTopic})
		e.addEdge("CONSUMES_FROM", methodID, topicID, map[string]interface{}{"groupId": m.KafkaGroupID})
	}
}

// method emits the Method node for m (owned by ownerID) and every
// CALLS/MAKES_EXTERNAL_CALL/CALLS_ENDPOINT/PRODUCES_TO edge reachable from
// its captured invocations, returning the method's own canonical id.
func (e *emitter) method(c *model.ParsedComponent, ownerID model.CanonicalID, m *model.ParsedMethod) model.CanonicalID {
	methodID := canonical.MethodID(c.QualifiedName, m.MethodName, m.Signature)
	e.addNode("Method", methodID, map[string]interface{}{
		"name":       m.MethodName,
		"signature":  m.Signature,
		"owner":      c.QualifiedName,
		"isPublic":   m.IsPublic,
		"httpMethod": string(m.HTTPMethod),
		"path":       m.Path,
	})

	for _, inv := range m.RawInvocations {
		// Best-effort callee id: the invocation only carries the
		// receiver's declared type and the method name, never its full
		// parameter signature, so the target Method id is approximate.
		calleeID := canonical.MethodID(inv.DeclaredTypeQualified, inv.MethodName, "()")
		e.addEdge("CALLS", methodID, calleeID, map[string]interface{}{"selfCall": inv.SelfCall})
	}

	for _, call := range m.ExternalCalls {
		e.externalCall(methodID, call)
	}

	for _, call := range m.KafkaCalls {
		if call.Direction != model.DirectionProducer {
			continue
		}
		topic := call.EffectiveTopic
		if topic == "" {
			topic = call.RawTopic
		}
		topicID := canonical.KafkaTopicID(topic)
		e.addNode("KafkaTopic", topicID, map[string]interface{}{"name": topic})
		e.addEdge("PRODUCES_TO", methodID, topicID, map[string]interface{}{
			"resolved":         call.Resolved,
			"resolutionReason": call.ResolutionReason,
		})
	}

	return methodID
}

func (e *emitter) externalCall(methodID model.CanonicalID, call *model.ParsedExternalCall) {
	callID := canonical.ExternalCallID(call.HTTPMethod, call.URL, call.Resolved)
	e.addNode("ExternalCall", callID, map[string]interface{}{
		"clientType":       string(call.ClientType),
		"httpMethod":       string(call.HTTPMethod),
		"url":              call.URL,
		"resolved":         call.Resolved,
		"resolutionReason": call.ResolutionReason,
	})
	e.addEdge("MAKES_EXTERNAL_CALL", methodID, callID, nil)

	if !call.Resolved || call.TargetEndpoint == "" {
		return
	}
	endpointID := canonical.EndpointID(call.HTTPMethod, call.TargetEndpoint)
	e.addEdge("CALLS_ENDPOINT", callID, endpointID, map[string]interface{}{
		"targetService": call.TargetService,
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
