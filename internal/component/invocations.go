package component

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/model"
	"github.com/konveyor/java-arch-analyzer/internal/valuefields"
)

// CaptureContext bundles everything CaptureInvocations needs to classify a
// method body's call sites without a classpath: the enclosing class's
// field types, the method's parameter types, the value-field map, and the
// Configuration Store's method/type sets.
type CaptureContext struct {
	FieldTypes         map[string]string // field name -> declared simple type
	ParamTypes         map[string]string // parameter name -> declared simple type
	Imports            []string
	Package            string
	Src                []byte // the compilation unit's raw source, for node.Content(src) calls
	ValueFields        valuefields.Map
	Selector           *classify.PackageSelector
	Config             *classify.ConfigStore
	QualifiedClassName string
}

// CaptureInvocations walks m's body and fills pm.RawInvocations,
// pm.ExternalCalls and pm.KafkaCalls per the capture/classification rules:
// determine the receiver's declared type, drop unresolvable or standard
// (non-allow-listed) types, dedupe by declaredTypeQualified#methodName,
// then classify REST template/WebClient/HttpURLConnection/Feign/Kafka
// producer calls before falling back to a plain RawInvocation.
func CaptureInvocations(pm *model.ParsedMethod, m *astfrontend.MethodDecl, cc CaptureContext, feignClients map[string]*astfrontend.TypeDecl) {
	if m.Body == nil {
		return
	}
	for _, inv := range astfrontend.WalkInvocations(m.Body, cc.Src) {
		declaredSimple, selfCall := declaredType(inv, cc)
		if declaredSimple == "" {
			continue // CallExtraction: declared type unknown, drop
		}
		declaredQualified := QualifyType(declaredSimple, cc.Imports, cc.Package)
		if classify.IsStandardType(declaredQualified, cc.Selector) {
			continue
		}

		raw := &model.RawInvocation{
			TargetFieldName:       receiverFieldName(inv, selfCall),
			DeclaredTypeSimple:    declaredSimple,
			DeclaredTypeQualified: declaredQualified,
			MethodName:            inv.MethodName,
			Signature:             inv.MethodName + "(" + strings.Join(inv.Arguments, ",") + ")",
			LineRange:             inv.LineRange,
			SelfCall:              selfCall,
		}

		switch {
		case isRestTemplateCall(declaredSimple, inv.MethodName, cc.Config):
			pm.ExternalCalls = append(pm.ExternalCalls, restTemplateCall(inv, m, cc))
		case isWebClientCall(declaredSimple, inv.MethodName, cc.Config):
			pm.ExternalCalls = append(pm.ExternalCalls, webClientCall(inv, m, cc))
		case isHTTPURLConnectionCall(declaredSimple, inv.MethodName, cc.Config):
			pm.ExternalCalls = append(pm.ExternalCalls, httpURLConnectionCall(inv, m, cc))
		case feignClients[declaredQualified] != nil || feignClients[declaredSimple] != nil:
			feignIface := feignClients[declaredQualified]
			if feignIface == nil {
				feignIface = feignClients[declaredSimple]
			}
			pm.ExternalCalls = append(pm.ExternalCalls, feignCall(inv, declaredQualified, declaredSimple, feignIface, cc.Config))
		case isKafkaProducerCall(declaredSimple, inv.MethodName, cc.Config):
			pm.KafkaCalls = append(pm.KafkaCalls, kafkaProducerCall(inv, m, cc))
		default:
			pm.AddRawInvocation(raw)
		}
	}
}

func declaredType(inv astfrontend.CtInvocation, cc CaptureContext) (simple string, selfCall bool) {
	if inv.TargetExpr == "" || inv.TargetExpr == "this" {
		return cc.QualifiedClassName, true
	}
	recv := simpleReceiverName(inv.TargetExpr)
	if recv == "this" {
		return cc.QualifiedClassName, true
	}
	if t, ok := cc.FieldTypes[recv]; ok {
		return t, false
	}
	if t, ok := cc.ParamTypes[recv]; ok {
		return t, false
	}
	return "", false
}

func receiverFieldName(inv astfrontend.CtInvocation, selfCall bool) string {
	if selfCall {
		return ""
	}
	return simpleReceiverName(inv.TargetExpr)
}

func isRestTemplateCall(declaredSimple, methodName string, cfg *classify.ConfigStore) bool {
	return strings.HasSuffix(declaredSimple, "RestTemplate") && cfg.RestTemplateMethods[methodName]
}

func isWebClientCall(declaredSimple, methodName string, cfg *classify.ConfigStore) bool {
	return strings.HasSuffix(declaredSimple, "WebClient") && (cfg.WebClientHTTPMethods[methodName] || methodName == "uri")
}

func isHTTPURLConnectionCall(declaredSimple, methodName string, cfg *classify.ConfigStore) bool {
	return (declaredSimple == "URL" || strings.HasSuffix(declaredSimple, "HttpURLConnection")) && cfg.HTTPURLConnectionMethods[methodName]
}

func isKafkaProducerCall(declaredSimple, methodName string, cfg *classify.ConfigStore) bool {
	return cfg.KafkaProducerTypes[declaredSimple] && cfg.KafkaProducerMethods[methodName]
}

func restTemplateCall(inv astfrontend.CtInvocation, m *astfrontend.MethodDecl, cc CaptureContext) *model.ParsedExternalCall {
	url := model.DynamicMarker
	if len(inv.Arguments) > 0 {
		url = ExtractString(inv.Arguments[0], m, cc)
	}
	return &model.ParsedExternalCall{
		ClientType: model.ClientRestTemplate,
		HTTPMethod: inferHTTPMethodFromMethodName(inv.MethodName),
		URL:        url,
		LineRange:  inv.LineRange,
	}
}

func webClientCall(inv astfrontend.CtInvocation, m *astfrontend.MethodDecl, cc CaptureContext) *model.ParsedExternalCall {
	url := model.DynamicMarker
	if inv.MethodName == "uri" && len(inv.Arguments) > 0 {
		url = ExtractString(inv.Arguments[0], m, cc)
	}
	httpMethod := model.MethodGET
	if hm, ok := webClientHTTPMethod(inv.MethodName); ok {
		httpMethod = hm
	}
	return &model.ParsedExternalCall{
		ClientType: model.ClientWebClient,
		HTTPMethod: httpMethod,
		URL:        url,
		LineRange:  inv.LineRange,
	}
}

func webClientHTTPMethod(name string) (model.HTTPMethod, bool) {
	switch name {
	case "get":
		return model.MethodGET, true
	case "post":
		return model.MethodPOST, true
	case "put":
		return model.MethodPUT, true
	case "delete":
		return model.MethodDELETE, true
	case "patch":
		return model.MethodPATCH, true
	}
	return "", false
}

func inferHTTPMethodFromMethodName(name string) model.HTTPMethod {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "post"):
		return model.MethodPOST
	case strings.HasPrefix(lower, "put"):
		return model.MethodPUT
	case strings.HasPrefix(lower, "delete"):
		return model.MethodDELETE
	case strings.HasPrefix(lower, "patch"):
		return model.MethodPATCH
	case lower == "exchange" || lower == "execute":
		return model.MethodREQUEST
	default:
		return model.MethodGET
	}
}

// httpURLConnectionCall infers the HTTP method from any
// setRequestMethod("...") literal within the enclosing method, and the URL
// from the argument of the first `new URL(...)` constructor call in the
// method body.
func httpURLConnectionCall(inv astfrontend.CtInvocation, m *astfrontend.MethodDecl, cc CaptureContext) *model.ParsedExternalCall {
	httpMethod := model.MethodGET
	for _, call := range astfrontend.WalkInvocations(m.Body, cc.Src) {
		if call.MethodName == "setRequestMethod" && len(call.Arguments) > 0 {
			if lit, ok := literalValue(call.Arguments[0]); ok {
				httpMethod = model.HTTPMethod(strings.ToUpper(lit))
			}
		}
	}
	url := model.DynamicMarker
	if u, ok := findNewURLArgument(m.Body, cc.Src); ok {
		url = ExtractString(u, m, cc)
	}
	return &model.ParsedExternalCall{
		ClientType: model.ClientHttpURLConnection,
		HTTPMethod: httpMethod,
		URL:        url,
		LineRange:  inv.LineRange,
	}
}

func findNewURLArgument(root *sitter.Node, src []byte) (string, bool) {
	var found string
	var ok bool
	astfrontend.WalkTree(root, func(n *sitter.Node) {
		if ok || n.Type() != "object_creation_expression" {
			return
		}
		text := n.Content(src)
		if !strings.HasPrefix(text, "new URL(") {
			return
		}
		args := argsInsideParens(text)
		if args != "" {
			found = args
			ok = true
		}
	})
	return found, ok
}

func argsInsideParens(text string) string {
	start := strings.IndexByte(text, '(')
	end := strings.LastIndexByte(text, ')')
	if start < 0 || end < 0 || end <= start {
		return ""
	}
	return text[start+1 : end]
}

func literalValue(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)
	if len(expr) >= 2 && expr[0] == '"' && expr[len(expr)-1] == '"' {
		return expr[1 : len(expr)-1], true
	}
	return "", false
}

// feignCall resolves a Feign client call to the declaring interface's
// matching method, so the call's path and HTTP verb can be read from that
// method's mapping annotation the same way a controller endpoint's are.
func feignCall(inv astfrontend.CtInvocation, declaredQualified, declaredSimple string, feignIface *astfrontend.TypeDecl, cfg *classify.ConfigStore) *model.ParsedExternalCall {
	call := &model.ParsedExternalCall{
		ClientType:   model.ClientFeign,
		TargetClass:  declaredQualified,
		TargetMethod: inv.MethodName,
		LineRange:    inv.LineRange,
	}
	if feignIface == nil {
		return call
	}
	for _, fm := range feignIface.Methods {
		if fm.Name != inv.MethodName {
			continue
		}
		ann, httpMethod, ok := mappingAnnotation(fm, cfg)
		if !ok {
			continue
		}
		call.HTTPMethod = httpMethod
		call.URL = joinPaths(BaseURL(feignIface), annotationPath(ann))
		break
	}
	return call
}

func kafkaProducerCall(inv astfrontend.CtInvocation, m *astfrontend.MethodDecl, cc CaptureContext) *model.ParsedKafkaCall {
	topic := model.DefaultTopicMarker
	if inv.MethodName == "send" && len(inv.Arguments) > 0 {
		topic = ExtractString(inv.Arguments[0], m, cc)
	}
	return &model.ParsedKafkaCall{
		Direction:  model.DirectionProducer,
		RawTopic:   topic,
		ClientType: "KafkaTemplate",
		LineRange:  inv.LineRange,
	}
}
