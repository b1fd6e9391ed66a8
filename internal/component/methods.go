package component

import (
	"strings"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// mappingAnnotation returns an annotation of m that is in the
// MAPPING_ANNOTATIONS set, with its ANNOTATION_TO_HTTP_METHOD mapping,
// both read from a ConfigStore.
func mappingAnnotation(m *astfrontend.MethodDecl, cfg *classify.ConfigStore) (ann *astfrontend.Annotation, httpMethod model.HTTPMethod, ok bool) {
	for name := range cfg.MappingAnnotations {
		if a := astfrontend.AnnotationNamed(m.Annotations, name); a != nil {
			return a, cfg.AnnotationToHTTPMethod[name], true
		}
	}
	return nil, "", false
}

// BuildMethods extracts td's ParsedMethod set and, for KafkaListener
// components, its separate kafkaListenerMethods set, following the
// per-ComponentType rule: controllers keep only mapping-annotated
// methods as endpoints; services keep every method; Kafka listeners split
// into listener methods (KafkaListener/KafkaHandler) and regular methods.
func BuildMethods(ctype model.ComponentType, td *astfrontend.TypeDecl, basePath string, cfg *classify.ConfigStore) (methods []*model.ParsedMethod, listeners []*model.ParsedMethod) {
	for _, m := range td.Methods {
		if m.IsConstructor {
			continue
		}

		switch ctype {
		case model.RestController, model.Controller:
			ann, httpMethod, ok := mappingAnnotation(m, cfg)
			if !ok {
				continue
			}
			pm := newParsedMethod(m)
			pm.HTTPMethod = httpMethod
			pm.Path = joinPaths(basePath, annotationPath(ann))
			pm.RequestBodyType = requestBodyType(m)
			pm.ResponseType = m.ReturnType
			methods = append(methods, pm)

		case model.KafkaListener:
			if astfrontend.HasAnnotation(m.Annotations, "KafkaListener") || astfrontend.HasAnnotation(m.Annotations, "KafkaHandler") {
				pm := newParsedMethod(m)
				ann := astfrontend.AnnotationNamed(m.Annotations, "KafkaListener")
				if ann == nil {
					ann = astfrontend.AnnotationNamed(m.Annotations, "KafkaHandler")
				}
				pm.KafkaTopic = firstOf(ann.Args["topics"], ann.Args["value"])
				pm.KafkaGroupID = ann.Args["groupId"]
				listeners = append(listeners, pm)
			} else {
				methods = append(methods, newParsedMethod(m))
			}

		default:
			methods = append(methods, newParsedMethod(m))
		}
	}
	return methods, listeners
}

func newParsedMethod(m *astfrontend.MethodDecl) *model.ParsedMethod {
	pm := model.NewParsedMethod(m.Name, m.Signature)
	pm.LineRange = m.LineRange
	pm.IsPublic = m.IsPublic
	pm.IsPrivate = m.IsPrivate
	return pm
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func requestBodyType(m *astfrontend.MethodDecl) string {
	for _, p := range m.Params {
		// Parameter-level @RequestBody detection would require per-parameter
		// annotation extraction, which this frontend does not carry; fall
		// back to the first non-primitive parameter type, a reasonable
		// approximation given no-classpath parsing.
		if !isPrimitive(stripGenerics(p.TypeSimple)) && p.TypeSimple != "String" {
			return p.TypeSimple
		}
	}
	return ""
}

// annotationPath extracts a mapping annotation's path, preferring "value"
// then "path"; an array-valued annotation ({"a","b"}) resolves to its first
// element by stripping one layer of braces.
func annotationPath(ann *astfrontend.Annotation) string {
	path := firstOf(ann.Args["value"], ann.Args["path"])
	return firstArrayValue(path)
}

func firstArrayValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = s[1 : len(s)-1]
	}
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	return strings.Trim(s, `"`)
}

// joinPaths combines a controller's class-level base path and a handler
// method's path: empty+empty becomes "/".
func joinPaths(base, relative string) string {
	if base == "" {
		if relative == "" {
			return "/"
		}
		if !strings.HasPrefix(relative, "/") {
			return "/" + relative
		}
		return relative
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if relative == "" {
		return base
	}
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(relative, "/") {
		relative = "/" + relative
	}
	return base + relative
}

// BaseURL extracts a controller's class-level @RequestMapping path.
func BaseURL(td *astfrontend.TypeDecl) string {
	ann := astfrontend.AnnotationNamed(td.Annotations, "RequestMapping")
	if ann == nil {
		return ""
	}
	return firstArrayValue(firstOf(ann.Args["value"], ann.Args["path"]))
}
