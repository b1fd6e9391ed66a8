// Package crossapp is the cross-application resolver: given every
// ParsedApplication produced by a repository scan, it flattens controller
// endpoints into a matchable registry, resolves each ParsedExternalCall to
// the endpoint it most likely targets, and matches Kafka producer calls to
// consumer listeners by topic.
package crossapp

import (
	"regexp"
	"strings"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// EndpointRecord is one flattened controller endpoint, matchable against a
// normalized external-call URL.
type EndpointRecord struct {
	ServiceName      string
	ApplicationClass string
	ControllerClass  string
	HandlerMethod    string
	HTTPMethod       model.HTTPMethod
	Path             string
	PathPattern      *regexp.Regexp
}

// BuildEndpointRegistry flattens every controller endpoint across apps, in
// application then component then method insertion order, so the
// "first match wins" tie-break in ResolveExternalCalls is deterministic.
func BuildEndpointRegistry(apps []*model.ParsedApplication) []EndpointRecord {
	var registry []EndpointRecord
	for _, app := range apps {
		service := app.AppKey()
		for _, c := range app.Controllers {
			for _, m := range c.Methods {
				if m.Path == "" {
					continue
				}
				registry = append(registry, EndpointRecord{
					ServiceName:      service,
					ApplicationClass: app.MainClassSimpleName,
					ControllerClass:  c.QualifiedName,
					HandlerMethod:    m.MethodName,
					HTTPMethod:       m.HTTPMethod,
					Path:             m.Path,
					PathPattern:      regexp.MustCompile(pathToPattern(m.Path)),
				})
			}
		}
	}
	return registry
}

// pathToPattern turns a controller path template into a matchable regular
// expression: each `{variable}` segment becomes `[^/]+`, the `<dynamic>`
// sentinel becomes `[^/]*`, every other character is matched literally, and
// an optional trailing sub-path is always allowed so a more specific
// external-call URL (e.g. a nested resource) still matches its parent
// endpoint's pattern.
func pathToPattern(path string) string {
	var b strings.Builder
	i := 0
	for i < len(path) {
		if path[i] == '{' {
			if end := strings.IndexByte(path[i:], '}'); end >= 0 {
				b.WriteString(`[^/]+`)
				i += end + 1
				continue
			}
		}
		next := strings.IndexByte(path[i:], '{')
		var literal string
		if next < 0 {
			literal = path[i:]
			i = len(path)
		} else {
			literal = path[i : i+next]
			i += next
		}
		b.WriteString(quoteWithDynamicSentinel(literal))
	}
	return "^" + b.String() + "(/.*)?$"
}

const dynamicSentinel = "\x00DYNAMIC\x00"

func quoteWithDynamicSentinel(literal string) string {
	literal = strings.ReplaceAll(literal, model.DynamicMarker, dynamicSentinel)
	quoted := regexp.QuoteMeta(literal)
	return strings.ReplaceAll(quoted, dynamicSentinel, `[^/]*`)
}

// normalizeURL strips a scheme+host prefix ("://" onward up to the first
// "/") and any query string ("?" onward) from a captured call URL.
func normalizeURL(raw string) string {
	if idx := strings.Index(raw, "://"); idx >= 0 {
		rest := raw[idx+3:]
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			raw = rest[slash:]
		} else {
			raw = "/"
		}
	}
	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
