// Package canonical derives a deterministic, revision-stable
// string identity for every node and edge the graph emitter produces, so
// re-running the analyzer on the same (or a lightly touched) repository
// never changes an entity's identity — only its properties.
package canonical

import (
	"fmt"
	"strings"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

const unknown = "unknown"

// ControllerID, ServiceID and RepositoryID share the same
// "{prefix}:{pkg}.{Class}" shape, differing only in their node-type
// prefix.
func ControllerID(pkg, class string) model.CanonicalID {
	return qualifiedID("controller", pkg, class)
}

func ServiceID(pkg, class string) model.CanonicalID {
	return qualifiedID("service", pkg, class)
}

func RepositoryID(pkg, class string) model.CanonicalID {
	return qualifiedID("repository", pkg, class)
}

// KafkaListenerID follows the same "{prefix}:{pkg}.{Class}" shape as
// ControllerID/ServiceID/RepositoryID; the format table names KafkaListener
// as a node kind without spelling out its id shape, so it's generalized
// from the other component kinds.
func KafkaListenerID(pkg, class string) model.CanonicalID {
	return qualifiedID("kafka_listener", pkg, class)
}

func qualifiedID(prefix, pkg, class string) model.CanonicalID {
	if class == "" {
		return model.CanonicalID(prefix + ":" + unknown)
	}
	if pkg == "" {
		return model.CanonicalID(prefix + ":" + class)
	}
	return model.CanonicalID(prefix + ":" + pkg + "." + class)
}

// ApplicationID identifies a ParsedApplication by its AppKey.
func ApplicationID(appKey string) model.CanonicalID {
	if appKey == "" {
		return model.CanonicalID("application:" + unknown)
	}
	return model.CanonicalID("application:" + appKey)
}

// EndpointID identifies a controller endpoint by its normalized path,
// HTTP verb uppercased.
func EndpointID(httpMethod model.HTTPMethod, path string) model.CanonicalID {
	if path == "" {
		return model.CanonicalID("endpoint:" + unknown)
	}
	return model.CanonicalID(fmt.Sprintf("endpoint:%s:%s", strings.ToUpper(string(httpMethod)), NormalizePath(path)))
}

// MethodID identifies a method by its declaring class, name and
// parameter-type list parsed from its raw signature text.
func MethodID(fqClass, name, signature string) model.CanonicalID {
	if fqClass == "" || name == "" {
		return model.CanonicalID("method:" + unknown)
	}
	params := strings.Join(ParamTypes(signature), ",")
	return model.CanonicalID(fmt.Sprintf("method:%s.%s(%s)", fqClass, name, params))
}

// ExternalCallID identifies an external HTTP call by its normalized URL,
// HTTP verb, and whether cross-application resolution matched it to a
// concrete endpoint.
func ExternalCallID(httpMethod model.HTTPMethod, url string, resolved bool) model.CanonicalID {
	if url == "" {
		return model.CanonicalID("external:" + unknown)
	}
	return model.CanonicalID(fmt.Sprintf("external:%s:%s:resolved=%t", strings.ToUpper(string(httpMethod)), NormalizeExternalURL(url), resolved))
}

// KafkaTopicID identifies a Kafka topic by its (already resolved, where
// possible) name.
func KafkaTopicID(name string) model.CanonicalID {
	if name == "" {
		return model.CanonicalID("kafka_topic:" + unknown)
	}
	return model.CanonicalID("kafka_topic:" + name)
}

// DatabaseTableID identifies a backing table/collection, lowercased.
func DatabaseTableID(name string) model.CanonicalID {
	if name == "" {
		return model.CanonicalID("database_table:" + unknown)
	}
	return model.CanonicalID("database_table:" + strings.ToLower(name))
}

// EdgeID identifies a graph edge by its type and the canonical ids of the
// nodes it connects, edge type lowercased.
func EdgeID(edgeType string, src, tgt model.CanonicalID) model.CanonicalID {
	return model.CanonicalID(fmt.Sprintf("%s:%s->%s", strings.ToLower(edgeType), src, tgt))
}

// ParamTypes parses a raw parameter-list signature (e.g.
// "(String id, List<Order> orders)") into its ordered list of parameter
// types, dropping each parameter's name: take the text between the first
// "(" and the last ")", split on ",", then for each token take the
// substring up to its last space (the type, since Java's "Type name"
// ordering puts the name last). A generic type with one type argument
// ("List<Order>") stays whole; one with several ("Map<String, Integer>")
// is split at its inner comma like any other token.
func ParamTypes(signature string) []string {
	start := strings.IndexByte(signature, '(')
	end := strings.LastIndexByte(signature, ')')
	if start < 0 || end < 0 || end <= start {
		return nil
	}
	inner := strings.TrimSpace(signature[start+1 : end])
	if inner == "" {
		return nil
	}
	tokens := strings.Split(inner, ",")
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if idx := strings.LastIndexByte(tok, ' '); idx >= 0 {
			out[i] = strings.TrimSpace(tok[:idx])
		} else {
			out[i] = tok
		}
	}
	return out
}
