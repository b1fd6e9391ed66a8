// Package classify tags each parsed Java type with a ComponentType, and
// holds the configuration store and package selector shared by every
// later component.
package classify

import (
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// ConfigStore holds the external configuration sets classification and
// cross-application resolution read at init.
// It is read-only at runtime: Reload replaces the whole set and bumps
// Version so callers holding a cached derived value know to recompute it.
type ConfigStore struct {
	MappingAnnotations     map[string]bool
	AnnotationToHTTPMethod map[string]model.HTTPMethod
	RestTemplateMethods    map[string]bool
	WebClientHTTPMethods   map[string]bool
	KafkaProducerMethods   map[string]bool
	KafkaProducerTypes     map[string]bool
	HTTPURLConnectionMethods map[string]bool
	RepositoryWriteMethods map[string]bool
	RepositoryReadMethods  map[string]bool

	// AllowedAnalysisPackagesExpr is a gval boolean expression over a
	// package name; see selector.go. Defaults to membership in
	// AllowedAnalysisPackages.
	AllowedAnalysisPackagesExpr string
	AllowedAnalysisPackages     []string

	// DefaultTopicName configures whether the `sendDefault` sentinel
	// (model.DefaultTopicMarker) is eligible for cross-application
	// resolution. Empty string (the default) means sendDefault calls are
	// always left unresolved; set to a concrete topic name to opt a
	// deployment into resolving sendDefault calls against that topic.
	DefaultTopicName string

	version int64
}

// fileConfig is the analyzer-config.yaml shape, all fields optional.
type fileConfig struct {
	AllowedAnalysisPackages     []string `yaml:"allowedAnalysisPackages"`
	AllowedAnalysisPackagesExpr string   `yaml:"allowedAnalysisPackagesExpr"`
	DefaultTopicName            string   `yaml:"defaultTopicName"`
}

// NewDefaultConfigStore returns the documented defaults.
func NewDefaultConfigStore() *ConfigStore {
	return &ConfigStore{
		MappingAnnotations: setOf("GetMapping", "PostMapping", "PutMapping", "DeleteMapping", "PatchMapping", "RequestMapping"),
		AnnotationToHTTPMethod: map[string]model.HTTPMethod{
			"GetMapping":     model.MethodGET,
			"PostMapping":    model.MethodPOST,
			"PutMapping":     model.MethodPUT,
			"DeleteMapping":  model.MethodDELETE,
			"PatchMapping":   model.MethodPATCH,
			"RequestMapping": model.MethodREQUEST,
		},
		RestTemplateMethods:  setOf("getForObject", "getForEntity", "postForObject", "postForEntity", "put", "delete", "exchange", "patchForObject", "execute"),
		WebClientHTTPMethods: setOf("get", "post", "put", "delete", "patch", "head", "options", "method"),
		KafkaProducerMethods: setOf("send", "sendDefault"),
		KafkaProducerTypes:   setOf("KafkaTemplate", "ReactiveKafkaProducerTemplate"),
		HTTPURLConnectionMethods: setOf("openConnection", "setRequestMethod", "getInputStream", "getOutputStream", "connect"),
		RepositoryWriteMethods:   setOf("save", "saveAll", "saveAndFlush", "saveAllAndFlush", "delete", "deleteAll", "deleteById", "deleteAllById", "deleteInBatch", "deleteAllInBatch", "insert", "update", "upsert"),
		RepositoryReadMethods:    setOf("findById", "findAll", "findAllById", "existsById", "count", "getById", "getReferenceById", "getOne"),
		AllowedAnalysisPackages:  []string{"org.springframework.web.client"},
	}
}

// LoadConfigStore reads analyzer-config.yaml at path if present, falling
// back to defaults for anything it doesn't set. A missing file is not an
// error: it yields the defaults. An unreadable or malformed file yields
// the defaults together with the read or decode error.
func LoadConfigStore(path string) (*ConfigStore, error) {
	cfg := NewDefaultConfigStore()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}
	if len(fc.AllowedAnalysisPackages) > 0 {
		cfg.AllowedAnalysisPackages = fc.AllowedAnalysisPackages
	}
	if fc.AllowedAnalysisPackagesExpr != "" {
		cfg.AllowedAnalysisPackagesExpr = fc.AllowedAnalysisPackagesExpr
	}
	if fc.DefaultTopicName != "" {
		cfg.DefaultTopicName = fc.DefaultTopicName
	}
	return cfg, nil
}

// Version returns the store's current version, bumped by Reload.
func (c *ConfigStore) Version() int64 {
	return atomic.LoadInt64(&c.version)
}

// Reload replaces c's mutable fields from next and bumps Version so
// callers caching anything derived from the store (e.g. a compiled
// package selector) know to recompute it.
func (c *ConfigStore) Reload(next *ConfigStore) {
	prev := atomic.LoadInt64(&c.version)
	*c = *next
	atomic.StoreInt64(&c.version, prev+1)
}

// PackageSelectorExpr returns the store's configured
// AllowedAnalysisPackagesExpr, or the equivalent expression built from
// AllowedAnalysisPackages when no explicit expression was configured.
func (c *ConfigStore) PackageSelectorExpr() string {
	if c.AllowedAnalysisPackagesExpr != "" {
		return c.AllowedAnalysisPackagesExpr
	}
	return AllowedExprFromList(c.AllowedAnalysisPackages)
}

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

