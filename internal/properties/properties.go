// Package properties loads and flattens application.{yaml,yml,properties}
// into a dotted key/value map,
// and resolving ${...} placeholders (with default-value syntax) and simple
// #{...} SpEL expressions against it.
//
// YAML flattening follows the idiom in
// other_examples/dormstern-segspec's Spring property parser: decode with
// gopkg.in/yaml.v3 into a generic map, walk it recursively, join map keys
// with '.' and list indices with '[i]'.
package properties

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/konveyor/java-arch-analyzer/internal/fsdiscovery"
)

// Properties is a flattened dotted key -> string value map.
type Properties map[string]string

// configFileNames are the Spring Boot property file names Load scans for.
var configFileNames = []string{"application.yaml", "application.yml", "application.properties"}

// Load scans root for application.{yaml,yml,properties} files and returns
// the union of their flattened keys. Later files (in sorted path order)
// win on key collision, matching the Spring convention of later sources
// overriding earlier ones. Malformed files are logged and skipped; Load
// never aborts the pipeline.
func Load(ctx context.Context, walker *fsdiscovery.Walker, log logr.Logger, root string) Properties {
	out := Properties{}
	files := walker.ByName(ctx, root, configFileNames...)
	sort.Strings(files) // stable order across runs

	for _, f := range files {
		var loaded Properties
		var err error
		switch {
		case strings.HasSuffix(f, ".yaml"), strings.HasSuffix(f, ".yml"):
			loaded, err = loadYAMLFile(f)
		case strings.HasSuffix(f, ".properties"):
			loaded, err = loadPropertiesFile(f)
		}
		if err != nil {
			log.V(2).Info("skipping malformed configuration file", "file", f, "error", err)
			continue
		}
		for k, v := range loaded {
			out[k] = v
		}
	}
	return out
}

// legacyKeyAliasPrefixes pairs a Spring Boot 2.x property-key prefix with
// its Boot 3.x renamed form (e.g. spring.redis.* became
// spring.data.redis.*). NormalizeLegacyKeys aliases both directions so a
// property file written for either Boot generation still resolves, without
// pomscan having to attribute a given property file to one module's
// exact parent-POM version in a multi-module repository.
var legacyKeyAliasPrefixes = [][2]string{
	{"spring.redis.", "spring.data.redis."},
}

// NormalizeLegacyKeys mutates props in place, inserting each renamed-key
// alias that isn't already present, and returns it for chaining.
func NormalizeLegacyKeys(props Properties) Properties {
	for k, v := range props {
		for _, pair := range legacyKeyAliasPrefixes {
			old, renamed := pair[0], pair[1]
			switch {
			case strings.HasPrefix(k, old):
				alias := renamed + strings.TrimPrefix(k, old)
				if _, exists := props[alias]; !exists {
					props[alias] = v
				}
			case strings.HasPrefix(k, renamed):
				alias := old + strings.TrimPrefix(k, renamed)
				if _, exists := props[alias]; !exists {
					props[alias] = v
				}
			}
		}
	}
	return props
}

func loadYAMLFile(path string) (Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	out := Properties{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc map[string]interface{}
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		flatten("", doc, out)
	}
	return out, nil
}

func flatten(prefix string, v interface{}, out Properties) {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, child := range val {
			flatten(joinKey(prefix, k), child, out)
		}
	case map[interface{}]interface{}:
		for k, child := range val {
			flatten(joinKey(prefix, fmt.Sprintf("%v", k)), child, out)
		}
	case []interface{}:
		for i, child := range val {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), child, out)
		}
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprintf("%v", val)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func loadPropertiesFile(path string) (Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	out := Properties{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		idx := strings.IndexAny(line, "=:")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		out[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return out, nil
}

// HasPlaceholder reports whether text contains a ${...} placeholder.
func HasPlaceholder(text string) bool {
	return strings.Contains(text, "${")
}

// ExtractKeys returns the key portion (before any ':default') of every
// ${...} placeholder found in text, in left-to-right order.
func ExtractKeys(text string) []string {
	var keys []string
	for _, raw := range extractPlaceholders(text) {
		key, _ := splitKeyDefault(raw)
		keys = append(keys, key)
	}
	return keys
}

// extractPlaceholders returns the raw inner text of every ${...} in s,
// handling one level of nesting so "${a:${b}}" extracts "a:${b}" once,
// never a partial match.
func extractPlaceholders(s string) []string {
	var out []string
	i := 0
	for {
		start := strings.Index(s[i:], "${")
		if start < 0 {
			break
		}
		start += i
		depth := 0
		j := start
		end := -1
		for ; j < len(s); j++ {
			switch {
			case strings.HasPrefix(s[j:], "${"):
				depth++
				j++ // skip the matched '{' so the next iteration doesn't re-match it
			case s[j] == '}':
				depth--
				if depth == 0 {
					end = j
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			break // unterminated placeholder, stop scanning
		}
		out = append(out, s[start+2:end])
		i = end + 1
	}
	return out
}

// splitKeyDefault splits a placeholder's inner text on the first ':' into
// (key, default); default is empty when there is no ':'.
func splitKeyDefault(inner string) (string, string) {
	idx := strings.Index(inner, ":")
	if idx < 0 {
		return inner, ""
	}
	return inner[:idx], inner[idx+1:]
}

// Resolve strips surrounding ${...} from placeholder, splits on the first
// ':' into key/default, and looks the key up in props. A key with no
// binding and no default returns the placeholder unchanged.
// A default value that itself contains ${...}/#{...} is resolved
// recursively against props before being returned.
func Resolve(placeholder string, props Properties) string {
	inner, ok := stripBraces(placeholder, "${", "}")
	if !ok {
		return placeholder
	}
	key, def, hasDefault := cutFirst(inner, ":")
	if v, ok := props[key]; ok {
		return v
	}
	if hasDefault {
		return ResolveAll(def, props)
	}
	return placeholder
}

func cutFirst(s, sep string) (before, after string, found bool) {
	idx := strings.Index(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

func stripBraces(s, open, close string) (string, bool) {
	if !strings.HasPrefix(s, open) || !strings.HasSuffix(s, close) {
		return "", false
	}
	return s[len(open) : len(s)-len(close)], true
}

// ResolveAll replaces every ${...} placeholder in text via Resolve, then
// every #{...} SpEL-like expression via resolveSpELAll. A placeholder that
// resolves to another placeholder is returned as-is rather than
// re-resolved, so a cyclic or self-referential binding can never loop.
func ResolveAll(text string, props Properties) string {
	for _, raw := range extractPlaceholders(text) {
		resolved := Resolve("${"+raw+"}", props)
		text = strings.Replace(text, "${"+raw+"}", resolved, 1)
	}
	return resolveSpELAll(text, props)
}

// atoiOrZero parses a resolved numeric property (e.g. server.port),
// returning zero on malformed input, the "ignore strconv errors, use the
// zero value" idiom seen throughout the Spring property examples. Nothing
// in this module calls it.
func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
