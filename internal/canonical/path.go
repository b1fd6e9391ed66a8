package canonical

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

var numericSegment = regexp.MustCompile(`^[0-9]+$`)

// NormalizePath collapses a path template into its revision-stable shape:
// every "{var}" segment, every purely-numeric segment, every UUID-shaped
// segment and the "<dynamic>" sentinel all become the single wildcard
// segment "{*}"; a trailing "/" is stripped unless the whole path is "/".
func NormalizePath(path string) string {
	if path == "" {
		return path
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		switch {
		case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}"):
			segments[i] = "{*}"
		case seg == model.DynamicMarker:
			segments[i] = "{*}"
		case numericSegment.MatchString(seg):
			segments[i] = "{*}"
		default:
			if _, err := uuid.Parse(seg); err == nil {
				segments[i] = "{*}"
			}
		}
	}
	joined := strings.Join(segments, "/")
	if len(joined) > 1 && strings.HasSuffix(joined, "/") {
		joined = strings.TrimSuffix(joined, "/")
	}
	return joined
}

// NormalizeExternalURL strips an external call URL down to its path, the
// same way crossapp.normalizeURL does for endpoint matching (scheme+host
// prefix and any query string dropped), then runs it through NormalizePath
// so the resulting id is stable across UUID path segments and numeric ids.
func NormalizeExternalURL(raw string) string {
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
	return NormalizePath(raw)
}
