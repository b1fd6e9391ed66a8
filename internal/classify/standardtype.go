package classify

import "strings"

// standardPrefixes are qualified-name prefixes treated as library/framework
// code, never a candidate for raw-invocation resolution or cross-app
// matching.
var standardPrefixes = []string{
	"java.", "javax.", "jakarta.", "org.springframework.", "lombok.", "org.slf4j.", "org.apache.",
}

// IsStandardType reports whether qualifiedName is a standard/library type,
// unless it is allow-listed by selector (built from a ConfigStore's
// PackageSelectorExpr). An allow-listed package always wins over the
// standard-prefix check, including for the caller's own root package.
func IsStandardType(qualifiedName string, selector *PackageSelector) bool {
	if selector != nil && selector.Allows(qualifiedName) {
		return false
	}
	for _, prefix := range standardPrefixes {
		if strings.HasPrefix(qualifiedName, prefix) {
			return true
		}
	}
	return false
}
