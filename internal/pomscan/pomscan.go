// Package pomscan is the build/module discovery step (SPEC_FULL.md
// §4.1.5), not called by the orchestrator: it scans a Maven multi-module
// repository for pom.xml files, following each one's <modules><module>
// children without shelling out to Maven, the same way
// provider/java/dependency.go queries a POM's <dependency> elements with
// antchfx/xmlquery rather than invoking `mvn`.
package pomscan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	goversion "github.com/hashicorp/go-version"
)

var (
	moduleQuery        = xpath.MustCompile("//modules/module")
	parentVersionQuery = xpath.MustCompile("//parent/version")
)

// Module is one discovered Maven module.
type Module struct {
	PomPath       string
	Dir           string
	ParentVersion *goversion.Version
}

// Discover walks the module tree rooted at rootPom, returning one Module
// per pom.xml reachable through <modules><module> children (including
// rootPom itself). A child module whose pom.xml cannot be opened or parsed
// is skipped, never aborting the scan; an error is returned only when
// rootPom itself cannot be read.
func Discover(rootPom string) ([]Module, error) {
	var modules []Module
	seen := map[string]bool{}
	if err := discoverOne(rootPom, &modules, seen); err != nil {
		return nil, err
	}
	return modules, nil
}

func discoverOne(pomPath string, out *[]Module, seen map[string]bool) error {
	abs, err := filepath.Abs(pomPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", pomPath, err)
	}
	if seen[abs] {
		return nil
	}
	seen[abs] = true

	f, err := os.Open(pomPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", pomPath, err)
	}
	doc, err := xmlquery.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", pomPath, err)
	}

	m := Module{PomPath: pomPath, Dir: filepath.Dir(pomPath)}
	if nodes := xmlquery.QuerySelectorAll(doc, parentVersionQuery); len(nodes) > 0 {
		if v, err := goversion.NewVersion(strings.TrimSpace(nodes[0].InnerText())); err == nil {
			m.ParentVersion = v
		}
	}
	*out = append(*out, m)

	for _, modNode := range xmlquery.QuerySelectorAll(doc, moduleQuery) {
		childDir := filepath.Join(m.Dir, strings.TrimSpace(modNode.InnerText()))
		childPom := filepath.Join(childDir, "pom.xml")
		if _, err := os.Stat(childPom); err != nil {
			continue
		}
		// A child that cannot be opened or parsed is skipped.
		_ = discoverOne(childPom, out, seen)
	}
	return nil
}

// SpringBoot3 reports whether m's parent POM version (typically
// spring-boot-starter-parent) is major version 3 or later.
func (m Module) SpringBoot3() bool {
	if m.ParentVersion == nil {
		return false
	}
	return m.ParentVersion.Segments()[0] >= 3
}
