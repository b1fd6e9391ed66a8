package pomscan

import (
	"os"
	"path/filepath"
	"testing"
)

const rootPomSource = `<?xml version="1.0"?>
<project>
  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>3.2.1</version>
  </parent>
  <modules>
    <module>order-service</module>
    <module>payment-service</module>
  </modules>
</project>
`

const childPomSource = `<?xml version="1.0"?>
<project>
  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>2.7.9</version>
  </parent>
</project>
`

func writePom(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(dir, "pom.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDiscoverFollowsModulesAndReadsParentVersion(t *testing.T) {
	root := t.TempDir()
	rootPom := writePom(t, root, rootPomSource)
	writePom(t, filepath.Join(root, "order-service"), childPomSource)
	writePom(t, filepath.Join(root, "payment-service"), childPomSource)

	modules, err := Discover(rootPom)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(modules) != 3 {
		t.Fatalf("expected 3 modules (root + 2 children), got %d", len(modules))
	}

	var root3, child2 bool
	for _, m := range modules {
		if m.Dir == root {
			root3 = m.SpringBoot3()
		}
		if m.Dir == filepath.Join(root, "order-service") {
			child2 = m.SpringBoot3()
		}
	}
	if !root3 {
		t.Error("expected root module to be detected as Spring Boot 3.x")
	}
	if child2 {
		t.Error("expected order-service module to be detected as Spring Boot 2.x, not 3.x")
	}
}

func TestDiscoverSkipsModuleChildWithoutPom(t *testing.T) {
	root := t.TempDir()
	rootPom := writePom(t, root, rootPomSource)
	// order-service is listed but has no pom.xml; payment-service likewise.

	modules, err := Discover(rootPom)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("expected only the root module when children lack pom.xml, got %d", len(modules))
	}
}

func TestSpringBoot3FalseWhenParentVersionMissing(t *testing.T) {
	m := Module{}
	if m.SpringBoot3() {
		t.Error("expected SpringBoot3() to be false with no parent version")
	}
}
