// Package astfrontend parses a single
// Java source file with tree-sitter and exposes its package, imports and
// top-level type declarations. No classpath or build tool ever runs; the
// grammar gives a syntax tree, nothing more.
//
// The node-level vocabulary in expressions.go (CtInvocation, CtLiteral,
// CtFieldRead, CtVariableRead, CtBinaryOperator) names expression shapes the
// way a Spoon-based analyzer would, even though this frontend runs on
// tree-sitter rather than Spoon: later components consume the same
// vocabulary regardless of which concrete grammar produced it.
//
// Grounded on other_examples' tree-sitter Java parser (package-level
// child-type switch over package_declaration/import_declaration/
// class_declaration/interface_declaration/enum_declaration), corroborated
// by two further independent uses of smacker/go-tree-sitter in the
// example pack.
package astfrontend

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// Parser wraps a tree-sitter parser configured for the Java grammar. It is
// not safe for concurrent use by multiple goroutines on the same instance;
// callers parsing files in parallel should use one Parser per goroutine.
type Parser struct {
	ts *sitter.Parser
}

// NewParser returns a Parser ready to parse Java source.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{ts: p}
}

// CompilationUnit is the parsed structure of one .java file.
type CompilationUnit struct {
	Path    string
	Package string
	Imports []string
	Types   []*TypeDecl

	src  []byte
	root *sitter.Node
	tree *sitter.Tree
}

// Source returns the file's raw bytes, needed by callers walking nodes
// borrowed from this CompilationUnit (Content(src) calls require them).
func (c *CompilationUnit) Source() []byte {
	return c.src
}

// Close releases the underlying tree-sitter tree. Callers should call this
// once they are done reading a CompilationUnit's nodes, since Node values
// borrowed from it become invalid afterward.
func (c *CompilationUnit) Close() {
	if c.tree != nil {
		c.tree.Close()
	}
}

// Parse parses one Java source file's content and extracts its top-level
// structure. A syntax error from tree-sitter's error-recovery grammar does
// not fail Parse outright: tree-sitter always produces a tree (possibly
// containing ERROR nodes), and declarations it can still recognize are
// still extracted, matching the pipeline's fail-soft-per-file posture.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*CompilationUnit, error) {
	tree, err := p.ts.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	root := tree.RootNode()

	cu := &CompilationUnit{Path: path, src: src, root: root, tree: tree}

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "package_declaration":
			cu.Package = firstChildText(child, cu.src, "scoped_identifier", "identifier")
		case "import_declaration":
			if imp := firstChildText(child, cu.src, "scoped_identifier", "identifier"); imp != "" {
				cu.Imports = append(cu.Imports, imp)
			}
		case "class_declaration":
			cu.Types = append(cu.Types, extractTypeDecl(child, cu.src, cu.Package, "class"))
		case "interface_declaration":
			cu.Types = append(cu.Types, extractTypeDecl(child, cu.src, cu.Package, "interface"))
		case "enum_declaration":
			cu.Types = append(cu.Types, extractTypeDecl(child, cu.src, cu.Package, "enum"))
		}
	}

	return cu, nil
}

func firstChildText(node *sitter.Node, src []byte, types ...string) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		for _, t := range types {
			if child.Type() == t {
				return child.Content(src)
			}
		}
	}
	return ""
}

func findChild(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func lineRange(node *sitter.Node) model.LineRange {
	return model.LineRange{
		LineStart: int(node.StartPoint().Row) + 1,
		LineEnd:   int(node.EndPoint().Row) + 1,
	}
}

// WalkTree calls fn for node and every descendant, depth-first, matching
// the generic recursive visitor other tree-sitter-based analyzers in the
// example pack use for annotation/invocation discovery.
func WalkTree(node *sitter.Node, fn func(*sitter.Node)) {
	fn(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		WalkTree(node.Child(i), fn)
	}
}
