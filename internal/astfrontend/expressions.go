package astfrontend

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// CtInvocation is a method call expression: target.method(args) or a bare
// method(args) self-call. The field naming mirrors Spoon's CtInvocation
// vocabulary; the concrete extraction walks a tree-sitter
// "method_invocation" node instead of a Spoon execution reference.
type CtInvocation struct {
	TargetExpr string // source text of the receiver expression, "" for a self-call
	MethodName string
	Arguments  []string // source text of each argument expression
	model.LineRange
	Node *sitter.Node
}

// CtLiteral is a literal expression; for the pipeline's purposes only
// string literals are interesting (config keys, SQL, URLs, topic names).
type CtLiteral struct {
	Value string
	model.LineRange
}

// CtFieldRead is a bare or this-qualified identifier reference that
// resolves to an instance field rather than a local variable; since this
// frontend has no classpath, "is it a field" is approximated by the
// caller matching the identifier against the enclosing type's known field
// names, not determined here.
type CtFieldRead struct {
	FieldName string
	model.LineRange
}

// CtVariableRead is a bare identifier reference used as an expression.
type CtVariableRead struct {
	Name string
	model.LineRange
}

// CtBinaryOperator is a binary expression, most often string concatenation
// (`+`) used to build a SQL/URL/topic string from parts.
type CtBinaryOperator struct {
	Operator string
	Left     string
	Right    string
	model.LineRange
}

// WalkInvocations returns every method_invocation under root, in source
// order. method_invocation's grammar fields are used directly ("object",
// "name", "arguments") rather than a positional child scan, since a
// simple identifier receiver (e.g. "restTemplate.getForObject(...)") is
// itself an "identifier" node indistinguishable from the method name node
// by type alone.
func WalkInvocations(root *sitter.Node, src []byte) []CtInvocation {
	var out []CtInvocation
	WalkTree(root, func(n *sitter.Node) {
		if n.Type() != "method_invocation" {
			return
		}
		inv := CtInvocation{LineRange: lineRange(n), Node: n}
		if obj := n.ChildByFieldName("object"); obj != nil {
			inv.TargetExpr = obj.Content(src)
		}
		if name := n.ChildByFieldName("name"); name != nil {
			inv.MethodName = name.Content(src)
		}
		if args := n.ChildByFieldName("arguments"); args != nil {
			inv.Arguments = extractArgs(args, src)
		}
		out = append(out, inv)
	})
	return out
}

func extractArgs(argList *sitter.Node, src []byte) []string {
	var out []string
	for i := 0; i < int(argList.ChildCount()); i++ {
		child := argList.Child(i)
		t := child.Type()
		if t == "(" || t == ")" || t == "," {
			continue
		}
		out = append(out, child.Content(src))
	}
	return out
}

// WalkStringLiterals returns every string_literal under root, unquoted.
func WalkStringLiterals(root *sitter.Node, src []byte) []CtLiteral {
	var out []CtLiteral
	WalkTree(root, func(n *sitter.Node) {
		if n.Type() != "string_literal" {
			return
		}
		out = append(out, CtLiteral{Value: unquote(n.Content(src)), LineRange: lineRange(n)})
	})
	return out
}

// WalkIdentifiers returns every bare identifier expression under root,
// split into CtFieldRead when its name is in knownFields, else
// CtVariableRead. identifier nodes that are themselves the method name of
// an enclosing method_invocation or a type name are excluded by the
// caller-supplied knownFields/exclusion convention; this frontend makes no
// attempt to fully disambiguate declaration sites from uses without a
// classpath.
func WalkIdentifiers(root *sitter.Node, src []byte, knownFields map[string]bool) ([]CtFieldRead, []CtVariableRead) {
	var fields []CtFieldRead
	var vars []CtVariableRead
	WalkTree(root, func(n *sitter.Node) {
		if n.Type() != "identifier" {
			return
		}
		parent := n.Parent()
		if parent != nil {
			switch parent.Type() {
			case "method_invocation", "class_declaration", "method_declaration",
				"import_declaration", "package_declaration", "field_access":
				return
			}
		}
		name := n.Content(src)
		if knownFields[name] {
			fields = append(fields, CtFieldRead{FieldName: name, LineRange: lineRange(n)})
		} else {
			vars = append(vars, CtVariableRead{Name: name, LineRange: lineRange(n)})
		}
	})
	return fields, vars
}

// FindLocalVarInitializer searches body for a local_variable_declaration
// introducing name and returns its initializer's source text, if any.
// Used for a best-effort "follow a local variable back to its literal"
// resolution when a call argument is a bare identifier rather than a
// literal.
func FindLocalVarInitializer(body *sitter.Node, src []byte, name string) (string, bool) {
	var found string
	var ok bool
	WalkTree(body, func(n *sitter.Node) {
		if ok || n.Type() != "local_variable_declaration" {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			decl := n.Child(i)
			if decl.Type() != "variable_declarator" {
				continue
			}
			if firstChildText(decl, src, "identifier") != name {
				continue
			}
			if init := fieldInitializer(decl, src); init != "" {
				found, ok = init, true
			}
		}
	})
	return found, ok
}

// WalkBinaryOperators returns every binary_expression under root.
func WalkBinaryOperators(root *sitter.Node, src []byte) []CtBinaryOperator {
	var out []CtBinaryOperator
	WalkTree(root, func(n *sitter.Node) {
		if n.Type() != "binary_expression" {
			return
		}
		op := CtBinaryOperator{LineRange: lineRange(n)}
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			switch {
			case i == 0:
				op.Left = child.Content(src)
			case i == int(n.ChildCount())-1:
				op.Right = child.Content(src)
			default:
				op.Operator = child.Content(src)
			}
		}
		out = append(out, op)
	})
	return out
}
