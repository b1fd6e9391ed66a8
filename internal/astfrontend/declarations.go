package astfrontend

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// TypeDecl is one top-level class/interface/enum declaration. Type
// declarations nested inside a body are not extracted.
type TypeDecl struct {
	Kind          string // "class", "interface", "enum"
	Name          string
	QualifiedName string
	model.LineRange
	Annotations []Annotation
	Superclass  string
	Interfaces  []string
	Fields      []*FieldDecl
	Methods     []*MethodDecl

	Node *sitter.Node
}

// FieldDecl is one field declaration (one variable_declarator per FieldDecl;
// a multi-variable declaration line like `int a, b;` yields two FieldDecls).
type FieldDecl struct {
	Name        string
	TypeSimple  string
	IsStatic    bool
	IsFinal     bool
	Initializer string // raw source text of the initializer expression, "" if none
	model.LineRange
	Annotations []Annotation
}

// Param is one formal method parameter.
type Param struct {
	Name       string
	TypeSimple string
}

// MethodDecl is one method or constructor declaration.
type MethodDecl struct {
	Name          string
	Signature     string // raw formal_parameters source text
	Params        []Param
	ReturnType    string
	IsConstructor bool
	IsPublic      bool
	IsPrivate     bool
	model.LineRange
	Annotations []Annotation

	Body *sitter.Node // method_body node, nil for abstract/interface methods
	Node *sitter.Node
}

// Annotation is one @Foo or @Foo(...) annotation attached to a type, field
// or method.
type Annotation struct {
	Name string
	// Args holds element_value_pair "key" -> value text, plus a single
	// positional "value" key for a bare @Foo("x") or @Foo({"x", "y"})
	// single-member annotation (an array is kept as its raw source text).
	Args map[string]string
	model.LineRange
}

func extractTypeDecl(node *sitter.Node, src []byte, pkg, kind string) *TypeDecl {
	name := firstChildText(node, src, "identifier")
	td := &TypeDecl{
		Kind:          kind,
		Name:          name,
		QualifiedName: qualify(pkg, name),
		LineRange:     lineRange(node),
		Annotations:   extractModifierAnnotations(node, src),
		Node:          node,
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "superclass":
			td.Superclass = firstChildText(child, src, "type_identifier", "generic_type", "identifier")
		case "super_interfaces", "extends_interfaces":
			td.Interfaces = append(td.Interfaces, extractTypeList(child, src)...)
		case "class_body", "interface_body", "enum_body":
			td.Fields, td.Methods = extractMembers(child, src)
		}
	}
	return td
}

// extractModifierAnnotations finds annotations in a declaration's leading
// "modifiers" child, which tree-sitter-java groups annotations and
// keywords (public/final/...) under.
func extractModifierAnnotations(node *sitter.Node, src []byte) []Annotation {
	mods := findChild(node, "modifiers")
	if mods == nil {
		return nil
	}
	var out []Annotation
	for i := 0; i < int(mods.ChildCount()); i++ {
		child := mods.Child(i)
		if child.Type() == "marker_annotation" || child.Type() == "annotation" {
			out = append(out, parseAnnotation(child, src))
		}
	}
	return out
}

func parseAnnotation(node *sitter.Node, src []byte) Annotation {
	ann := Annotation{
		Name:      firstChildText(node, src, "identifier", "scoped_identifier"),
		Args:      map[string]string{},
		LineRange: lineRange(node),
	}
	argList := findChild(node, "annotation_argument_list")
	if argList == nil {
		return ann
	}
	for i := 0; i < int(argList.ChildCount()); i++ {
		child := argList.Child(i)
		switch child.Type() {
		case "element_value_pair":
			key := firstChildText(child, src, "identifier")
			val := lastChildText(child, src)
			ann.Args[key] = unquote(val)
		case "string_literal":
			ann.Args["value"] = unquote(child.Content(src))
		case "element_value_array_initializer":
			ann.Args["value"] = child.Content(src)
		}
	}
	return ann
}

func lastChildText(node *sitter.Node, src []byte) string {
	if node.ChildCount() == 0 {
		return ""
	}
	return node.Child(int(node.ChildCount()) - 1).Content(src)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func extractTypeList(node *sitter.Node, src []byte) []string {
	var types []string
	list := node
	if tl := findChild(node, "type_list"); tl != nil {
		list = tl
	}
	for i := 0; i < int(list.ChildCount()); i++ {
		child := list.Child(i)
		if child.Type() == "type_identifier" || child.Type() == "generic_type" {
			types = append(types, child.Content(src))
		}
	}
	return types
}

func extractMembers(body *sitter.Node, src []byte) ([]*FieldDecl, []*MethodDecl) {
	var fields []*FieldDecl
	var methods []*MethodDecl

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "field_declaration":
			fields = append(fields, extractFieldDecls(child, src)...)
		case "method_declaration":
			methods = append(methods, extractMethodDecl(child, src, false))
		case "constructor_declaration":
			methods = append(methods, extractMethodDecl(child, src, true))
		}
	}
	return fields, methods
}

func extractFieldDecls(node *sitter.Node, src []byte) []*FieldDecl {
	typeText := firstChildText(node, src, "type_identifier", "generic_type", "array_type", "integral_type", "floating_point_type", "boolean_type")
	annotations := extractModifierAnnotations(node, src)
	lr := lineRange(node)
	isStatic, isFinal := staticFinal(node, src)

	var out []*FieldDecl
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		name := firstChildText(child, src, "identifier")
		if name == "" {
			continue
		}
		out = append(out, &FieldDecl{
			Name:        name,
			TypeSimple:  typeText,
			IsStatic:    isStatic,
			IsFinal:     isFinal,
			Initializer: fieldInitializer(child, src),
			LineRange:   lr,
			Annotations: annotations,
		})
	}
	return out
}

func staticFinal(node *sitter.Node, src []byte) (isStatic, isFinal bool) {
	mods := findChild(node, "modifiers")
	if mods == nil {
		return false, false
	}
	text := mods.Content(src)
	return strings.Contains(text, "static"), strings.Contains(text, "final")
}

// fieldInitializer returns the source text to the right of '=' in a
// variable_declarator, "" if the declarator has no initializer.
func fieldInitializer(decl *sitter.Node, src []byte) string {
	// variable_declarator children: identifier [ '=' value ]
	for i := 0; i < int(decl.ChildCount()); i++ {
		child := decl.Child(i)
		if child.Type() == "=" && i+1 < int(decl.ChildCount()) {
			return decl.Child(i + 1).Content(src)
		}
	}
	return ""
}

func extractMethodDecl(node *sitter.Node, src []byte, isConstructor bool) *MethodDecl {
	md := &MethodDecl{
		Name:          firstChildText(node, src, "identifier"),
		IsConstructor: isConstructor,
		LineRange:     lineRange(node),
		Annotations:   extractModifierAnnotations(node, src),
		Node:          node,
	}
	md.IsPublic, md.IsPrivate = visibility(node, src)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "formal_parameters":
			md.Signature = child.Content(src)
			md.Params = extractParams(child, src)
		case "method_body", "constructor_body":
			md.Body = child
		case "type_identifier", "generic_type", "array_type", "void_type", "integral_type", "boolean_type":
			if !isConstructor {
				md.ReturnType = child.Content(src)
			}
		}
	}
	return md
}

func visibility(node *sitter.Node, src []byte) (isPublic, isPrivate bool) {
	mods := findChild(node, "modifiers")
	if mods == nil {
		return false, false // package-private
	}
	text := mods.Content(src)
	return strings.Contains(text, "public"), strings.Contains(text, "private")
}

func extractParams(node *sitter.Node, src []byte) []Param {
	var params []Param
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "formal_parameter" && child.Type() != "spread_parameter" {
			continue
		}
		p := Param{
			Name:       firstChildText(child, src, "identifier"),
			TypeSimple: firstChildText(child, src, "type_identifier", "generic_type", "array_type", "integral_type", "boolean_type"),
		}
		params = append(params, p)
	}
	return params
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// AnnotationNamed returns the annotation in anns named name, case-sensitive,
// bare (no package prefix) match, or nil.
func AnnotationNamed(anns []Annotation, name string) *Annotation {
	for i := range anns {
		if anns[i].Name == name {
			return &anns[i]
		}
	}
	return nil
}

// HasAnnotation reports whether anns contains an annotation named name.
func HasAnnotation(anns []Annotation, name string) bool {
	return AnnotationNamed(anns, name) != nil
}
