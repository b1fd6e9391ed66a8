package component

import (
	"strings"
	"unicode"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// repositoryTypePrecedence is checked in order; the first substring match
// against the chosen super-interface's simple name wins.
var repositoryTypePrecedence = []struct {
	substr string
	kind   model.RepositoryType
}{
	{"ReactiveMongoRepository", model.RepoReactiveMongoDB},
	{"ReactiveCrudRepository", model.RepoReactiveJPA},
	{"MongoRepository", model.RepoMongoDB},
	{"JpaRepository", model.RepoJPA},
	{"CrudRepository", model.RepoJPA},
}

// AnalyzeRepository fills td's repository-only ParsedComponent fields.
// typeIndex looks up the entity type's own TypeDecl by simple name, so its
// @Table/@Document annotation can be read when present; a miss falls back
// to the derived snake_case table name.
func AnalyzeRepository(c *model.ParsedComponent, td *astfrontend.TypeDecl, typeIndex map[string]*astfrontend.TypeDecl) {
	parent, others := firstRepositoryInterface(td.Interfaces)
	if parent == "" {
		return
	}
	c.ExtendsClass = stripGenerics(parent)
	c.RepositoryAmbiguousParents = others
	c.RepositoryTypeValue = repositoryTypeOf(c.ExtendsClass)

	entity := firstGenericParam(parent)
	c.EntityClassName = entity
	if entity != "" {
		c.TableName, c.TableSource = tableNameOf(entity, typeIndex)
	}

	c.DatabaseOperations = inferDatabaseOperations(td)
}

// firstRepositoryInterface returns the first super-interface whose simple
// name contains "Repository" (the chosen parent) and every other
// super-interface whose simple name contains it (recorded as ambiguous
// parents per the Open Question decision: first-wins by declaration order,
// the rest are kept rather than silently dropped).
func firstRepositoryInterface(interfaces []string) (parent string, others []string) {
	for _, iface := range interfaces {
		simple := stripGenerics(iface)
		if !strings.Contains(simple, "Repository") {
			continue
		}
		if parent == "" {
			parent = iface
		} else {
			others = append(others, iface)
		}
	}
	return parent, others
}

func repositoryTypeOf(parentSimple string) model.RepositoryType {
	for _, rt := range repositoryTypePrecedence {
		if strings.Contains(parentSimple, rt.substr) {
			return rt.kind
		}
	}
	return model.RepoCustom
}

// firstGenericParam extracts "Order" from "JpaRepository<Order, Long>".
func firstGenericParam(t string) string {
	start := strings.IndexByte(t, '<')
	end := strings.LastIndexByte(t, '>')
	if start < 0 || end <= start {
		return ""
	}
	inner := t[start+1 : end]
	parts := strings.SplitN(inner, ",", 2)
	return strings.TrimSpace(parts[0])
}

func tableNameOf(entitySimple string, typeIndex map[string]*astfrontend.TypeDecl) (string, model.TableSource) {
	entity := typeIndex[entitySimple]
	if entity != nil {
		if ann := astfrontend.AnnotationNamed(entity.Annotations, "Table"); ann != nil {
			if name := firstOf(ann.Args["name"], ann.Args["value"]); name != "" {
				return name, model.TableSourceTableAnnotation
			}
		}
		if ann := astfrontend.AnnotationNamed(entity.Annotations, "Document"); ann != nil {
			if name := firstOf(ann.Args["collection"], ann.Args["value"]); name != "" {
				return name, model.TableSourceDocumentAnnotation
			}
		}
	}
	return snakeCase(entitySimple), model.TableSourceDerivedFromClass
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// databaseOperationRules are substring-matched against a method name,
// lowercased, in this order; a method can contribute more than one
// operation (e.g. "findAndDelete" would match both READ and DELETE).
var databaseOperationRules = []struct {
	substr string
	op     model.DatabaseOperation
}{
	{"find", model.OpRead}, {"get", model.OpRead}, {"read", model.OpRead}, {"query", model.OpRead},
	{"save", model.OpWrite}, {"create", model.OpWrite}, {"insert", model.OpWrite}, {"persist", model.OpWrite},
	{"update", model.OpUpdate}, {"merge", model.OpUpdate},
	{"delete", model.OpDelete}, {"remove", model.OpDelete},
}

func inferDatabaseOperations(td *astfrontend.TypeDecl) []model.DatabaseOperation {
	seen := map[model.DatabaseOperation]bool{}
	var ops []model.DatabaseOperation
	for _, m := range td.Methods {
		lower := strings.ToLower(m.Name)
		for _, rule := range databaseOperationRules {
			if strings.Contains(lower, rule.substr) && !seen[rule.op] {
				seen[rule.op] = true
				ops = append(ops, rule.op)
			}
		}
	}
	if len(ops) == 0 {
		return []model.DatabaseOperation{model.OpRead, model.OpWrite, model.OpDelete}
	}
	return ops
}
