package component

import (
	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/model"
	"github.com/konveyor/java-arch-analyzer/internal/valuefields"
)

// Build assembles one ParsedComponent from a classified type declaration:
// implemented interfaces, injected dependencies, its controller/listener
// method set, every captured raw/external/Kafka call, and (for
// Repository-classified types) the repository analysis sub-step.
func Build(
	ctype model.ComponentType,
	td *astfrontend.TypeDecl,
	cu *astfrontend.CompilationUnit,
	basePackage string,
	cfg *classify.ConfigStore,
	selector *classify.PackageSelector,
	valueFields valuefields.Map,
	typeIndex map[string]*astfrontend.TypeDecl,
	feignClients map[string]*astfrontend.TypeDecl,
) *model.ParsedComponent {
	c := model.NewParsedComponent(td.Name, td.QualifiedName, cu.Package, ctype)
	c.LineRange = td.LineRange
	c.ImplementedInterfaces = ImplementedInterfaces(td, cu.Imports, cu.Package)
	c.InjectedDependencies = InjectedDependencies(td, cu.Imports, cu.Package, selector)

	if ctype == model.RestController || ctype == model.Controller {
		c.BaseURL = BaseURL(td)
	}
	if ctype == model.Repository {
		AnalyzeRepository(c, td, typeIndex)
	}

	methods, listeners := BuildMethods(ctype, td, c.BaseURL, cfg)
	c.Methods = methods
	c.KafkaListenerMethods = listeners

	cc := CaptureContext{
		FieldTypes:         FieldTypeSimple(td),
		Imports:            cu.Imports,
		Package:            cu.Package,
		Src:                cu.Source(),
		ValueFields:        valueFields,
		Selector:           selector,
		Config:             cfg,
		QualifiedClassName: td.QualifiedName,
	}
	for _, m := range allMethods(td) {
		cc.ParamTypes = ParamTypeSimple(m)
		pm := findParsedMethod(c, m.Name, m.Signature)
		if pm == nil {
			continue
		}
		CaptureInvocations(pm, m, cc, feignClients)
	}

	return c
}

func allMethods(td *astfrontend.TypeDecl) []*astfrontend.MethodDecl {
	var out []*astfrontend.MethodDecl
	for _, m := range td.Methods {
		if !m.IsConstructor {
			out = append(out, m)
		}
	}
	return out
}

func findParsedMethod(c *model.ParsedComponent, name, signature string) *model.ParsedMethod {
	for _, pm := range c.Methods {
		if pm.MethodName == name && pm.Signature == signature {
			return pm
		}
	}
	for _, pm := range c.KafkaListenerMethods {
		if pm.MethodName == name && pm.Signature == signature {
			return pm
		}
	}
	return nil
}

// CollectFeignClients scans every parsed type across a repository for
// interfaces annotated @FeignClient, indexing each one's TypeDecl under both
// its simple and qualified name so CaptureInvocations can recognize a Feign
// call regardless of which form the receiver's declared type resolved to,
// and look up the interface method's mapping annotation for feignCall.
func CollectFeignClients(units []*astfrontend.CompilationUnit) map[string]*astfrontend.TypeDecl {
	out := map[string]*astfrontend.TypeDecl{}
	for _, cu := range units {
		for _, td := range cu.Types {
			if astfrontend.HasAnnotation(td.Annotations, "FeignClient") {
				out[td.Name] = td
				out[td.QualifiedName] = td
			}
		}
	}
	return out
}

// BuildTypeIndex maps every parsed type's simple name to its declaration,
// used by AnalyzeRepository to look up an entity class's @Table/@Document
// annotation across compilation units.
func BuildTypeIndex(units []*astfrontend.CompilationUnit) map[string]*astfrontend.TypeDecl {
	out := map[string]*astfrontend.TypeDecl{}
	for _, cu := range units {
		for _, td := range cu.Types {
			if _, exists := out[td.Name]; !exists {
				out[td.Name] = td
			}
		}
	}
	return out
}
