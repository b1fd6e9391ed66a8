// Package xmlbeans is the legacy XML Spring bean scanner (SPEC_FULL.md
// §4.1(ADDED)): it reads a Spring application-context XML file
// (applicationContext.xml, *-context.xml) and turns every
// "<bean id=... class=.../>" element into a ParsedBean, attached to a
// synthetic Configuration component named after the file, the same way a
// @Configuration class's @Bean methods are attached to a real one.
package xmlbeans

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

var beanQuery = xpath.MustCompile("//bean")
var refQuery = xpath.MustCompile("./property/@ref")

// Scan parses path and returns one synthetic Configuration ParsedComponent
// holding one ParsedBean per <bean> element that has a class attribute, at
// any nesting depth. A malformed XML file
// is a property-load-class failure: the caller logs and skips it, never
// aborting the pipeline.
func Scan(path, basePackage string) (*model.ParsedComponent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening xml bean context %s: %w", path, err)
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing xml bean context %s: %w", path, err)
	}

	name := syntheticName(path)
	qualified := name
	if basePackage != "" {
		qualified = basePackage + "." + name
	}
	c := model.NewParsedComponent(name, qualified, basePackage, model.Configuration)

	for _, n := range xmlquery.QuerySelectorAll(doc, beanQuery) {
		class := n.SelectAttr("class")
		if class == "" {
			continue
		}
		id := n.SelectAttr("id")
		bean := &model.ParsedBean{
			BeanName:            firstNonEmpty(id, class),
			ReturnTypeQualified: class,
			FromXML:             true,
		}
		for _, ref := range xmlquery.QuerySelectorAll(n, refQuery) {
			if v := strings.TrimSpace(ref.InnerText()); v != "" {
				bean.DependsOn = append(bean.DependsOn, v)
			}
		}
		c.Beans = append(c.Beans, bean)
	}
	return c, nil
}

// syntheticName turns "applicationContext.xml" into "ApplicationContextXmlConfig".
func syntheticName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if base == "" {
		return "XmlConfig"
	}
	return strings.ToUpper(base[:1]) + base[1:] + "XmlConfig"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
