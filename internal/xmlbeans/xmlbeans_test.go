package xmlbeans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

const applicationContextSource = `<?xml version="1.0"?>
<beans xmlns="http://www.springframework.org/schema/beans">
  <bean id="orderGateway" class="com.example.orders.OrderGateway">
    <property name="delegate" ref="orderService"/>
  </bean>
  <bean class="com.example.orders.OrderService"/>
</beans>
`

func TestScanExtractsBeansAndDependsOn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "applicationContext.xml")
	if err := os.WriteFile(path, []byte(applicationContextSource), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Scan(path, "com.example.orders")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if c.ComponentType != model.Configuration {
		t.Errorf("ComponentType = %v, want Configuration", c.ComponentType)
	}
	if c.ClassName != "ApplicationContextXmlConfig" {
		t.Errorf("ClassName = %q", c.ClassName)
	}
	if len(c.Beans) != 2 {
		t.Fatalf("expected 2 beans, got %d", len(c.Beans))
	}

	var gateway *model.ParsedBean
	for _, b := range c.Beans {
		if b.BeanName == "orderGateway" {
			gateway = b
		}
	}
	if gateway == nil {
		t.Fatal("expected to find the orderGateway bean")
	}
	if !gateway.FromXML {
		t.Error("expected FromXML=true")
	}
	if len(gateway.DependsOn) != 1 || gateway.DependsOn[0] != "orderService" {
		t.Errorf("DependsOn = %v, want [orderService]", gateway.DependsOn)
	}
}

func TestScanUsesClassNameWhenIdMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beans.xml")
	if err := os.WriteFile(path, []byte(applicationContextSource), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Scan(path, "")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	var serviceBean *model.ParsedBean
	for _, b := range c.Beans {
		if b.ReturnTypeQualified == "com.example.orders.OrderService" {
			serviceBean = b
		}
	}
	if serviceBean == nil {
		t.Fatal("expected to find the unnamed OrderService bean")
	}
	if serviceBean.BeanName != "com.example.orders.OrderService" {
		t.Errorf("BeanName = %q, want fallback to class name", serviceBean.BeanName)
	}
}

func TestScanReturnsErrorForMissingFile(t *testing.T) {
	if _, err := Scan("/does/not/exist.xml", ""); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
