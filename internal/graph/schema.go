package graph

import "github.com/swaggest/openapi-go/openapi3"

var (
	stringType openapi3.SchemaType = openapi3.SchemaTypeString
	arrayType  openapi3.SchemaType = openapi3.SchemaTypeArray
	objectType openapi3.SchemaType = openapi3.SchemaTypeObject
)

// DescribeSchema builds an OpenAPI ComponentsSchemas describing the node
// and edge property shapes Emit produces, by hand, the same way the
// teacher's parser.CreateSchema builds a schema for its rule/violation
// shapes. A consumer of a Sink-backed service can use it to generate
// client-side validators or docs without this Go source.
func DescribeSchema() (openapi3.ComponentsSchemas, error) {
	schema := openapi3.ComponentsSchemas{
		MapOfSchemaOrRefValues: map[string]openapi3.SchemaOrRef{},
	}

	schema.MapOfSchemaOrRefValues["node"] = openapi3.SchemaOrRef{
		Schema: &openapi3.Schema{
			Type: &objectType,
			Properties: map[string]openapi3.SchemaOrRef{
				"internalId": {
					Schema: &openapi3.Schema{Type: &stringType},
				},
				"canonicalId": {
					Schema: &openapi3.Schema{Type: &stringType},
				},
				"kind": {
					Schema: &openapi3.Schema{
						Type: &stringType,
						Enum: []interface{}{
							"Application", "Controller", "Endpoint", "Service",
							"Repository", "KafkaListener", "KafkaTopic",
							"DatabaseTable", "ExternalCall", "Method",
						},
					},
				},
				"properties": {
					Schema: &openapi3.Schema{Type: &objectType},
				},
			},
		},
	}

	schema.MapOfSchemaOrRefValues["edge"] = openapi3.SchemaOrRef{
		Schema: &openapi3.Schema{
			Type: &objectType,
			Properties: map[string]openapi3.SchemaOrRef{
				"internalId": {
					Schema: &openapi3.Schema{Type: &stringType},
				},
				"canonicalId": {
					Schema: &openapi3.Schema{Type: &stringType},
				},
				"type": {
					Schema: &openapi3.Schema{
						Type: &stringType,
						Enum: []interface{}{
							"HAS_CONTROLLER", "HAS_SERVICE", "HAS_REPOSITORY",
							"HAS_KAFKA_LISTENER", "HAS_ENDPOINT", "CALLS",
							"MAKES_EXTERNAL_CALL", "CALLS_ENDPOINT",
							"PRODUCES_TO", "CONSUMES_FROM", "ACCESSES",
						},
					},
				},
				"srcCanonicalId": {
					Schema: &openapi3.Schema{Type: &stringType},
				},
				"dstCanonicalId": {
					Schema: &openapi3.Schema{Type: &stringType},
				},
				"properties": {
					Schema: &openapi3.Schema{Type: &objectType},
				},
			},
		},
	}

	schema.MapOfSchemaOrRefValues["batch"] = openapi3.SchemaOrRef{
		Schema: &openapi3.Schema{
			Type: &objectType,
			Properties: map[string]openapi3.SchemaOrRef{
				"nodes": {
					Schema: &openapi3.Schema{
						Type: &arrayType,
						Items: &openapi3.SchemaOrRef{
							SchemaReference: &openapi3.SchemaReference{Ref: "#/components/schemas/node"},
						},
					},
				},
				"edges": {
					Schema: &openapi3.Schema{
						Type: &arrayType,
						Items: &openapi3.SchemaOrRef{
							SchemaReference: &openapi3.SchemaReference{Ref: "#/components/schemas/edge"},
						},
					},
				},
			},
		},
	}

	return schema, nil
}
