// Package graph is the graph emitter: it translates a resolved
// model.ParsedApplication into the node/edge batch a Sink (the analyzer's
// name for GraphSink) persists. The Sink and Store interfaces are pure
// output boundaries with zero production implementation — wiring either to
// a real graph database or document store is out of scope here.
package graph

import (
	"context"

	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// Node is one upserted graph node. Properties is a flat, JSON/YAML
// marshalable bag; its shape per node kind is described by DescribeSchema.
type Node struct {
	InternalID  string                 `yaml:"internalId" json:"internalId"`
	CanonicalID model.CanonicalID      `yaml:"canonicalId" json:"canonicalId"`
	Kind        string                 `yaml:"kind" json:"kind"`
	Properties  map[string]interface{} `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Edge is one upserted graph edge between two canonical node ids.
type Edge struct {
	InternalID     string                 `yaml:"internalId" json:"internalId"`
	CanonicalID    model.CanonicalID      `yaml:"canonicalId" json:"canonicalId"`
	Type           string                 `yaml:"type" json:"type"`
	SrcCanonicalID model.CanonicalID      `yaml:"srcCanonicalId" json:"srcCanonicalId"`
	DstCanonicalID model.CanonicalID      `yaml:"dstCanonicalId" json:"dstCanonicalId"`
	Properties     map[string]interface{} `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Batch is one application's worth of upserts, always emitted together: one
// upsert batch per application.
type Batch struct {
	Nodes []Node `yaml:"nodes,omitempty" json:"nodes,omitempty"`
	Edges []Edge `yaml:"edges,omitempty" json:"edges,omitempty"`
}

// Sink is the graph output boundary downstream consumers implement to
// persist emitted nodes and edges. Both methods must be idempotent:
// upserting the same canonical id twice merges properties rather than
// duplicating the node/edge.
type Sink interface {
	UpsertNodes(ctx context.Context, nodes []Node) error
	UpsertEdges(ctx context.Context, edges []Edge) error
}

// Store is the output boundary that persists a fully resolved
// ParsedApplication keyed by projectID and AppKey.
type Store interface {
	Put(ctx context.Context, projectID, appKey string, app *model.ParsedApplication) error
}
