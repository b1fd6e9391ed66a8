package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// MemorySink is a non-production Sink held entirely in memory, upserting by
// canonical id. It exists for tests (in particular the idempotence law:
// upserting the same batch twice produces the same stored state) and is not
// a real graph database persistence layer.
type MemorySink struct {
	mu    sync.Mutex
	nodes map[string]Node
	edges map[string]Edge
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{nodes: map[string]Node{}, edges: map[string]Edge{}}
}

// UpsertNodes merges each node's properties into any existing node sharing
// its canonical id, preserving the first-seen internal id.
func (s *MemorySink) UpsertNodes(_ context.Context, nodes []Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range nodes {
		key := string(n.CanonicalID)
		existing, ok := s.nodes[key]
		if !ok {
			s.nodes[key] = n
			continue
		}
		existing.Kind = n.Kind
		for k, v := range n.Properties {
			if existing.Properties == nil {
				existing.Properties = map[string]interface{}{}
			}
			existing.Properties[k] = v
		}
		s.nodes[key] = existing
	}
	return nil
}

// UpsertEdges merges each edge's properties by canonical id, the same way
// UpsertNodes does for nodes.
func (s *MemorySink) UpsertEdges(_ context.Context, edges []Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range edges {
		key := string(e.CanonicalID)
		existing, ok := s.edges[key]
		if !ok {
			s.edges[key] = e
			continue
		}
		for k, v := range e.Properties {
			if existing.Properties == nil {
				existing.Properties = map[string]interface{}{}
			}
			existing.Properties[k] = v
		}
		s.edges[key] = existing
	}
	return nil
}

// Nodes returns every upserted node, in no particular order.
func (s *MemorySink) Nodes() []Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out
}

// Edges returns every upserted edge, in no particular order.
func (s *MemorySink) Edges() []Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, e)
	}
	return out
}

// JSONLSink appends each upsert batch to a file as newline-delimited JSON,
// one line per node/edge batch call, so the standalone CLI can run end to
// end without a real graph database behind it.
type JSONLSink struct {
	mu   sync.Mutex
	path string
}

// NewJSONLSink returns a sink that appends to path. The file is opened
// (and created if absent) on each write, not here.
func NewJSONLSink(path string) *JSONLSink {
	return &JSONLSink{path: path}
}

type jsonlRecord struct {
	Kind  string      `json:"record"`
	Items interface{} `json:"items"`
}

func (s *JSONLSink) appendLine(record jsonlRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open jsonl sink %s: %w", s.path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("write jsonl record: %w", err)
	}
	return nil
}

// UpsertNodes appends a {"record":"nodes","items":[...]} line.
func (s *JSONLSink) UpsertNodes(_ context.Context, nodes []Node) error {
	return s.appendLine(jsonlRecord{Kind: "nodes", Items: nodes})
}

// UpsertEdges appends a {"record":"edges","items":[...]} line.
func (s *JSONLSink) UpsertEdges(_ context.Context, edges []Edge) error {
	return s.appendLine(jsonlRecord{Kind: "edges", Items: edges})
}
