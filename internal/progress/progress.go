// Package progress reports orchestrator pipeline progress to an optional
// observer, the same Reporter-interface-plus-concrete-writers idiom the
// rule engine's progress subpackage used for rule execution, retargeted to
// this pipeline's stages (file discovery through graph emission) instead of
// rule parsing/execution.
package progress

import (
	"time"
)

// Reporter is the interface for reporting analysis progress. Implementations
// must be safe for concurrent use and must not block: Report is called
// inline from the orchestrator's goroutines and a slow reporter would stall
// analysis.
type Reporter interface {
	Report(event Event)
}

// Event represents a progress update at a specific point in time.
type Event struct {
	Timestamp time.Time              `json:"timestamp"`
	Stage     Stage                  `json:"stage"`
	Message   string                 `json:"message,omitempty"`
	Current   int                    `json:"current,omitempty"`
	Total     int                    `json:"total,omitempty"`
	Percent   float64                `json:"percent,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func (e *Event) normalize() {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.Percent == 0.0 && e.Total > 0 {
		e.Percent = float64(e.Current) / float64(e.Total) * 100.0
	}
}

// Stage is a phase of repository analysis. Within one call to
// AnalyzeRepositories, StageDiscovery and StageParsing are reported once per
// repository (run concurrently across repositories), StageClassification
// and StageResolution once per application, then StageCrossApp and
// StageComplete once each. The analyze command reports StageEmission once
// per application after AnalyzeRepositories returns, so emission events
// follow StageComplete.
type Stage string

const (
	// StageDiscovery indicates filesystem walking is underway for a
	// repository.
	StageDiscovery Stage = "discovery"

	// StageParsing indicates Java source parsing for a repository. Events
	// include the file count via Total.
	StageParsing Stage = "parsing"

	// StageClassification indicates component classification and Pass 1
	// capture for one Spring Boot application boundary.
	StageClassification Stage = "classification"

	// StageResolution indicates Pass 2 dependency injection resolution for
	// one application.
	StageResolution Stage = "resolution"

	// StageCrossApp indicates cross-application external-call and Kafka
	// topic resolution across every repository handed to
	// AnalyzeRepositories together.
	StageCrossApp Stage = "cross_app"

	// StageEmission indicates canonical id generation and node/edge
	// emission for one application.
	StageEmission Stage = "emission"

	// StageComplete indicates AnalyzeRepositories has finished.
	StageComplete Stage = "complete"
)

// Report normalizes event (filling Timestamp and Percent when unset) and
// forwards it to r, unless r is nil.
func Report(r Reporter, event Event) {
	if r == nil {
		return
	}
	event.normalize()
	r.Report(event)
}
