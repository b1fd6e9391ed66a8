package progress

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestReportNilReporterIsNoop(t *testing.T) {
	Report(nil, Event{Stage: StageComplete})
}

func TestReportNormalizesPercent(t *testing.T) {
	var got Event
	Report(fakeReporter(func(e Event) { got = e }), Event{Stage: StageParsing, Current: 3, Total: 6})
	if got.Percent != 50 {
		t.Fatalf("Percent = %v, want 50", got.Percent)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("Timestamp not populated")
	}
}

func TestTextReporterWritesParsingProgress(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf)
	r.Report(Event{Stage: StageParsing, Current: 2, Total: 4})
	if !strings.Contains(buf.String(), "2/4") {
		t.Fatalf("text reporter output = %q, want it to contain 2/4", buf.String())
	}
}

func TestJSONReporterWritesValidJSONLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	r.Report(Event{Stage: StageComplete, Message: "done"})

	var decoded Event
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding JSON reporter output: %v", err)
	}
	if decoded.Stage != StageComplete || decoded.Message != "done" {
		t.Fatalf("decoded event = %+v", decoded)
	}
}

func TestNoopReporterDiscardsEvents(t *testing.T) {
	NewNoopReporter().Report(Event{Stage: StageComplete})
}

type fakeReporter func(Event)

func (f fakeReporter) Report(e Event) { f(e) }
