package progress

import (
	"fmt"
	"io"
	"sync"
)

// TextReporter writes progress events as human-readable text, one line per
// event, to writer.
type TextReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewTextReporter returns a TextReporter writing to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{writer: w}
}

func (t *TextReporter) Report(event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	event.normalize()

	ts := event.Timestamp.Format("15:04:05")
	var line string
	switch event.Stage {
	case StageDiscovery:
		line = fmt.Sprintf("[%s] discovering sources: %s\n", ts, event.Message)
	case StageParsing:
		if event.Total > 0 {
			line = fmt.Sprintf("[%s] parsed %d/%d files (%.1f%%)\n", ts, event.Current, event.Total, event.Percent)
		} else {
			line = fmt.Sprintf("[%s] parsing: %s\n", ts, event.Message)
		}
	case StageClassification:
		line = fmt.Sprintf("[%s] classifying: %s\n", ts, event.Message)
	case StageResolution:
		line = fmt.Sprintf("[%s] resolving dependencies: %s\n", ts, event.Message)
	case StageCrossApp:
		line = fmt.Sprintf("[%s] resolving cross-application calls\n", ts)
	case StageEmission:
		line = fmt.Sprintf("[%s] emitting graph: %s\n", ts, event.Message)
	case StageComplete:
		line = fmt.Sprintf("[%s] analysis complete\n", ts)
	default:
		if event.Message != "" {
			line = fmt.Sprintf("[%s] %s\n", ts, event.Message)
		}
	}
	if line != "" {
		t.writer.Write([]byte(line))
	}
}
