package progress

import (
	"encoding/json"
	"io"
	"sync"
)

// JSONReporter writes each progress event as a single JSON line to writer.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter returns a JSONReporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (j *JSONReporter) Report(event Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	event.normalize()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	j.writer.Write(data)
	j.writer.Write([]byte("\n"))
}
