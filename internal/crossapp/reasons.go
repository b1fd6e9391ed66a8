package crossapp

import (
	"github.com/cbroglie/mustache"
)

// Reason templates rendered with cbroglie/mustache for human-readable
// message rendering (the same template + context-map idiom engine/engine.go
// uses for its own incident messages).
const (
	reasonDynamicURLTemplate   = "URL is dynamic or empty"
	reasonNoEndpointTemplate   = "no endpoint matched {{method}} {{path}}"
	reasonDynamicTopicTemplate = "topic is dynamic, the sendDefault sentinel, empty, or an unresolved placeholder"
	reasonNoConsumerTemplate   = "no consumer found for topic {{topic}}"
)

func renderReason(template string, context map[string]string) string {
	rendered, err := mustache.Render(template, context)
	if err != nil {
		return template
	}
	return rendered
}
