package crossapp

import (
	"strings"

	"github.com/go-logr/logr"

	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/model"
)

// ConsumerRecord is one flattened @KafkaListener method, matchable by exact
// topic equality against a producer call's effective topic.
type ConsumerRecord struct {
	ServiceName   string
	ConsumerClass string
	MethodName    string
	Topic         string
}

// BuildConsumerRegistry flattens every Kafka listener method's topic
// across apps, in application then component then method insertion order.
func BuildConsumerRegistry(apps []*model.ParsedApplication) []ConsumerRecord {
	var registry []ConsumerRecord
	for _, app := range apps {
		service := app.AppKey()
		for _, c := range app.KafkaListeners {
			for _, m := range c.KafkaListenerMethods {
				if m.KafkaTopic == "" {
					continue
				}
				registry = append(registry, ConsumerRecord{
					ServiceName:   service,
					ConsumerClass: c.QualifiedName,
					MethodName:    m.MethodName,
					Topic:         m.KafkaTopic,
				})
			}
		}
	}
	return registry
}

// ResolveKafkaCalls resolves every PRODUCER ParsedKafkaCall reachable from
// apps' components against consumers, per §4.7: a dynamic, sentinel,
// empty, or unresolved-placeholder topic is unresolved outright (unless
// cfg.DefaultTopicName opts the sendDefault sentinel into resolution, per
// the Open Question decision this pipeline made); otherwise the first
// consumer with an exact topic match wins.
func ResolveKafkaCalls(apps []*model.ParsedApplication, consumers []ConsumerRecord, cfg *classify.ConfigStore, log logr.Logger) {
	for _, app := range apps {
		for _, c := range app.ComponentsInOrder() {
			for _, m := range allMethodsOf(c) {
				for _, call := range m.KafkaCalls {
					if call.Direction != model.DirectionProducer {
						continue
					}
					resolveKafkaCall(call, consumers, cfg)
					if !call.Resolved {
						log.V(3).Info("kafka producer call left unresolved", "owner", c.QualifiedName, "method", m.MethodName, "topic", call.RawTopic, "reason", call.ResolutionReason)
					}
				}
			}
		}
	}
}

func resolveKafkaCall(call *model.ParsedKafkaCall, consumers []ConsumerRecord, cfg *classify.ConfigStore) {
	topic := call.RawTopic

	if isUnresolvableTopic(topic) {
		if topic == model.DefaultTopicMarker && cfg.DefaultTopicName != "" {
			topic = cfg.DefaultTopicName
		} else {
			call.ResolutionReason = reasonDynamicTopicTemplate
			return
		}
	}

	call.EffectiveTopic = topic
	call.TopicResolved = true

	for _, entry := range consumers {
		if entry.Topic != topic {
			continue
		}
		call.Resolved = true
		call.ResolvedTopic = topic
		call.TargetService = entry.ServiceName
		call.TargetConsumerClass = entry.ConsumerClass
		call.TargetConsumerMethod = entry.MethodName
		return
	}

	call.ResolutionReason = renderReason(reasonNoConsumerTemplate, map[string]string{"topic": topic})
}

func isUnresolvableTopic(topic string) bool {
	if topic == "" || topic == model.DynamicMarker || topic == model.DefaultTopicMarker {
		return true
	}
	return strings.Contains(topic, "${") || strings.Contains(topic, "#{")
}
