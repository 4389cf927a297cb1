package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records outbox publishing and consumer processing outcomes.
type PipelineMetrics struct {
	publishDuration *prometheus.HistogramVec
	published       *prometheus.CounterVec
	publishFailed   *prometheus.CounterVec
	deadLettered    *prometheus.CounterVec
	consumed        *prometheus.CounterVec
	consumeFailed   *prometheus.CounterVec
}

// NewPipelineMetrics registers the event pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	publishDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "outbox_publish_duration_seconds",
		Help:    "Duration of outbox publish calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"event_type"})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_events_published",
		Help: "Outbox events successfully published.",
	}, []string{"event_type"})
	publishFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_publish_failures",
		Help: "Outbox publish attempts that failed.",
	}, []string{"event_type"})
	deadLettered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_events_dead_lettered",
		Help: "Outbox events moved to the dead letter table.",
	}, []string{"event_type", "reason"})
	consumed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_events_processed",
		Help: "Domain events processed by a worker consumer.",
	}, []string{"consumer"})
	consumeFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_events_failed",
		Help: "Domain events a worker consumer failed to process.",
	}, []string{"consumer"})
	reg.MustRegister(publishDuration, published, publishFailed, deadLettered, consumed, consumeFailed)
	return &PipelineMetrics{
		publishDuration: publishDuration,
		published:       published,
		publishFailed:   publishFailed,
		deadLettered:    deadLettered,
		consumed:        consumed,
		consumeFailed:   consumeFailed,
	}
}

// ObservePublishDuration records the publish latency for an event type.
func (p *PipelineMetrics) ObservePublishDuration(eventType string, duration time.Duration) {
	if p == nil || p.publishDuration == nil {
		return
	}
	p.publishDuration.WithLabelValues(normalizeLabel(eventType)).Observe(duration.Seconds())
}

// IncPublished increments the published counter for an event type.
func (p *PipelineMetrics) IncPublished(eventType string) {
	if p == nil || p.published == nil {
		return
	}
	p.published.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncPublishFailed increments the publish failure counter for an event type.
func (p *PipelineMetrics) IncPublishFailed(eventType string) {
	if p == nil || p.publishFailed == nil {
		return
	}
	p.publishFailed.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncDeadLettered increments the DLQ counter for an event type and reason.
func (p *PipelineMetrics) IncDeadLettered(eventType, reason string) {
	if p == nil || p.deadLettered == nil {
		return
	}
	p.deadLettered.WithLabelValues(normalizeLabel(eventType), normalizeLabel(reason)).Inc()
}

// IncConsumed increments the processed counter for a consumer.
func (p *PipelineMetrics) IncConsumed(consumer string) {
	if p == nil || p.consumed == nil {
		return
	}
	p.consumed.WithLabelValues(normalizeLabel(consumer)).Inc()
}

// IncConsumeFailed increments the failure counter for a consumer.
func (p *PipelineMetrics) IncConsumeFailed(consumer string) {
	if p == nil || p.consumeFailed == nil {
		return
	}
	p.consumeFailed.WithLabelValues(normalizeLabel(consumer)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
