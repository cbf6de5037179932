package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics tracks the message-to-invoice pipeline.
type EngineMetrics struct {
	messagesProcessed *prometheus.CounterVec
	processDuration   prometheus.Histogram
	pricingUnresolved prometheus.Counter
	numberRetries     prometheus.Counter
	numberExhausted   prometheus.Counter
}

// Config scopes metric const labels.
type Config struct {
	ServiceName string
	Environment string
}

var (
	engineMetricsOnce sync.Once
	engineMetrics     *EngineMetrics
)

// Engine returns the process-wide engine metrics, registering them on first use.
func Engine() *EngineMetrics {
	return EngineWithConfig(Config{})
}

// EngineWithConfig returns the engine metrics with explicit label config.
func EngineWithConfig(cfg Config) *EngineMetrics {
	engineMetricsOnce.Do(func() {
		engineMetrics = newEngineMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return engineMetrics
}

// ResetEngineMetricsForTest clears the singleton between test registries.
func ResetEngineMetricsForTest() {
	engineMetricsOnce = sync.Once{}
	engineMetrics = nil
}

func newEngineMetrics(registerer prometheus.Registerer, cfg Config) *EngineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "tagihin"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	messagesProcessed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "tagihin_messages_processed_total",
			Help:        "Total order messages processed by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // invoiced | parse_failed | storage_failed
	)

	processDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "tagihin_process_duration_seconds",
			Help:        "Latency of a full parse-and-compute request.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		},
	)

	pricingUnresolved := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "tagihin_pricing_unresolved_total",
			Help:        "Item lines with no catalog match and no explicit price.",
			ConstLabels: constLabels,
		},
	)

	numberRetries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "tagihin_number_retries_total",
			Help:        "Invoice number reservations retried after a collision.",
			ConstLabels: constLabels,
		},
	)

	numberExhausted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "tagihin_number_exhausted_total",
			Help:        "Number generations abandoned after the retry budget.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(
		messagesProcessed,
		processDuration,
		pricingUnresolved,
		numberRetries,
		numberExhausted,
	)

	return &EngineMetrics{
		messagesProcessed: messagesProcessed,
		processDuration:   processDuration,
		pricingUnresolved: pricingUnresolved,
		numberRetries:     numberRetries,
		numberExhausted:   numberExhausted,
	}
}

// IncProcessed records one finished request by result label.
func (m *EngineMetrics) IncProcessed(result string) {
	if m == nil {
		return
	}
	m.messagesProcessed.WithLabelValues(result).Inc()
}

// ObserveProcessDuration records request latency in seconds.
func (m *EngineMetrics) ObserveProcessDuration(seconds float64) {
	if m == nil {
		return
	}
	m.processDuration.Observe(seconds)
}

// IncPricingUnresolved counts an item that fell back to a zero price.
func (m *EngineMetrics) IncPricingUnresolved() {
	if m == nil {
		return
	}
	m.pricingUnresolved.Inc()
}

// IncNumberRetry counts a suffix regeneration after a reservation conflict.
func (m *EngineMetrics) IncNumberRetry() {
	if m == nil {
		return
	}
	m.numberRetries.Inc()
}

// IncNumberExhausted counts a hard number-generation failure.
func (m *EngineMetrics) IncNumberExhausted() {
	if m == nil {
		return
	}
	m.numberExhausted.Inc()
}
