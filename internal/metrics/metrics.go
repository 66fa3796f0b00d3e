// Package metrics собирает метрики обращений клиента к API. CLI живет
// недолго, поэтому метрики не отдаются по HTTP, а пишутся в textfile для
// node_exporter.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "boothadmin"

type Metrics struct {
	registry *prometheus.Registry

	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	MutationsTotal     *prometheus.CounterVec
	CollectionSize     *prometheus.GaugeVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of requests to the photobooth API",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Photobooth API latency distribution",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "endpoint"},
		),
		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Create, update and delete actions by result",
			},
			[]string{"kind", "action", "result"},
		),
		CollectionSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "collection_records",
				Help:      "Number of records in the last loaded collection",
			},
			[]string{"kind"},
		),
	}
}

// ObserveRequest учитывает один HTTP запрос. status 0 - ответ не получен.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, d time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.APIRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	m.APIRequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

func (m *Metrics) ObserveMutation(kind, action string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.MutationsTotal.WithLabelValues(kind, action, result).Inc()
}

func (m *Metrics) SetCollectionSize(kind string, n int) {
	m.CollectionSize.WithLabelValues(kind).Set(float64(n))
}

// Registry возвращает реестр метрик (для тестов и экспорта).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile пишет метрики в файл в текстовом формате. Пустой путь -
// экспорт выключен.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
