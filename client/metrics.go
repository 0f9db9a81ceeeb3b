package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the collectors registered by [WithMetrics]. A nil *metrics
// records nothing.
type metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	downloaded prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reqkit",
			Name:      "requests_total",
			Help:      "Requests issued, by method and status class.",
		}, []string{"method", "class"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reqkit",
			Name:      "request_duration_seconds",
			Help:      "Time until response headers arrived.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		downloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reqkit",
			Name:      "download_bytes_total",
			Help:      "Bytes delivered in completed downloads.",
		}),
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.downloaded, err = register(reg, m.downloaded); err != nil {
		return nil, err
	}

	return m, nil
}

// register reuses an identical collector already registered with reg, so
// several clients may share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}

	return c, nil
}

// observe records a request; code is 0 when no response arrived.
func (m *metrics) observe(method string, code int, d time.Duration) {
	if m == nil {
		return
	}

	class := "error"
	if code != 0 {
		class = statusClass(code)
	}

	m.requests.WithLabelValues(method, class).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *metrics) addDownloaded(n int) {
	if m == nil {
		return
	}

	m.downloaded.Add(float64(n))
}
