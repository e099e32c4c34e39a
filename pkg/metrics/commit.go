package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CommitMetrics records outcomes of checkout/check-in commits.
type CommitMetrics struct {
	duration   *prometheus.HistogramVec
	success    *prometheus.CounterVec
	failure    *prometheus.CounterVec
	outOfStock prometheus.Counter
}

// NewCommitMetrics registers the commit metrics on the provided registerer.
func NewCommitMetrics(reg prometheus.Registerer) *CommitMetrics {
	if reg == nil {
		return &CommitMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commit_duration_seconds",
		Help:    "Duration of stock commit operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commit_success",
		Help: "Successful stock commit operations.",
	}, []string{"op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commit_failure",
		Help: "Failed stock commit operations.",
	}, []string{"op"})
	outOfStock := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "commit_out_of_stock_total",
		Help: "Checkout commits rejected for insufficient stock.",
	})
	reg.MustRegister(duration, success, failure, outOfStock)
	return &CommitMetrics{
		duration:   duration,
		success:    success,
		failure:    failure,
		outOfStock: outOfStock,
	}
}

// Observe records the duration and outcome for the named operation.
func (c *CommitMetrics) Observe(op string, d time.Duration, err error) {
	if c == nil || c.duration == nil {
		return
	}
	label := normalizeLabel(op)
	c.duration.WithLabelValues(label).Observe(d.Seconds())
	if err != nil {
		c.failure.WithLabelValues(label).Inc()
		return
	}
	c.success.WithLabelValues(label).Inc()
}

// IncOutOfStock counts a checkout rejected for insufficient stock.
func (c *CommitMetrics) IncOutOfStock() {
	if c == nil || c.outOfStock == nil {
		return
	}
	c.outOfStock.Inc()
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
