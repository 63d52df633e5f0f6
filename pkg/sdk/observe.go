package shopsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/shopsearch/internal/metrics"
)

// Operation status labels.
const (
	statusOK          = "ok"
	statusInvalid     = "invalid"
	statusUnavailable = "unavailable"
	statusError       = "error"
)

type sdkMetrics struct {
	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	zeroResults prometheus.Counter
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK operations by type and outcome status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		zeroResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "sdk",
			Name:      "zero_results_total",
			Help:      "SDK searches that matched no product.",
		}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.zeroResults); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse lets several clients share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("shopsearch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("shopsearch: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// statusFor maps an operation error onto its status label.
func statusFor(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, ErrEmptyQuery):
		return statusInvalid
	case errors.Is(err, ErrResourceUnavailable):
		return statusUnavailable
	default:
		return statusError
	}
}

// observer logs and counts SDK operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, err error, attrs ...slog.Attr) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	status := statusFor(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs = append(attrs,
		slog.String("op", op),
		slog.String("status", status),
		slog.Duration("duration", dur),
	)
	level := slog.LevelDebug
	msg := "operation completed"
	switch status {
	case statusUnavailable:
		level, msg = slog.LevelWarn, "operation failed"
	case statusError:
		level, msg = slog.LevelError, "operation failed"
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	o.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// searched records a completed search; empty pages feed the zero-results counter.
func (o *observer) searched(query string, start time.Time, page *SearchPage, err error) {
	if o == nil {
		return
	}
	var attrs []slog.Attr
	if err == nil {
		attrs = []slog.Attr{
			slog.String("query", query),
			slog.Int("total", page.Total),
			slog.Bool("did_you_mean", page.DidYouMean != nil),
		}
		if page.Total == 0 && o.metrics != nil {
			o.metrics.zeroResults.Inc()
		}
	}
	o.observe("search", start, err, attrs...)
}
