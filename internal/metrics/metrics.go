package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	QuoteOutcomeQuoted    = "quoted"
	QuoteOutcomeEstimated = "estimated"
	QuoteOutcomeFailed    = "failed"

	OrderOutcomeCreated      = "created"
	OrderOutcomeRejected     = "rejected"
	OrderOutcomeStoreFailed  = "store_failed"
	OrderOutcomeNotifyFailed = "notify_failed"
)

// ShopMetrics groups the checkout counters exposed on /metrics.
type ShopMetrics struct {
	quotes        *prometheus.CounterVec
	quoteDuration *prometheus.HistogramVec
	orders        *prometheus.CounterVec
}

func NewShopMetrics(registerer prometheus.Registerer) *ShopMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ShopMetrics{
		quotes: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "praktico_shipping_quotes_total",
			Help: "Shipping quotes served, by courier and outcome",
		}, []string{"courier", "outcome"}),
		quoteDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "praktico_shipping_quote_duration_seconds",
			Help:    "Time spent producing a shipping quote",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"courier"}),
		orders: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "praktico_orders_total",
			Help: "Order submissions, by outcome",
		}, []string{"outcome"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

func (m *ShopMetrics) RecordQuote(courier, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(courier, outcome).Inc()
	m.quoteDuration.WithLabelValues(courier).Observe(duration.Seconds())
}

func (m *ShopMetrics) RecordOrder(outcome string) {
	if m == nil {
		return
	}
	m.orders.WithLabelValues(outcome).Inc()
}
