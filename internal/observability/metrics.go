package observability

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

var (
	registry *prometheus.Registry

	// LifeCycle objects constructed since process start. Tracks the ordinal counter of every registry.
	LifeCycleCreatedTotal prometheus.Counter

	// LifeCycle objects constructed but not yet closed. Watch for: steady growth (missing Close).
	LifeCycleLive prometheus.Gauge

	// Analytics events by origin ("canonical" or "substitute"). Substitutes outside tests mean a call site bypassed the seam.
	AnalyticsEventsTotal *prometheus.CounterVec

	// Launch hook invocations by delegate and result.
	AppLaunchesTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	LifeCycleCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lifecycleCreatedTotal",
			Help: "Total number of LifeCycle objects constructed",
		},
	)
	LifeCycleLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifecycleLive",
			Help: "Number of LifeCycle objects constructed and not yet closed",
		},
	)
	AnalyticsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyticsEventsTotal",
			Help: "Total number of tracked analytics events by origin instance",
		},
		[]string{"origin"},
	)
	AppLaunchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appLaunchesTotal",
			Help: "Total number of launch hook invocations by delegate and result",
		},
		[]string{"delegate", "result"},
	)

	registry.MustRegister(
		LifeCycleCreatedTotal, LifeCycleLive,
		AnalyticsEventsTotal,
		AppLaunchesTotal,
	)
}

// WriteText writes the registry in Prometheus text exposition format.
// Used at shutdown in place of a /metrics endpoint; this process does not listen on any port.
func WriteText(w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
