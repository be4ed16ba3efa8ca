package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/philipp01105/patternlog/core"
)

// StatsCollector exports the Stats of a handler as Prometheus counters.
// Every metric carries a "handler" label with the name given to
// NewStatsCollector, so several handlers can share one registry.
type StatsCollector struct {
	name      string
	source    StatsProvider
	processed *prometheus.Desc
	blocked   *prometheus.Desc
	dropped   *prometheus.Desc
}

// NewStatsCollector returns a collector reading source on every scrape
func NewStatsCollector(name string, source StatsProvider) *StatsCollector {
	labels := prometheus.Labels{"handler": name}
	return &StatsCollector{
		name:   name,
		source: source,
		processed: prometheus.NewDesc("nlog_handler_processed_total",
			"Log entries written by the handler.", nil, labels),
		blocked: prometheus.NewDesc("nlog_handler_blocked_total",
			"Times a caller blocked on a full async queue and fell back to a synchronous write.", nil, labels),
		dropped: prometheus.NewDesc("nlog_handler_dropped_total",
			"Log entries dropped because the async queue was full.", []string{"level"}, labels),
	}
}

// Describe implements prometheus.Collector
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.processed
	ch <- c.blocked
	ch <- c.dropped
}

// Collect implements prometheus.Collector
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(snap.ProcessedTotal))
	ch <- prometheus.MustNewConstMetric(c.blocked, prometheus.CounterValue, float64(snap.BlockedTotal))
	for l := core.TraceLevel; l <= core.CriticalLevel; l++ {
		ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(snap.DroppedTotal[l]), l.String())
	}
}

var _ prometheus.Collector = (*StatsCollector)(nil)
