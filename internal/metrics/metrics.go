// Package metrics collects Prometheus metrics for ETL runs, to be pushed
// to a Pushgateway when one is configured.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Stage labels used by the failure counter.
const (
	StageExtract = "extract"
	StageLoad    = "load"
)

// Recorder tracks per-endpoint pipeline metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	extracted *prometheus.CounterVec
	loaded    *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// New creates a Recorder with all collectors registered on reg.
func New(reg *prometheus.Registry) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		extracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "greynoise_etl_records_extracted_total",
			Help: "Raw records successfully extracted, per endpoint.",
		}, []string{"endpoint"}),
		loaded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "greynoise_etl_records_loaded_total",
			Help: "Transformed records successfully persisted, per endpoint.",
		}, []string{"endpoint"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "greynoise_etl_stage_failures_total",
			Help: "Pipeline stage failures, per endpoint and stage.",
		}, []string{"endpoint", "stage"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name: "greynoise_etl_pipeline_duration_seconds",
			Help: "Wall-clock duration of each pipeline run.",
			// Runs sit under a second unless a rate-limit cooldown fires. Max of 204.8.
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"endpoint"}),
	}
}

func (r *Recorder) RecordExtracted(endpoint string, n int) {
	r.extracted.WithLabelValues(endpoint).Add(float64(n))
}

func (r *Recorder) RecordLoaded(endpoint string, n int) {
	r.loaded.WithLabelValues(endpoint).Add(float64(n))
}

func (r *Recorder) RecordStageFailure(endpoint, stage string, n int) {
	r.failures.WithLabelValues(endpoint, stage).Add(float64(n))
}

func (r *Recorder) ObservePipelineDuration(endpoint string, d time.Duration) {
	r.duration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// Push sends the collected metrics to a Pushgateway. A run is a batch job
// with nothing left to scrape after exit, so metrics leave by push or not
// at all.
func (r *Recorder) Push(url string) error {
	return push.New(url, "greynoise_etl").Gatherer(r.registry).Push()
}
