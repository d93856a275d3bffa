package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"kwtaxonomy/internal/models"
)

// Pipeline outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	projectKeywordsDesc = prometheus.NewDesc(
		"kwtaxonomy_project_keywords",
		"Number of stored keyword records per project",
		[]string{"project", "name"},
		nil,
	)
)

// ProjectCounter reports stored record counts per project.
type ProjectCounter interface {
	ProjectKeywordCounts(ctx context.Context) ([]models.ProjectKeywordCount, error)
}

// ProjectCollector is a custom Prometheus collector that reads per-project
// record counts from the database on each scrape.
type ProjectCollector struct {
	source  ProjectCounter
	timeout time.Duration
}

// NewProjectCollector creates a collector backed by source.
func NewProjectCollector(source ProjectCounter) *ProjectCollector {
	return &ProjectCollector{source: source, timeout: 5 * time.Second}
}

// Describe sends the metric descriptor to the channel.
func (c *ProjectCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- projectKeywordsDesc
}

// Collect queries the database for record counts and emits them as gauges.
func (c *ProjectCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.source.ProjectKeywordCounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to collect project keyword metrics")
		return
	}
	for _, pc := range counts {
		ch <- prometheus.MustNewConstMetric(
			projectKeywordsDesc,
			prometheus.GaugeValue,
			float64(pc.Count),
			pc.ProjectID.String(),
			pc.Name,
		)
	}
}

// Recorder records pipeline and cache activity.
// A nil *Recorder drops every observation.
type Recorder struct {
	runs     *prometheus.CounterVec
	records  *prometheus.CounterVec
	duration prometheus.Histogram
	cache    *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kwtaxonomy_pipeline_runs_total",
			Help: "Pipeline runs by outcome",
		}, []string{"outcome"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kwtaxonomy_pipeline_records_total",
			Help: "Records seen by the pipeline, by stage (input or unique)",
		}, []string{"stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kwtaxonomy_pipeline_duration_seconds",
			Help:    "Pipeline run duration",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kwtaxonomy_cache_requests_total",
			Help: "Result cache lookups by result",
		}, []string{"result"}),
	}
	reg.MustRegister(r.runs, r.records, r.duration, r.cache)
	return r
}

// ObserveRun records one pipeline run.
func (r *Recorder) ObserveRun(outcome string, input, unique int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.records.WithLabelValues("input").Add(float64(input))
	if outcome == OutcomeOK {
		r.records.WithLabelValues("unique").Add(float64(unique))
	}
	r.duration.Observe(elapsed.Seconds())
}

// ObserveCache records one result cache lookup.
func (r *Recorder) ObserveCache(result string) {
	if r == nil {
		return
	}
	r.cache.WithLabelValues(result).Inc()
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the project collector and the default recorder with the
// default registry. Must be called once at startup; later calls return the
// same recorder.
func Init(source ProjectCounter) *Recorder {
	recorderOnce.Do(func() {
		recorder = NewRecorder(prometheus.DefaultRegisterer)
		if source != nil {
			prometheus.MustRegister(NewProjectCollector(source))
		}
	})
	return recorder
}
