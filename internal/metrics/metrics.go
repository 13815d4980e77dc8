package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Dispatch outcomes
const (
	DispatchSent    = "sent"
	DispatchFailed  = "failed"
	DispatchSkipped = "skipped"
)

// Run outcomes
const (
	RunSuccess  = "success"
	RunFailure  = "failure"
	RunRejected = "rejected"
)

// Metrics holds the pipeline collectors on a private registry.
// All methods are no-ops on a nil *Metrics so components can run without it.
type Metrics struct {
	Registry *prometheus.Registry

	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	posts       prometheus.Counter
	matches     *prometheus.CounterVec
	dispatches  *prometheus.CounterVec
}

// New creates and registers the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leads_runs_total",
			Help: "Scrape runs by outcome",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leads_run_duration_seconds",
			Help:    "Wall time of scrape runs",
			Buckets: []float64{5, 15, 30, 60, 120, 240, 480},
		}),
		posts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leads_posts_extracted_total",
			Help: "Posts read from the feed",
		}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leads_matches_total",
			Help: "Posts matched, by keyword",
		}, []string{"keyword"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leads_dispatches_total",
			Help: "Webhook deliveries by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.runs,
		m.runDuration,
		m.posts,
		m.matches,
		m.dispatches,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) RunFinished(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	if outcome != RunRejected {
		m.runDuration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) PostsExtracted(n int) {
	if m == nil {
		return
	}
	m.posts.Add(float64(n))
}

func (m *Metrics) MatchFound(keyword string) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(keyword).Inc()
}

func (m *Metrics) Dispatched(outcome string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome).Inc()
}
