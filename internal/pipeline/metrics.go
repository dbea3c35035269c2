package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Swayam-a/agrovision-backend/internal/model"
)

// Metric label values for job status.
const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

var (
	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrovision_jobs_total",
			Help: "Total number of stress-map jobs processed.",
		},
		[]string{"mode", "status"},
	)

	jobDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agrovision_job_duration_seconds",
			Help:    "End-to-end job duration including cleanup, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	computeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agrovision_compute_duration_seconds",
			Help:    "Duration of the external computation invocation, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	activeJobs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "agrovision_active_jobs",
			Help: "Number of jobs currently running through the pipeline.",
		},
	)
)

func init() {
	prometheus.MustRegister(jobsTotal)
	prometheus.MustRegister(jobDuration)
	prometheus.MustRegister(computeDuration)
	prometheus.MustRegister(activeJobs)

	// Pre-initialize counter label combinations so they appear in /metrics
	// with value 0 from startup, rather than only after first observation.
	for _, mode := range []string{model.ModeLocal, model.ModeRemote} {
		jobsTotal.WithLabelValues(mode, statusCompleted)
		jobsTotal.WithLabelValues(mode, statusFailed)
	}
}
