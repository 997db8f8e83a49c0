package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics counts ingestion outcomes and page volume. Labels stay
// low-cardinality: result values only, never user or printer names.
type JobMetrics struct {
	jobsIngested  *prometheus.CounterVec
	pagesIngested prometheus.Counter
}

var (
	jobMetricsOnce sync.Once
	jobMetrics     *JobMetrics
)

// Jobs returns the process-wide job metrics, registering them on first use.
func Jobs(cfg Config) *JobMetrics {
	jobMetricsOnce.Do(func() {
		jobMetrics = newJobMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return jobMetrics
}

// ResetJobMetricsForTest clears the singleton between test registries.
func ResetJobMetricsForTest() {
	jobMetricsOnce = sync.Once{}
	jobMetrics = nil
}

func newJobMetrics(registerer prometheus.Registerer, cfg Config) *JobMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "printer-management"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	jobsIngested := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "pms_print_jobs_ingested_total",
			Help:        "Total print-job reports received, by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // accepted | invalid | failed
	)

	pagesIngested := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:        "pms_print_pages_ingested_total",
			Help:        "Total pages across accepted print-job reports.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(jobsIngested, pagesIngested)

	return &JobMetrics{
		jobsIngested:  jobsIngested,
		pagesIngested: pagesIngested,
	}
}

// IncIngested counts one ingestion attempt by outcome.
func (m *JobMetrics) IncIngested(result string) {
	if m == nil {
		return
	}
	m.jobsIngested.WithLabelValues(result).Inc()
}

// AddPages counts pages from an accepted report.
func (m *JobMetrics) AddPages(pages int) {
	if m == nil || pages <= 0 {
		return
	}
	m.pagesIngested.Add(float64(pages))
}
