package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	importsTotal        *prometheus.CounterVec
	importRows          *prometheus.CounterVec
	importDuration      prometheus.Histogram
	duplicateDetection  prometheus.Histogram
	duplicatesFound     *prometheus.CounterVec
	payeeResolutions    *prometheus.CounterVec
	patternsLearned     *prometheus.CounterVec
	ruleMatches         prometheus.Counter
	rollbacksTotal      prometheus.Counter
	lastImportRowsGauge *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the import collectors on reg. A nil reg
// uses the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		importsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imports_total",
				Help: "Total number of statement imports",
			},
			[]string{"source", "status"},
		),
		importRows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "import_rows_total",
				Help: "Imported rows by outcome",
			},
			[]string{"outcome"},
		),
		importDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "import_duration_milliseconds",
				Help:    "Import commit duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		duplicateDetection: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "duplicate_detection_duration_milliseconds",
				Help:    "Duplicate detection duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		duplicatesFound: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "duplicates_found_total",
				Help: "Duplicate candidates found by tier",
			},
			[]string{"tier"},
		),
		payeeResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payee_resolutions_total",
				Help: "Payee resolutions by confidence tier",
			},
			[]string{"match_type"},
		),
		patternsLearned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payee_patterns_learned_total",
				Help: "Payee patterns created or reinforced",
			},
			[]string{"action"},
		),
		ruleMatches: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rule_matches_total",
				Help: "Total number of transactions matched by a categorization rule",
			},
		),
		rollbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "import_rollbacks_total",
				Help: "Total number of rolled back imports",
			},
		),
		lastImportRowsGauge: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "last_import_rows",
				Help: "Row counts of the most recent import by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "import.completed":
		m.importsTotal.WithLabelValues(tags["source"], tags["status"]).Inc()
	case "import.row":
		if outcome := tags["outcome"]; outcome != "" {
			m.importRows.WithLabelValues(outcome).Inc()
		}
	case "import.rolled_back":
		m.rollbacksTotal.Inc()
	case "duplicate.found":
		m.duplicatesFound.WithLabelValues(tags["tier"]).Inc()
	case "payee.resolved":
		if matchType := tags["match_type"]; matchType != "" {
			m.payeeResolutions.WithLabelValues(matchType).Inc()
		}
	case "payee.pattern_learned":
		m.patternsLearned.WithLabelValues(tags["action"]).Inc()
	case "rule.matched":
		m.ruleMatches.Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "import.commit":
		m.importDuration.Observe(float64(duration.Milliseconds()))
	case "duplicate.detection":
		m.duplicateDetection.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "import.last_rows":
		if outcome := tags["outcome"]; outcome != "" {
			m.lastImportRowsGauge.WithLabelValues(outcome).Set(value)
		}
	}
}
