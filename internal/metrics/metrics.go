package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oralscan_runs_total",
		Help: "Total number of extraction runs, by outcome",
	}, []string{"outcome"})

	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oralscan_run_duration_seconds",
		Help:    "Duration of pipeline stages",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"stage"})

	FramesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oralscan_frames_scanned_total",
		Help: "Total number of frames scored by the rule-triggered track",
	})

	PriorityCandidatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oralscan_priority_candidates_total",
		Help: "Total number of frames that cleared the priority anomaly threshold",
	})

	UnreadableFramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oralscan_unreadable_frames_total",
		Help: "Total number of frame reads skipped due to decode failures",
	})

	MatchScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oralscan_baseline_match_score",
		Help:    "Accepted structural match scores against the baseline",
		Buckets: prometheus.LinearBuckets(0.5, 0.05, 11),
	})
)
