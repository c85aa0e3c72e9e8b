package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_submissions_total",
			Help: "Total number of resume submissions by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_submission_duration_seconds",
			Help:    "Duration of a resume submission from extraction to display",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"mode"},
	)

	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_session_transitions_total",
			Help: "Session state transitions",
		},
		[]string{"from", "to"},
	)

	BackendReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_backend_ready",
			Help: "1 when the analysis backend answered its last health probe",
		},
	)
)

const (
	outcomeDisplayed   = "displayed"
	outcomeRejected    = "rejected"
	outcomeFailed      = "failed"
	outcomeInterrupted = "interrupted"
)
