// Package metrics defines the custom Prometheus metrics of the job board API.
// Metric names, labels and help strings live here and nowhere else.
//
// All collectors register with the default registry through promauto, so they
// are served by /metrics as soon as the package is imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts sign-up and sign-in attempts.
// Labels:
//   - action: "signup", "signin" or "signout"
//   - result: "ok" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileSavesTotal counts profile saves.
// Label:
//   - complete: "true" when the saved profile passed the completeness check
var ProfileSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_saves_total",
		Help:      "Total number of profile saves, by resulting completeness.",
	},
	[]string{"complete"},
)

// AvatarUploadsTotal counts accepted avatar uploads.
var AvatarUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "avatar_uploads_total",
		Help:      "Total number of avatar images stored.",
	},
)

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobWritesTotal counts admin writes to postings.
// Label:
//   - op: "create", "update" or "delete"
var JobWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_writes_total",
		Help:      "Total number of job postings written by admins, by operation.",
	},
	[]string{"op"},
)

// ApplicationsSubmittedTotal counts accepted applications.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of job applications submitted.",
	},
)

// ── Job event metrics ─────────────────────────────────────────────────────────

// JobEventsProcessedTotal counts lifecycle events handled by the dispatcher.
// Labels:
//   - kind: event kind (e.g. "job.deleted")
//   - result: "ok" or "error"
var JobEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_events_processed_total",
		Help:      "Total number of job lifecycle events processed, by kind and result.",
	},
	[]string{"kind", "result"},
)

// JobEventsQueueDepth tracks events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var JobEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "job_events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// JobEventProcessingDuration measures a single event from dequeue to completion.
var JobEventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_event_processing_duration_seconds",
		Help:      "Duration of job event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
