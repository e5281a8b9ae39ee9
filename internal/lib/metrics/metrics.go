package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	votes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_planner_votes_total",
			Help: "Vote changes applied, by option kind and action",
		},
		[]string{"kind", "action"},
	)

	joins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_planner_joins_total",
			Help: "Join attempts on pending events by result",
		},
		[]string{"result"},
	)

	finalizations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_planner_finalizations_total",
			Help: "Committed finalizations by outcome and trigger",
		},
		[]string{"outcome", "trigger"},
	)

	moderation = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_planner_moderation_actions_total",
			Help: "Moderation actions by scope and action",
		},
		[]string{"scope", "action"},
	)

	deltaPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "study_planner_delta_publish_failures_total",
			Help: "Vote deltas that could not be handed to the realtime channel",
		},
	)

	suggestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "study_planner_suggest_duration_seconds",
			Help:    "Time spent computing free-time suggestions",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)
)

func Vote(kind, action string) {
	votes.WithLabelValues(kind, action).Inc()
}

func Join(result string) {
	joins.WithLabelValues(result).Inc()
}

func Finalization(outcome, trigger string) {
	finalizations.WithLabelValues(outcome, trigger).Inc()
}

func Moderation(scope, action string) {
	moderation.WithLabelValues(scope, action).Inc()
}

func DeltaPublishFailed() {
	deltaPublishFailures.Inc()
}

func ObserveSuggest(start time.Time) {
	suggestDuration.Observe(time.Since(start).Seconds())
}
