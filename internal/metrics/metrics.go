package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UntisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "untis_requests_total",
		Help: "WebUntis JSON-RPC calls by method and outcome.",
	}, []string{"method", "outcome"})

	UntisRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "untis_request_duration_seconds",
		Help:    "WebUntis JSON-RPC call latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	TimetableBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_builds_total",
		Help: "Week builds by data source (cache or remote).",
	}, []string{"source"})

	SkippedLessons = promauto.NewCounter(prometheus.CounterOpts{
		Name: "timetable_skipped_lessons_total",
		Help: "Malformed lessons excluded from week builds.",
	})

	BotCallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_callbacks_total",
		Help: "Handled telegram callback queries by route.",
	}, []string{"route"})
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	SourceCache  = "cache"
	SourceRemote = "remote"
)

// ObserveUntis записывает результат одного вызова WebUntis
func ObserveUntis(method string, started time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	UntisRequests.WithLabelValues(method, outcome).Inc()
	UntisRequestDuration.WithLabelValues(method).Observe(time.Since(started).Seconds())
}
