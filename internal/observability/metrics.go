package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ToggleOperations counts membership toggles by set and direction.
	ToggleOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_toggle_operations_total",
		Help: "Total number of membership toggles by set and resulting direction",
	}, []string{"set", "direction"})

	// CascadeDeletions counts completed user deletion cascades.
	CascadeDeletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glimpse_cascade_deletions_total",
		Help: "Total number of completed user deletion cascades",
	})

	// StoriesSwept counts expired stories purged by the sweeper.
	StoriesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glimpse_stories_swept_total",
		Help: "Total number of expired stories physically removed",
	})

	// StorySweepDuration records the latency of sweep runs.
	StorySweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "glimpse_story_sweep_duration_seconds",
		Help:    "Duration of story expiry sweep runs in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveSweep records the duration of a sweep run and the rows it purged.
func ObserveSweep(start time.Time, purged int64) {
	StorySweepDuration.Observe(time.Since(start).Seconds())
	StoriesSwept.Add(float64(purged))
}
