package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sleeperboard_loads_total",
		Help: "League snapshot loads by result",
	}, []string{"result"})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sleeperboard_load_duration_seconds",
		Help:    "Time to fetch all four league resources",
		Buckets: prometheus.DefBuckets,
	})

	refreshesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sleeperboard_refreshes_skipped_total",
		Help: "Refresh triggers ignored because a load was in flight",
	})

	relayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sleeperboard_relay_requests_total",
		Help: "Relay requests by response status code",
	}, []string{"code"})
)

func ObserveLoad(d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	loadsTotal.WithLabelValues(result).Inc()
	loadDuration.Observe(d.Seconds())
}

func RefreshSkipped() {
	refreshesSkipped.Inc()
}

func ObserveRelay(status int) {
	relayRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}
