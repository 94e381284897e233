package metrics

import (
	"gigBoard/internal/gigstatus"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystem = "gigboard"

	gigStatusCount   = "gig_status_count"
	gigTransitions   = "gig_status_transitions_total"
	watcherPasses    = "status_watcher_passes_total"
	statusLabel      = "status"
	fromStatusLabel  = "from"
	toStatusLabel    = "to"
	passResultLabel  = "result"
	PassResultOK     = "ok"
	PassResultFailed = "failed"
)

var gigStatusCountMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: subsystem,
		Name:      gigStatusCount,
		Help:      "number of gigs in each computed status",
	},
	[]string{statusLabel},
)

var gigTransitionsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      gigTransitions,
		Help:      "number of observed status changes between watcher passes",
	},
	[]string{fromStatusLabel, toStatusLabel},
)

var watcherPassesMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      watcherPasses,
		Help:      "number of status watcher passes by result",
	},
	[]string{passResultLabel},
)

// UpdateGigStatusMetric выставляет gauge для каждого статуса, в том числе нулевые
func UpdateGigStatusMetric(counts map[gigstatus.Status]int) {
	for _, status := range gigstatus.All() {
		gigStatusCountMetric.With(prometheus.Labels{statusLabel: status.String()}).Set(float64(counts[status]))
	}
}

func IncreaseGigTransitionMetric(from, to gigstatus.Status) {
	gigTransitionsMetric.With(prometheus.Labels{
		fromStatusLabel: from.String(),
		toStatusLabel:   to.String(),
	}).Inc()
}

func IncreaseWatcherPassMetric(result string) {
	watcherPassesMetric.With(prometheus.Labels{passResultLabel: result}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(gigStatusCountMetric)
	prometheus.MustRegister(gigTransitionsMetric)
	prometheus.MustRegister(watcherPassesMetric)
}
