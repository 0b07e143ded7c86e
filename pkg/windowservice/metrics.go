package windowservice

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"nickren/monowindow-go/pkg/window/utility"
)

type serviceMetrics struct {
	once sync.Once
	reg  prometheus.Registerer

	// requestsTotal counts finished requests by op and reply type.
	requestsTotal *prometheus.CounterVec
	// dequeOpsTotal counts deque pushes and pops, kind is push, dominance or stale.
	dequeOpsTotal *prometheus.CounterVec
	// scanDurationSeconds observes the time spent in the deque scan only.
	scanDurationSeconds *prometheus.HistogramVec
}

func newServiceMetrics(reg prometheus.Registerer) *serviceMetrics {
	return &serviceMetrics{
		reg: reg,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monowindow_requests_total",
				Help: "Window service requests by op and reply type.",
			},
			[]string{"op", "type"},
		),
		dequeOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monowindow_deque_ops_total",
				Help: "Monotonic deque operations by op and kind.",
			},
			[]string{"op", "kind"},
		),
		scanDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "monowindow_scan_duration_seconds",
				Help:    "Deque scan latency distributions.",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"op"},
		),
	}
}

// register runs once per server. A registerer that already holds the same
// collectors (two servers on the default registry) hands back the existing
// ones.
func (m *serviceMetrics) register() {
	m.once.Do(func() {
		if m.reg == nil {
			return
		}
		m.requestsTotal = registerOrReuse(m.reg, m.requestsTotal).(*prometheus.CounterVec)
		m.dequeOpsTotal = registerOrReuse(m.reg, m.dequeOpsTotal).(*prometheus.CounterVec)
		m.scanDurationSeconds = registerOrReuse(m.reg, m.scanDurationSeconds).(*prometheus.HistogramVec)
	})
}

func registerOrReuse(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

func (m *serviceMetrics) observe(op string, t ReplyType, stats utility.ScanStats) {
	m.register()
	m.requestsTotal.WithLabelValues(op, t.String()).Inc()
	if stats.Ops.Pushes == 0 {
		return
	}
	m.dequeOpsTotal.WithLabelValues(op, "push").Add(float64(stats.Ops.Pushes))
	m.dequeOpsTotal.WithLabelValues(op, "dominance").Add(float64(stats.Ops.DominancePops))
	m.dequeOpsTotal.WithLabelValues(op, "stale").Add(float64(stats.Ops.StalePops))
	m.scanDurationSeconds.WithLabelValues(op).Observe(stats.AlgorithmRuntime.Seconds())
}
