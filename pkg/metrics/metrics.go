package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the inventory services report to. NopRecorder satisfies
// it for tests and tools.
type Recorder interface {
	RecordInsertion(outcome string)
	RecordBulkMutation(op string, succeeded, failed int)
	RecordQueryLatency(d time.Duration)
}

type Collector struct {
	insertions   *prometheus.CounterVec
	bulk         *prometheus.CounterVec
	queryLatency prometheus.Histogram
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		insertions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodflow_inventory_insertions_total",
			Help: "Insertion workflow outcomes by kind.",
		}, []string{"outcome"}),
		bulk: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "foodflow_inventory_bulk_mutations_total",
			Help: "Per-item results of bulk inventory operations.",
		}, []string{"op", "result"}),
		queryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "foodflow_inventory_query_seconds",
			Help:    "Latency of inventory list queries including sort and filter.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.insertions, c.bulk, c.queryLatency)
	return c
}

func (c *Collector) RecordInsertion(outcome string) {
	c.insertions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordBulkMutation(op string, succeeded, failed int) {
	c.bulk.WithLabelValues(op, "success").Add(float64(succeeded))
	c.bulk.WithLabelValues(op, "failure").Add(float64(failed))
}

func (c *Collector) RecordQueryLatency(d time.Duration) {
	c.queryLatency.Observe(d.Seconds())
}

// Handler exposes the gatherer on a fiber route.
func Handler(gatherer prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

type NopRecorder struct{}

func (NopRecorder) RecordInsertion(string) {}

func (NopRecorder) RecordBulkMutation(string, int, int) {}

func (NopRecorder) RecordQueryLatency(time.Duration) {}
