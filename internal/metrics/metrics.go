package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Dataset loads that reached the source, by outcome.
	DatasetLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "candyboard_dataset_loads_total",
		Help: "Dataset source reads by result",
	}, []string{"result"})

	DatasetLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "candyboard_dataset_load_seconds",
		Help:    "Time spent reading the dataset source",
		Buckets: prometheus.DefBuckets,
	})

	DatasetRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "candyboard_dataset_rows",
		Help: "Number of candies in the loaded dataset",
	})

	// Engine requests served through the API, by operation and outcome.
	EngineRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "candyboard_engine_requests_total",
		Help: "Filter, compare and analyze requests by result",
	}, []string{"operation", "result"})

	FilterResultSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "candyboard_filter_result_size",
		Help:    "Number of candies returned by a filter",
		Buckets: []float64{0, 1, 3, 5, 10, 20, 40, 60, 85},
	})

	EventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "candyboard_events_published_total",
		Help: "Selection events published to the bus by result",
	}, []string{"result"})
)

func Init() {
	prometheus.MustRegister(
		DatasetLoads,
		DatasetLoadDuration,
		DatasetRows,
		EngineRequests,
		FilterResultSize,
		EventsPublished,
	)
}
