package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CommandsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commands_processed_total",
			Help: "Total number of processed bot commands",
		},
		[]string{"command"},
	)

	WeatherLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_lookups_total",
			Help: "Total number of weather lookups by result status",
		},
		[]string{"status"},
	)

	ResponseTimeHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time_seconds",
			Help:    "Handler response time in seconds",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)
)

func Init() {
	prometheus.MustRegister(CommandsProcessed)
	prometheus.MustRegister(WeatherLookups)
	prometheus.MustRegister(ResponseTimeHistogram)
}

func StartMetricsServer(port string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics server running on %s", port)
		if err := http.ListenAndServe(port, nil); err != nil {
			log.Fatalf("failed to start metrics server: %v", err)
		}
	}()
}
