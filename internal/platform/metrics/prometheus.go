package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viniciustorricelli/pensell/internal/platform/logger"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics for the marketplace service.
type MetricsManager struct {
	Registry             *prometheus.Registry
	AdsCreatedTotal      prometheus.Counter
	BoostsActivatedTotal prometheus.Counter
	BoostsRejectedTotal  *prometheus.CounterVec
	MessagesSentTotal    prometheus.Counter
	FavoritesTotal       *prometheus.CounterVec
	APIErrorsTotal       *prometheus.CounterVec
	APILatency           *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	adsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "ads_created_total",
		Help:      "Total number of ads published.",
	})
	boostsActivatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "boosts_activated_total",
		Help:      "Total number of boost (top up) activations.",
	})
	boostsRejectedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "boosts_rejected_total",
		Help:      "Total number of rejected boost activations by reason.",
	}, []string{"reason"})
	messagesSentTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "messages_sent_total",
		Help:      "Total number of chat messages sent.",
	})
	favoritesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "favorites_total",
		Help:      "Total number of favorite additions and removals.",
	}, []string{"action"})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by route and error type.",
	}, []string{"route", "error_type"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		adsCreatedTotal,
		boostsActivatedTotal,
		boostsRejectedTotal,
		messagesSentTotal,
		favoritesTotal,
		apiErrorsTotal,
		apiLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:             registry,
		AdsCreatedTotal:      adsCreatedTotal,
		BoostsActivatedTotal: boostsActivatedTotal,
		BoostsRejectedTotal:  boostsRejectedTotal,
		MessagesSentTotal:    messagesSentTotal,
		FavoritesTotal:       favoritesTotal,
		APIErrorsTotal:       apiErrorsTotal,
		APILatency:           apiLatency,
	}
}

// StartMetricsServer starts an HTTP server exposing Prometheus metrics on /metrics.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
