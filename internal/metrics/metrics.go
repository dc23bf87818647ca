package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prediction outcomes
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeClamped  = "clamped"
	OutcomeRejected = "rejected"
)

// Metrics holds the predictor's Prometheus collectors on a private registry
type Metrics struct {
	Registry     *prometheus.Registry
	Predictions  *prometheus.CounterVec
	Fits         *prometheus.CounterVec
	FitDuration  prometheus.Histogram
	TrainingRows prometheus.Gauge
	ModelR2      prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "score_predictor",
			Name:      "predictions_total",
			Help:      "Predictions served, by outcome.",
		}, []string{"outcome"}),
		Fits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "score_predictor",
			Name:      "fits_total",
			Help:      "Pipeline fits, by result.",
		}, []string{"result"}),
		FitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "score_predictor",
			Name:      "fit_duration_seconds",
			Help:      "Time spent loading the dataset and fitting the pipeline.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		TrainingRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "score_predictor",
			Name:      "training_rows",
			Help:      "Rows in the dataset the current model was fitted on.",
		}),
		ModelR2: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "score_predictor",
			Name:      "model_r2",
			Help:      "Coefficient of determination of the current model on its training data.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Predictions,
		m.Fits,
		m.FitDuration,
		m.TrainingRows,
		m.ModelR2,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
