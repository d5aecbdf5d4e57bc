// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package metrics exposes step execution counters in the Prometheus format.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/hilseq/internal/model"
)

// Steps records step outcomes and durations. It implements runner.Observer.
type Steps struct {
	registry *prometheus.Registry
	inFlight prometheus.Gauge
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Steps {
	reg := prometheus.NewRegistry()
	s := &Steps{
		registry: reg,
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hilseq",
			Name:      "steps_in_flight",
			Help:      "Number of block actions currently executing.",
		}),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hilseq",
			Name:      "steps_total",
			Help:      "Executed steps by module and result.",
		}, []string{"module", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hilseq",
			Name:      "step_duration_seconds",
			Help:      "Duration of block actions.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"module"}),
	}
	reg.MustRegister(
		s.inFlight, s.total, s.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

func (s *Steps) StepStarted(context.Context, model.BlockRef) {
	s.inFlight.Inc()
}

func (s *Steps) StepFinished(_ context.Context, res model.StepResult) {
	s.inFlight.Dec()
	result := "fail"
	if res.Success {
		result = "pass"
	}
	s.total.WithLabelValues(res.Ref.Module, result).Inc()
	s.duration.WithLabelValues(res.Ref.Module).Observe(res.Duration.Seconds())
}

// Handler serves the registry.
func (s *Steps) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}
