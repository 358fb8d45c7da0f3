// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ecvrf"

// Prometheus is a Recorder exporting to a Prometheus registry.
type Prometheus struct {
	operations    *prometheus.CounterVec
	durations     *prometheus.HistogramVec
	custodyOps    *prometheus.CounterVec
	custodyErrors *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg. Use prometheus.DefaultRegisterer to expose
// them through promhttp.Handler.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Number of VRF operations, by operation, suite, and result.",
		}, []string{"operation", "suite", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of VRF operations.",
			Buckets:   prometheus.ExponentialBuckets(25e-6, 2, 12),
		}, []string{"operation", "suite"}),
		custodyOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "custody_operations_total",
			Help:      "Number of key custody operations, by backend and operation.",
		}, []string{"backend", "operation"}),
		custodyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "custody_errors_total",
			Help:      "Number of failed key custody operations, by backend and operation.",
		}, []string{"backend", "operation"}),
	}

	for _, c := range []prometheus.Collector{p.operations, p.durations, p.custodyOps, p.custodyErrors} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	return p, nil
}

// ObserveOperation implements Recorder.
func (p *Prometheus) ObserveOperation(op, suite, result string, elapsed time.Duration) {
	p.operations.WithLabelValues(op, suite, result).Inc()
	p.durations.WithLabelValues(op, suite).Observe(elapsed.Seconds())
}

// ObserveCustody implements Recorder.
func (p *Prometheus) ObserveCustody(backend, op string, err error) {
	p.custodyOps.WithLabelValues(backend, op).Inc()

	if err != nil {
		p.custodyErrors.WithLabelValues(backend, op).Inc()
	}
}
