// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytemare/ecvrf/metrics"
)

func TestPrometheusOperations(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	p, err := metrics.NewPrometheus(reg)
	require.NoError(t, err)

	p.ObserveOperation("prove", "Draft03", metrics.ResultOK, time.Millisecond)
	p.ObserveOperation("prove", "Draft03", metrics.ResultOK, time.Millisecond)
	p.ObserveOperation("verify", "Draft13", metrics.ResultRejected, time.Millisecond)

	// Two label series, three increments.
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "ecvrf_operations_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "ecvrf_operation_duration_seconds"))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	var (
		found bool
		total float64
	)

	for _, mf := range mfs {
		if mf.GetName() != "ecvrf_operations_total" {
			continue
		}

		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()

			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}

			if labels["operation"] == "prove" && labels["suite"] == "Draft03" && labels["result"] == metrics.ResultOK {
				found = true

				assert.Equal(t, float64(2), m.GetCounter().GetValue())
			}
		}
	}

	assert.True(t, found)
	assert.Equal(t, float64(3), total)
}

func TestPrometheusCustody(t *testing.T) {
	reg := prometheus.NewRegistry()

	p, err := metrics.NewPrometheus(reg)
	require.NoError(t, err)

	p.ObserveCustody("software", "generate", nil)
	p.ObserveCustody("software", "prove", errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "ecvrf_custody_operations_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "ecvrf_custody_errors_total"))
}

func TestPrometheusDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := metrics.NewPrometheus(reg)
	require.NoError(t, err)

	_, err = metrics.NewPrometheus(reg)
	assert.Error(t, err)
}

func TestInert(t *testing.T) {
	var r metrics.Recorder = metrics.Inert{}

	assert.NotPanics(t, func() {
		r.ObserveOperation("prove", "Draft03", metrics.ResultOK, time.Second)
		r.ObserveCustody("software", "delete", errors.New("boom"))
	})
}
