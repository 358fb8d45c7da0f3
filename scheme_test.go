// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ecvrf_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/audit"
	"github.com/bytemare/ecvrf/metrics"
)

func TestAuditEntries(t *testing.T) {
	testAll(t, func(t *testing.T, c *configuration) {
		logger := &audit.Memory{}
		s := newScheme(t, c, ecvrf.WithLogger(logger))
		sk := newKey(t)

		pi, err := s.Prove(sk, []byte("audited"))
		require.NoError(t, err)

		_, err = s.Verify(sk.PublicKey(), pi, []byte("not audited"))
		require.Error(t, err)

		_, err = s.ProofToHash(pi[:10])
		require.Error(t, err)

		entries := logger.Entries()
		require.Len(t, entries, 3)

		assert.Equal(t, audit.Prove, entries[0].Operation)
		assert.Equal(t, audit.Info, entries[0].Level)
		assert.True(t, entries[0].Success)
		assert.Equal(t, c.name, entries[0].Suite)

		assert.Equal(t, audit.Verify, entries[1].Operation)
		assert.Equal(t, audit.Warning, entries[1].Level)
		assert.False(t, entries[1].Success)
		assert.Equal(t, ecvrf.ErrVerificationFailed.Error(), entries[1].Message)

		assert.Equal(t, audit.Hash, entries[2].Operation)
		assert.Equal(t, ecvrf.ErrInvalidProofEncoding.Error(), entries[2].Message)

		// No entry carries secret material.
		seed := sk.Seed()
		for _, e := range entries {
			assert.NotContains(t, e.String(), string(seed))
			assert.NotContains(t, strings.ToLower(e.String()), "seed")
		}
	})
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheus(reg)
	require.NoError(t, err)

	testAll(t, func(t *testing.T, c *configuration) {
		s := newScheme(t, c, ecvrf.WithMetrics(recorder), ecvrf.WithLogger(nil))
		sk := newKey(t)

		pi, err := s.Prove(sk, nil)
		require.NoError(t, err)

		_, err = s.Verify(sk.PublicKey(), pi, nil)
		require.NoError(t, err)

		_, err = s.Verify(sk.PublicKey(), pi, []byte{1})
		require.Error(t, err)

		_, err = s.Verify(make([]byte, 32), pi, nil)
		require.Error(t, err)
	})

	// prove/ok, verify/ok, verify/rejected, and verify/invalid, for each suite.
	assert.Equal(t, 8, testutil.CollectAndCount(reg, "ecvrf_operations_total"))
	assert.Equal(t, 4, testutil.CollectAndCount(reg, "ecvrf_operation_duration_seconds"))
}
