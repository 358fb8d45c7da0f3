// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package hammer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/hammer"
)

func setup(t *testing.T, suite ecvrf.Suite) (ecvrf.Scheme, *ecvrf.SecretKey) {
	t.Helper()

	scheme, err := ecvrf.New(suite)
	require.NoError(t, err)

	sk, err := ecvrf.KeyGen()
	require.NoError(t, err)

	return scheme, sk
}

func TestRun(t *testing.T) {
	for _, suite := range []ecvrf.Suite{ecvrf.Draft03, ecvrf.Draft13} {
		t.Run(suite.String(), func(t *testing.T) {
			scheme, sk := setup(t, suite)

			report, err := hammer.Run(context.Background(), scheme, sk, hammer.Config{
				Workers:     4,
				Count:       20,
				MessageSize: 64,
			})
			require.NoError(t, err)

			assert.Equal(t, 20, report.Proved)
			assert.Equal(t, 20, report.Verified)
			assert.Zero(t, report.Failed)
			assert.Empty(t, report.Errors)
			assert.Positive(t, report.Average())
			assert.LessOrEqual(t, report.Fastest, report.Slowest)
			assert.Contains(t, report.String(), "Verified:        20")
		})
	}
}

func TestRunRateLimited(t *testing.T) {
	scheme, sk := setup(t, ecvrf.Draft13)

	start := time.Now()
	report, err := hammer.Run(context.Background(), scheme, sk, hammer.Config{Workers: 2, QPS: 50, Count: 60})
	require.NoError(t, err)

	assert.Equal(t, 60, report.Verified)
	// A burst of QPS+1 followed by 50 per second.
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

// rejecting verifies nothing.
type rejecting struct {
	ecvrf.Scheme
}

func (rejecting) Verify(_, _, _ []byte) ([]byte, error) {
	return nil, ecvrf.ErrVerificationFailed
}

func TestRunFailures(t *testing.T) {
	scheme, sk := setup(t, ecvrf.Draft03)

	report, err := hammer.Run(context.Background(), rejecting{scheme}, sk, hammer.Config{Workers: 1, Count: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Proved)
	assert.Zero(t, report.Verified)
	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, 3, report.Errors[ecvrf.ErrVerificationFailed.Error()])
}

func TestRunUnusableKey(t *testing.T) {
	scheme, sk := setup(t, ecvrf.Draft03)
	c := hammer.Config{Workers: 1, Count: 3}

	_, err := hammer.Run(context.Background(), scheme, nil, c)
	assert.ErrorIs(t, err, ecvrf.ErrInvalidSecretKey)

	sk.Zeroize()

	_, err = hammer.Run(context.Background(), scheme, sk, c)
	assert.ErrorIs(t, err, ecvrf.ErrInvalidSecretKey)
}

func TestRunDuration(t *testing.T) {
	scheme, sk := setup(t, ecvrf.Draft03)

	report, err := hammer.Run(context.Background(), scheme, sk, hammer.Config{
		Workers:  1,
		QPS:      1,
		Count:    1000,
		Duration: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Less(t, report.Verified, 1000)
}

func TestRunInvalidConfig(t *testing.T) {
	scheme, sk := setup(t, ecvrf.Draft03)

	for _, c := range []hammer.Config{
		{Count: 1},
		{Workers: 1},
		{Workers: 1, Count: 1, QPS: -1},
	} {
		_, err := hammer.Run(context.Background(), scheme, sk, c)
		assert.Error(t, err)
	}
}
