// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package batch_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/batch"
)

func setup(t *testing.T, suite ecvrf.Suite, n int) (ecvrf.Scheme, *ecvrf.SecretKey, [][]byte) {
	t.Helper()

	scheme, err := ecvrf.New(suite)
	require.NoError(t, err)

	sk, err := ecvrf.KeyGen()
	require.NoError(t, err)

	alphas := make([][]byte, n)
	for i := range alphas {
		alphas[i] = []byte(fmt.Sprintf("input %d", i))
	}

	return scheme, sk, alphas
}

func TestProveAndVerify(t *testing.T) {
	for _, suite := range []ecvrf.Suite{ecvrf.Draft03, ecvrf.Draft13} {
		t.Run(suite.String(), func(t *testing.T) {
			ctx := context.Background()
			scheme, sk, alphas := setup(t, suite, 32)

			proofs, err := batch.Prove(ctx, scheme, sk, alphas, 4)
			require.NoError(t, err)
			require.Len(t, proofs, len(alphas))

			items := make([]batch.Item, len(proofs))
			for i := range proofs {
				items[i] = batch.Item{PublicKey: sk.PublicKey(), Proof: proofs[i], Alpha: alphas[i]}
			}

			// Corrupt one message and one proof.
			items[3].Alpha = []byte("other")
			items[7].Proof = items[7].Proof[:10]

			results, err := batch.Verify(ctx, scheme, items, 0)
			require.NoError(t, err)
			require.Len(t, results, len(items))
			assert.False(t, batch.AllValid(results))

			for i, r := range results {
				switch i {
				case 3:
					assert.ErrorIs(t, r.Err, ecvrf.ErrVerificationFailed)
				case 7:
					assert.ErrorIs(t, r.Err, ecvrf.ErrInvalidProofEncoding)
				default:
					require.NoError(t, r.Err, i)

					expected, err := scheme.ProofToHash(proofs[i])
					require.NoError(t, err)
					assert.Equal(t, expected, r.Output)
				}
			}

			// Order is preserved.
			single, err := scheme.Prove(sk, alphas[5])
			require.NoError(t, err)
			assert.Equal(t, single, proofs[5])
		})
	}
}

func TestProveError(t *testing.T) {
	scheme, sk, alphas := setup(t, ecvrf.Draft03, 8)
	sk.Zeroize()

	_, err := batch.Prove(context.Background(), scheme, sk, alphas, 2)
	assert.ErrorIs(t, err, ecvrf.ErrInvalidSecretKey)
}

func TestCanceled(t *testing.T) {
	scheme, sk, alphas := setup(t, ecvrf.Draft13, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := batch.Prove(ctx, scheme, sk, alphas, 2)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = batch.Verify(ctx, scheme, []batch.Item{{}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmpty(t *testing.T) {
	scheme, sk, _ := setup(t, ecvrf.Draft03, 0)

	proofs, err := batch.Prove(context.Background(), scheme, sk, nil, 1)
	require.NoError(t, err)
	assert.Empty(t, proofs)

	results, err := batch.Verify(context.Background(), scheme, nil, 1)
	require.NoError(t, err)
	assert.True(t, batch.AllValid(results))
}
