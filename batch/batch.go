// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package batch proves and verifies many VRF inputs concurrently, with a bound on the number of goroutines.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bytemare/ecvrf"
)

// Item is one proof to verify.
type Item struct {
	PublicKey []byte
	Proof     []byte
	Alpha     []byte
}

// Result is the outcome of verifying an Item: the VRF output, or why the proof was rejected.
type Result struct {
	Output []byte
	Err    error
}

func limit(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return n
}

// Verify verifies all items with at most workers concurrent verifications, and returns the results in the order
// of items. A rejected proof does not stop the batch: its error is in its Result. The returned error is only
// set if ctx is done before the batch completes.
func Verify(ctx context.Context, scheme ecvrf.Scheme, items []Item, workers int) ([]Result, error) {
	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(workers))

	for i := range items {
		if gctx.Err() != nil {
			break
		}

		i := i

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i].Output, results[i].Err = scheme.Verify(items[i].PublicKey, items[i].Proof, items[i].Alpha)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// AllValid returns whether every result holds a verified output.
func AllValid(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return false
		}
	}

	return true
}

// Prove returns the proofs of all alphas under sk, in order, with at most workers concurrent provers. The first
// error cancels the batch.
func Prove(ctx context.Context, scheme ecvrf.Scheme, sk *ecvrf.SecretKey, alphas [][]byte, workers int) ([][]byte, error) {
	proofs := make([][]byte, len(alphas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(workers))

	for i := range alphas {
		if gctx.Err() != nil {
			break
		}

		i := i

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			proof, err := scheme.Prove(sk, alphas[i])
			if err != nil {
				return err
			}

			proofs[i] = proof

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return proofs, nil
}
