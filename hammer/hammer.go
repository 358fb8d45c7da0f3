// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package hammer measures VRF throughput by proving and verifying random messages at a target rate.
package hammer

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bytemare/ecvrf"
)

var errConfig = errors.New("invalid hammer configuration")

// Config tells the hammer how fast to go.
type Config struct {
	// Workers is the number of concurrent prove-and-verify loops.
	Workers int

	// QPS caps the number of operations started per second. Zero means no cap.
	QPS int

	// Count is the number of operations to run.
	Count int

	// MessageSize is the length of the random messages.
	MessageSize int

	// Duration, if set, stops the run after that long.
	Duration time.Duration
}

// Report holds the statistics of a run.
type Report struct {
	Proved   int
	Verified int
	Failed   int
	Elapsed  time.Duration
	Fastest  time.Duration
	Slowest  time.Duration
	Errors   map[string]int
	total    time.Duration
}

// Average returns the mean latency of a prove-and-verify operation.
func (r *Report) Average() time.Duration {
	if r.Verified == 0 {
		return 0
	}

	return r.total / time.Duration(r.Verified)
}

// QPS returns the achieved number of operations per second.
func (r *Report) QPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}

	return float64(r.Verified) / r.Elapsed.Seconds()
}

// String returns a human readable summary.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Proved:          %d\n", r.Proved)
	fmt.Fprintf(&b, "Verified:        %d\n", r.Verified)
	fmt.Fprintf(&b, "Failed:          %d\n", r.Failed)
	fmt.Fprintf(&b, "Elapsed:         %v\n", r.Elapsed)
	fmt.Fprintf(&b, "Average Latency: %v\n", r.Average())
	fmt.Fprintf(&b, "Fastest Latency: %v\n", r.Fastest)
	fmt.Fprintf(&b, "Slowest Latency: %v\n", r.Slowest)
	fmt.Fprintf(&b, "Total QPS:       %.2f\n", r.QPS())

	type errCount struct {
		err   string
		count int
	}

	counts := make([]errCount, 0, len(r.Errors))
	for err, count := range r.Errors {
		counts = append(counts, errCount{err: err, count: count})
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].count > counts[j].count })

	for _, c := range counts {
		fmt.Fprintf(&b, "  %d\t: %s\n", c.count, c.err)
	}

	return b.String()
}

// result is the outcome of one operation.
type result struct {
	proved     bool
	err        error
	start, end time.Time
}

func (c *Config) validate(sk *ecvrf.SecretKey) error {
	if sk.Zeroized() {
		return fmt.Errorf("%w: nil or zeroized key", ecvrf.ErrInvalidSecretKey)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", errConfig)
	}

	if c.Count <= 0 {
		return fmt.Errorf("%w: count must be positive", errConfig)
	}

	if c.QPS < 0 || c.MessageSize < 0 || c.Duration < 0 {
		return fmt.Errorf("%w: negative value", errConfig)
	}

	return nil
}

// genRequests emits count random messages at most qps per second.
func genRequests(ctx context.Context, qps, size, count int) <-chan []byte {
	requests := make(chan []byte)

	go func() {
		defer close(requests)

		limit := rate.Inf
		if qps > 0 {
			limit = rate.Limit(qps)
		}

		limiter := rate.NewLimiter(limit, qps+1)

		for i := 0; i < count; i++ {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			msg := make([]byte, size)
			if _, err := rand.Read(msg); err != nil {
				return
			}

			select {
			case requests <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return requests
}

// Run proves and verifies c.Count random messages under sk, and reports the statistics. It returns early, with
// the statistics so far, if ctx is done or c.Duration elapses.
func Run(ctx context.Context, scheme ecvrf.Scheme, sk *ecvrf.SecretKey, c Config) (*Report, error) {
	if err := c.validate(sk); err != nil {
		return nil, err
	}

	if c.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Duration)

		defer cancel()
	}

	pk := sk.PublicKey()
	requests := genRequests(ctx, c.QPS, c.MessageSize, c.Count)
	results := make(chan result)

	var wg sync.WaitGroup

	for w := 0; w < c.Workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for alpha := range requests {
				results <- op(scheme, sk, pk, alpha)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return collect(results), nil
}

func op(scheme ecvrf.Scheme, sk *ecvrf.SecretKey, pk, alpha []byte) result {
	r := result{start: time.Now()}

	proof, err := scheme.Prove(sk, alpha)
	if err == nil {
		r.proved = true
		_, err = scheme.Verify(pk, proof, alpha)
	}

	r.err = err
	r.end = time.Now()

	return r
}

func collect(results <-chan result) *Report {
	r := &Report{Errors: make(map[string]int)}
	start := time.Now()

	for res := range results {
		if res.proved {
			r.Proved++
		}

		if res.err != nil {
			r.Failed++
			r.Errors[res.err.Error()]++

			continue
		}

		r.Verified++
		l := res.end.Sub(res.start)
		r.total += l

		if r.Fastest == 0 || l < r.Fastest {
			r.Fastest = l
		}

		if l > r.Slowest {
			r.Slowest = l
		}
	}

	r.Elapsed = time.Since(start)

	return r
}
