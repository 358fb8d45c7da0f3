// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package custody

import (
	"context"
	"errors"
	"time"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/audit"
	"github.com/bytemare/ecvrf/metrics"
)

// Option configures the instrumentation of a Signer.
type Option func(*instrumented)

// WithLogger sets the audit logger. The default discards entries.
func WithLogger(l audit.Logger) Option {
	return func(i *instrumented) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder. The default discards observations.
func WithMetrics(r metrics.Recorder) Option {
	return func(i *instrumented) {
		if r != nil {
			i.metrics = r
		}
	}
}

type instrumented struct {
	Signer
	suite   string
	logger  audit.Logger
	metrics metrics.Recorder
}

// Instrument wraps s so that every operation is audited and counted.
func Instrument(s Signer, suite ecvrf.Suite, options ...Option) Signer {
	i := &instrumented{
		Signer:  s,
		suite:   suite.String(),
		logger:  audit.Nop{},
		metrics: metrics.Inert{},
	}

	for _, option := range options {
		option(i)
	}

	return i
}

func level(err error) audit.Level {
	switch {
	case err == nil:
		return audit.Info
	case errors.Is(err, ErrInvalidKeyID), errors.Is(err, ErrKeyExists), errors.Is(err, ErrKeyNotFound):
		return audit.Warning
	default:
		return audit.Error
	}
}

func (i *instrumented) observe(op audit.Operation, label, id string, start time.Time, err error) {
	i.metrics.ObserveCustody(i.Backend(), label, err)

	e := &audit.Entry{
		Time:      start,
		Level:     level(err),
		Operation: op,
		Suite:     i.suite,
		KeyID:     id,
		Duration:  time.Since(start),
		Success:   err == nil,
		Message:   i.Backend() + " " + label,
	}

	if err != nil {
		e.Message += ": " + err.Error()
	}

	i.logger.Log(e)
}

func (i *instrumented) Generate(ctx context.Context, id string) (pk []byte, err error) {
	defer func(start time.Time) { i.observe(audit.KeyGen, "generate", id, start, err) }(time.Now())
	return i.Signer.Generate(ctx, id)
}

func (i *instrumented) Prove(ctx context.Context, id string, alpha []byte) (proof []byte, err error) {
	defer func(start time.Time) { i.observe(audit.Prove, "prove", id, start, err) }(time.Now())
	return i.Signer.Prove(ctx, id, alpha)
}

func (i *instrumented) PublicKey(ctx context.Context, id string) (pk []byte, err error) {
	defer func(start time.Time) { i.observe(audit.KeyGet, "public_key", id, start, err) }(time.Now())
	return i.Signer.PublicKey(ctx, id)
}

func (i *instrumented) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { i.observe(audit.Custody, "delete", id, start, err) }(time.Now())
	return i.Signer.Delete(ctx, id)
}

func (i *instrumented) List(ctx context.Context) (ids []string, err error) {
	defer func(start time.Time) { i.observe(audit.Custody, "list", "", start, err) }(time.Now())
	return i.Signer.List(ctx)
}

func (i *instrumented) HealthCheck(ctx context.Context) (err error) {
	defer func(start time.Time) { i.observe(audit.Custody, "health_check", "", start, err) }(time.Now())
	return i.Signer.HealthCheck(ctx)
}
