// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ecvrf

import (
	"errors"
	"strings"
	"time"

	"github.com/bytemare/ecvrf/audit"
	"github.com/bytemare/ecvrf/internal"
	"github.com/bytemare/ecvrf/metrics"
)

type scheme struct {
	suite   Suite
	core    *internal.Core
	logger  audit.Logger
	metrics metrics.Recorder
}

func (s *scheme) Suite() Suite {
	return s.suite
}

func (s *scheme) Prove(sk *SecretKey, alpha []byte) (proof []byte, err error) {
	defer s.observe(audit.Prove, time.Now(), &err)

	if !sk.usable() {
		return nil, ErrInvalidSecretKey
	}

	return s.core.GenerateProof(sk.seed[:], sk.pk[:], alpha)
}

func (s *scheme) Verify(pk, proof, alpha []byte) (beta []byte, err error) {
	defer s.observe(audit.Verify, time.Now(), &err)

	return s.core.VerifyProof(pk, proof, alpha)
}

func (s *scheme) ProofToHash(proof []byte) (beta []byte, err error) {
	defer s.observe(audit.Hash, time.Now(), &err)

	return s.core.ProofToHash(proof)
}

// classify maps an operation error to its metrics result and audit level.
func classify(err error) (string, audit.Level) {
	switch {
	case err == nil:
		return metrics.ResultOK, audit.Info
	case errors.Is(err, ErrVerificationFailed):
		return metrics.ResultRejected, audit.Warning
	case errors.Is(err, ErrInvalidProofEncoding),
		errors.Is(err, ErrInvalidPublicKey),
		errors.Is(err, ErrInvalidSecretKey):
		return metrics.ResultInvalid, audit.Warning
	default:
		return metrics.ResultError, audit.Error
	}
}

// observe reports the outcome of an operation. Only the suite, the outcome, and the timing are reported.
func (s *scheme) observe(op audit.Operation, start time.Time, err *error) {
	elapsed := time.Since(start)
	result, level := classify(*err)

	s.metrics.ObserveOperation(strings.ToLower(op.String()), s.suite.String(), result, elapsed)

	e := &audit.Entry{
		Time:      start,
		Level:     level,
		Operation: op,
		Suite:     s.suite.String(),
		Duration:  elapsed,
		Success:   *err == nil,
	}

	if *err != nil {
		e.Message = (*err).Error()
	}

	s.logger.Log(e)
}
