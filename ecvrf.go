// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ecvrf

import (
	"fmt"
	"strings"

	"github.com/bytemare/ecvrf/audit"
	"github.com/bytemare/ecvrf/internal"
	"github.com/bytemare/ecvrf/metrics"
)

// Suite identifies the VRF draft to be used.
type Suite byte

const (
	// Draft03 is draft-irtf-cfrg-vrf-03, with 80-byte Gamma||c||s proofs.
	Draft03 Suite = iota + 1

	// Draft13 is the batch-compatible draft-irtf-cfrg-vrf-13, with 128-byte Gamma||U||V||s proofs.
	Draft13

	maxID

	sDraft03 = "Draft03"
	sDraft13 = "Draft13"

	// SeedLength is the length of a secret seed.
	SeedLength = internal.SeedLength

	// SecretKeyLength is the length of an encoded secret key, the seed followed by the public key.
	SecretKeyLength = SeedLength + PublicKeyLength

	// PublicKeyLength is the length of an encoded public key.
	PublicKeyLength = internal.PointLength

	// OutputLength is the length of the VRF output.
	OutputLength = internal.OutputLength
)

var drafts = [maxID]internal.Draft{
	Draft03: internal.Draft03,
	Draft13: internal.Draft13,
}

// Available returns whether the Suite is supported.
func (s Suite) Available() bool {
	return s > 0 && s < maxID
}

// ProofLength returns the length of a proof in the suite, or 0 for an unknown suite.
func (s Suite) ProofLength() int {
	if !s.Available() {
		return 0
	}

	return internal.LoadConfiguration(drafts[s]).ProofLength()
}

// String implements the Stringer() interface for the Suite.
func (s Suite) String() string {
	switch s {
	case Draft03:
		return sDraft03
	case Draft13:
		return sDraft13
	default:
		return ""
	}
}

// ParseSuite returns the suite named by name, e.g. "draft03", "Draft13", or "13".
func ParseSuite(name string) (Suite, error) {
	switch strings.ToLower(name) {
	case "draft03", "draft-03", "03", "3":
		return Draft03, nil
	case "draft13", "draft-13", "13":
		return Draft13, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSuite, name)
	}
}

// Scheme is a VRF of a given suite. Implementations are stateless and safe for concurrent use.
type Scheme interface {
	// Suite returns the suite identifier.
	Suite() Suite

	// Prove returns the proof of alpha under the secret key. Proofs are deterministic.
	Prove(sk *SecretKey, alpha []byte) ([]byte, error)

	// Verify checks the proof of alpha under the public key, and returns the VRF output on success.
	Verify(pk, proof, alpha []byte) ([]byte, error)

	// ProofToHash returns the VRF output of a structurally valid proof, without verifying it. Only use it on
	// proofs that have already been verified, or that you produced.
	ProofToHash(proof []byte) ([]byte, error)
}

// Option configures a Scheme.
type Option func(*scheme)

// WithLogger sets the audit logger of the scheme. The default discards entries.
func WithLogger(l audit.Logger) Option {
	return func(s *scheme) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder of the scheme. The default discards observations.
func WithMetrics(r metrics.Recorder) Option {
	return func(s *scheme) {
		if r != nil {
			s.metrics = r
		}
	}
}

// New returns the Scheme of the suite.
func New(suite Suite, options ...Option) (Scheme, error) {
	if !suite.Available() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSuite, suite)
	}

	s := &scheme{
		suite:   suite,
		core:    internal.LoadConfiguration(drafts[suite]),
		logger:  audit.Nop{},
		metrics: metrics.Inert{},
	}

	for _, option := range options {
		option(s)
	}

	return s, nil
}
