// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package internal handles all core ECVRF functionalities.
package internal

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

// Draft identifies the IETF CFRG VRF draft a Core implements.
type Draft byte

const (
	// Draft03 is draft-irtf-cfrg-vrf-03, with the 80-byte Gamma||c||s proof.
	Draft03 Draft = 3

	// Draft13 is the batch-compatible variant of draft-irtf-cfrg-vrf-13, with the 128-byte Gamma||U||V||s proof.
	Draft13 Draft = 13
)

const (
	// SuiteString is ECVRF-EDWARDS25519-SHA512-ELL2, shared by both drafts.
	SuiteString = 0x04

	domainHashToCurve = 0x01
	domainChallenge   = 0x02
	domainProofToHash = 0x03
	domainBackString  = 0x00

	// SeedLength is the length of a secret seed.
	SeedLength = 32

	// PointLength is the length of a compressed Edwards point.
	PointLength = 32

	// ScalarLength is the length of an encoded scalar.
	ScalarLength = 32

	// ChallengeLength is the length of the truncated challenge.
	ChallengeLength = 16

	// OutputLength is the length of the VRF output.
	OutputLength = 64

	proofLengthDraft03 = PointLength + ChallengeLength + ScalarLength
	proofLengthDraft13 = 3*PointLength + ScalarLength

	// h2cDST is the domain separation tag of the draft 13 hash-to-curve, the suite string appended.
	h2cDST = "ECVRF_edwards25519_XMD:SHA-512_ELL2_NU_\x04"
)

var (
	// ErrInvalidProofEncoding reports a proof of the wrong length or with a non-canonical component.
	ErrInvalidProofEncoding = errors.New("invalid proof encoding")

	// ErrInvalidPublicKey reports a non-canonical, off-curve, or small order public key.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrVerificationFailed reports a well-formed proof that does not verify.
	ErrVerificationFailed = errors.New("proof verification failed")

	errHashToCurve = errors.New("internal: hash to curve produced an invalid encoding")
)

// Protocol holds the operations in which the drafts differ. Everything else, from nonce generation to the
// multiscalar checks, is shared by Core.
type Protocol interface {
	// Draft returns the draft identifier.
	Draft() Draft

	// ProofLength returns the serialized proof length.
	ProofLength() int

	// HashToCurve maps the encoded public key and the message to a point of the prime order subgroup.
	HashToCurve(pk, alpha []byte) (*edwards25519.Point, error)

	// Challenge returns the truncated challenge over the public key and the four proof points.
	Challenge(pk []byte, h, gamma, u, v *edwards25519.Point) []byte

	// Encode serializes the proof.
	Encode(p *Proof) []byte

	// Decode parses and validates a serialized proof.
	Decode(proof []byte) (*Proof, error)

	// Check runs the draft's verification equation over a decoded proof.
	Check(y *edwards25519.Point, pk []byte, h *edwards25519.Point, p *Proof) bool

	// OutputTrailer returns the bytes appended after the cofactor-cleared Gamma when hashing the output.
	OutputTrailer() []byte
}

// A Core holds the protocol of a draft and runs the shared prove, verify, and proof-to-hash algorithms.
type Core struct {
	Protocol
}

// LoadConfiguration returns the core for the given draft.
func LoadConfiguration(d Draft) *Core {
	switch d {
	case Draft03:
		return &Core{Protocol: draft03{}}
	case Draft13:
		return &Core{Protocol: draft13{}}
	default:
		panic(fmt.Sprintf("invalid ECVRF draft: %d", d))
	}
}
