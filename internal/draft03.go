// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
)

// draft03 implements draft-irtf-cfrg-vrf-03 as in libsodium's ietfdraft03.
type draft03 struct{}

func (draft03) Draft() Draft {
	return Draft03
}

func (draft03) ProofLength() int {
	return proofLengthDraft03
}

// HashToCurve is ECVRF_hash_to_curve_elligator2_25519: r = SHA512(suite || 0x01 || pk || alpha)[:32] with the top
// bit cleared, mapped with ge25519_from_uniform.
func (draft03) HashToCurve(pk, alpha []byte) (*edwards25519.Point, error) {
	hs := sha512.New()
	hs.Write([]byte{SuiteString, domainHashToCurve})
	hs.Write(pk)
	hs.Write(alpha)
	r := hs.Sum(nil)
	r[31] &= 0x7f

	return fromUniform(r[:32])
}

func (draft03) Challenge(_ []byte, h, gamma, u, v *edwards25519.Point) []byte {
	digest := sha512.Sum512(concatenate(
		[]byte{SuiteString, domainChallenge},
		h.Bytes(),
		gamma.Bytes(),
		u.Bytes(),
		v.Bytes(),
	))

	return digest[:ChallengeLength]
}

func (draft03) Encode(p *Proof) []byte {
	return concatenate(p.Gamma.Bytes(), p.C, p.S.Bytes())
}

func (draft03) Decode(proof []byte) (*Proof, error) {
	if len(proof) != proofLengthDraft03 {
		return nil, ErrInvalidProofEncoding
	}

	gamma, err := DecodePoint(proof[:PointLength])
	if err != nil {
		return nil, ErrInvalidProofEncoding
	}

	s, err := DecodeScalar(proof[PointLength+ChallengeLength:])
	if err != nil {
		return nil, ErrInvalidProofEncoding
	}

	c := make([]byte, ChallengeLength)
	copy(c, proof[PointLength:PointLength+ChallengeLength])

	return &Proof{Gamma: gamma, C: c, S: s}, nil
}

// Check recomputes U and V from the embedded challenge and compares the challenge they produce.
func (d draft03) Check(y *edwards25519.Point, pk []byte, h *edwards25519.Point, p *Proof) bool {
	u, v := commitments(y, h, p.Gamma, challengeScalar(p.C), p.S)

	return ctEqual(d.Challenge(pk, h, p.Gamma, u, v), p.C)
}

func (draft03) OutputTrailer() []byte {
	return nil
}
