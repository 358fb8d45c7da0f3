// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"crypto"
	"crypto/sha512"

	"filippo.io/edwards25519"
	"github.com/cloudflare/circl/expander"
)

// h2cLength is L = ceil((ceil(log2(p)) + k) / 8) for edwards25519 and k = 128.
const h2cLength = 48

// draft13 implements the batch-compatible draft-irtf-cfrg-vrf-13, whose hash-to-curve, challenge, and output match
// the ECVRF-EDWARDS25519-SHA512-ELL2 suite of RFC 9381.
type draft13 struct{}

func (draft13) Draft() Draft {
	return Draft13
}

func (draft13) ProofLength() int {
	return proofLengthDraft13
}

// HashToCurve is encode_to_curve(pk || alpha) for edwards25519_XMD:SHA-512_ELL2_NU_.
func (draft13) HashToCurve(pk, alpha []byte) (*edwards25519.Point, error) {
	xmd := expander.NewExpanderMD(crypto.SHA512, []byte(h2cDST))
	uniform := xmd.Expand(concatenate(pk, alpha), h2cLength)

	return fromFieldElement(reduceWide(uniform))
}

func (draft13) Challenge(pk []byte, h, gamma, u, v *edwards25519.Point) []byte {
	digest := sha512.Sum512(concatenate(
		[]byte{SuiteString, domainChallenge},
		pk,
		h.Bytes(),
		gamma.Bytes(),
		u.Bytes(),
		v.Bytes(),
		[]byte{domainBackString},
	))

	return digest[:ChallengeLength]
}

func (draft13) Encode(p *Proof) []byte {
	return concatenate(p.Gamma.Bytes(), p.U.Bytes(), p.V.Bytes(), p.S.Bytes())
}

func (draft13) Decode(proof []byte) (*Proof, error) {
	if len(proof) != proofLengthDraft13 {
		return nil, ErrInvalidProofEncoding
	}

	points := make([]*edwards25519.Point, 3)

	for i := range points {
		p, err := DecodePoint(proof[i*PointLength : (i+1)*PointLength])
		if err != nil {
			return nil, ErrInvalidProofEncoding
		}

		points[i] = p
	}

	s, err := DecodeScalar(proof[3*PointLength:])
	if err != nil {
		return nil, ErrInvalidProofEncoding
	}

	return &Proof{Gamma: points[0], U: points[1], V: points[2], S: s}, nil
}

// Check derives the challenge from the embedded U and V, recomputes both commitments from it, and compares them
// with the embedded ones.
func (d draft13) Check(y *edwards25519.Point, pk []byte, h *edwards25519.Point, p *Proof) bool {
	c := challengeScalar(d.Challenge(pk, h, p.Gamma, p.U, p.V))
	u, v := commitments(y, h, p.Gamma, c, p.S)

	return ctEqual(concatenate(u.Bytes(), v.Bytes()), concatenate(p.U.Bytes(), p.V.Bytes()))
}

func (draft13) OutputTrailer() []byte {
	return []byte{domainBackString}
}
