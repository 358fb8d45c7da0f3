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

// nonce derives k = SHA512(truncatedKey || H) mod L, as in RFC 8032.
func nonce(truncatedKey []byte, h *edwards25519.Point) *edwards25519.Scalar {
	var digest [64]byte

	hs := sha512.New()
	hs.Write(truncatedKey)
	hs.Write(h.Bytes())
	hs.Sum(digest[:0])
	hs.Reset()

	defer Zeroize(digest[:])

	k, err := edwards25519.NewScalar().SetUniformBytes(digest[:])
	if err != nil {
		panic(err)
	}

	return k
}

// commitments returns U = s*B - c*Y and V = s*H - c*Gamma. Each is a single variable-time multiscalar
// multiplication over public values.
func commitments(y, h, gamma *edwards25519.Point, c, s *edwards25519.Scalar) (u, v *edwards25519.Point) {
	negC := edwards25519.NewScalar().Negate(c)
	u = new(edwards25519.Point).VarTimeDoubleScalarBaseMult(negC, y, s)
	v = new(edwards25519.Point).VarTimeMultiScalarMult(
		[]*edwards25519.Scalar{s, negC},
		[]*edwards25519.Point{h, gamma},
	)

	return u, v
}

// GenerateProof returns the proof of alpha under the secret seed. pk must be the public key derived from seed.
// The expanded key, the secret scalar, and the nonce are wiped before returning.
func (c *Core) GenerateProof(seed, pk, alpha []byte) ([]byte, error) {
	az, x := expandSeed(seed)
	defer Zeroize(az[:])
	defer wipeScalar(x)

	h, err := c.HashToCurve(pk, alpha)
	if err != nil {
		return nil, err
	}

	k := nonce(az[32:], h)
	defer wipeScalar(k)

	gamma := new(edwards25519.Point).ScalarMult(x, h)
	u := new(edwards25519.Point).ScalarBaseMult(k)
	v := new(edwards25519.Point).ScalarMult(k, h)

	challenge := c.Challenge(pk, h, gamma, u, v)
	s := edwards25519.NewScalar().MultiplyAdd(challengeScalar(challenge), x, k)

	return c.Encode(&Proof{
		Gamma: gamma,
		C:     challenge,
		U:     u,
		V:     v,
		S:     s,
	}), nil
}

// VerifyProof verifies the proof of alpha under pk and returns the VRF output.
func (c *Core) VerifyProof(pk, proof, alpha []byte) ([]byte, error) {
	y, err := DecodePublicKey(pk)
	if err != nil {
		return nil, err
	}

	p, err := c.Decode(proof)
	if err != nil {
		return nil, err
	}

	h, err := c.HashToCurve(pk, alpha)
	if err != nil {
		return nil, err
	}

	if !c.Check(y, pk, h, p) {
		return nil, ErrVerificationFailed
	}

	return outputHash(p.Gamma, c.OutputTrailer()), nil
}

// ProofToHash returns the VRF output of a structurally valid proof. It does not verify the proof.
func (c *Core) ProofToHash(proof []byte) ([]byte, error) {
	p, err := c.Decode(proof)
	if err != nil {
		return nil, err
	}

	return outputHash(p.Gamma, c.OutputTrailer()), nil
}
