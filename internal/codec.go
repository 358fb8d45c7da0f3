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
	"errors"

	"filippo.io/edwards25519"
)

var (
	errPointLength       = errors.New("invalid point length")
	errPointNonCanonical = errors.New("non-canonical point encoding")
	errScalarLength      = errors.New("invalid scalar length")
)

// Proof holds the decoded components of a proof. C is only set for draft 03 proofs, U and V only for draft 13
// proofs.
type Proof struct {
	Gamma *edwards25519.Point
	C     []byte
	U     *edwards25519.Point
	V     *edwards25519.Point
	S     *edwards25519.Scalar
}

// DecodePoint decodes a compressed Edwards point and rejects any encoding that does not round-trip, i.e. y >= p or
// a negative zero x coordinate.
func DecodePoint(input []byte) (*edwards25519.Point, error) {
	if len(input) != PointLength {
		return nil, errPointLength
	}

	p, err := new(edwards25519.Point).SetBytes(input)
	if err != nil {
		return nil, err
	}

	if !ctEqual(p.Bytes(), input) {
		return nil, errPointNonCanonical
	}

	return p, nil
}

// DecodeScalar decodes a scalar and rejects values that are not fully reduced modulo L.
func DecodeScalar(input []byte) (*edwards25519.Scalar, error) {
	if len(input) != ScalarLength {
		return nil, errScalarLength
	}

	return edwards25519.NewScalar().SetCanonicalBytes(input)
}

// IsSmallOrder returns whether p is in the small order subgroup, including the identity.
func IsSmallOrder(p *edwards25519.Point) bool {
	return new(edwards25519.Point).MultByCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1
}

// DecodePublicKey returns the point of a public key that is canonically encoded and not of small order.
func DecodePublicKey(pk []byte) (*edwards25519.Point, error) {
	y, err := DecodePoint(pk)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}

	if IsSmallOrder(y) {
		return nil, ErrInvalidPublicKey
	}

	return y, nil
}

// challengeScalar zero-extends the truncated challenge to a scalar.
func challengeScalar(c []byte) *edwards25519.Scalar {
	var buf [ScalarLength]byte
	copy(buf[:], c)

	// Any 128-bit value is below L.
	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		panic(err)
	}

	return s
}

// expandSeed returns the RFC 8032 expansion of the seed and the clamped secret scalar. The caller owns both and
// must wipe them.
func expandSeed(seed []byte) (az [64]byte, x *edwards25519.Scalar) {
	az = sha512.Sum512(seed)

	x, err := edwards25519.NewScalar().SetBytesWithClamping(az[:32])
	if err != nil {
		panic(err)
	}

	return az, x
}

// DerivePublicKey returns the public key of the seed, wiping every intermediate secret.
func DerivePublicKey(seed []byte) []byte {
	az, x := expandSeed(seed)
	defer Zeroize(az[:])
	defer wipeScalar(x)

	return new(edwards25519.Point).ScalarBaseMult(x).Bytes()
}

// outputHash computes the VRF output over a validated Gamma.
func outputHash(gamma *edwards25519.Point, trailer []byte) []byte {
	cleared := new(edwards25519.Point).MultByCofactor(gamma)

	h := sha512.New()
	h.Write([]byte{SuiteString, domainProofToHash})
	h.Write(cleared.Bytes())
	h.Write(trailer)

	return h.Sum(nil)
}
