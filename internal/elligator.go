// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// montgomeryA is the A coefficient of curve25519, v^2 = u^3 + A*u^2 + u.
const montgomeryA = 486662

var (
	feZero = new(field.Element).Zero()
	feOne  = new(field.Element).One()
	feA    = new(field.Element).Mult32(feOne, montgomeryA)
	feNegA = new(field.Element).Negate(feA)

	// feSqrtNegAm2 is sqrt(-(A+2)), the non-negative root, scaling the rational map to edwards25519.
	feSqrtNegAm2 = func() *field.Element {
		u := new(field.Element).Mult32(feOne, montgomeryA+2)
		u.Negate(u)

		r, wasSquare := new(field.Element).SqrtRatio(u, feOne)
		if wasSquare != 1 {
			panic("internal: -(A+2) is not a square")
		}

		return r
	}()
)

// curve25519Rhs returns x^3 + A*x^2 + x.
func curve25519Rhs(x *field.Element) *field.Element {
	x2 := new(field.Element).Square(x)
	ax2 := new(field.Element).Multiply(feA, x2)
	gx := new(field.Element).Multiply(x2, x)
	gx.Add(gx, ax2)

	return gx.Add(gx, x)
}

// elligator2X returns the Elligator2 abscissa x1 = -A / (1 + 2*r^2), the denominator inverted with inv0 semantics.
func elligator2X(r *field.Element) *field.Element {
	den := new(field.Element).Square(r)
	den.Add(den, den)
	den.Add(den, feOne)
	den.Invert(den)

	x := new(field.Element).Multiply(feA, den)

	return x.Negate(x)
}

// decompressCleared decompresses the Edwards y coordinate with the given sign of x and clears the cofactor.
func decompressCleared(y *field.Element, xSign int) (*edwards25519.Point, error) {
	enc := y.Bytes()
	enc[31] |= byte(xSign << 7)

	p, err := new(edwards25519.Point).SetBytes(enc)
	if err != nil {
		return nil, errHashToCurve
	}

	return p.MultByCofactor(p), nil
}

// fromUniform is the ge25519_from_uniform map of libsodium. The most significant bit of r selects the sign of the
// Edwards x coordinate and is otherwise ignored.
func fromUniform(r []byte) (*edwards25519.Point, error) {
	var s [32]byte
	copy(s[:], r)

	xSign := int(s[31] >> 7)
	s[31] &= 0x7f

	fe, err := new(field.Element).SetBytes(s[:])
	if err != nil {
		return nil, errHashToCurve
	}

	x := elligator2X(fe)
	_, isSquare := new(field.Element).SqrtRatio(curve25519Rhs(x), feOne)

	// u = x1 if g(x1) is square, -x1 - A otherwise.
	negX := new(field.Element).Negate(x)
	x.Select(x, negX, isSquare)
	a := new(field.Element).Select(feZero, feA, isSquare)
	x.Subtract(x, a)

	// y = (u - 1) / (u + 1)
	num := new(field.Element).Subtract(x, feOne)
	den := new(field.Element).Add(x, feOne)
	den.Invert(den)
	y := num.Multiply(num, den)

	return decompressCleared(y, xSign)
}

// fromFieldElement is map_to_curve_elligator2_edwards25519 of RFC 9380 followed by cofactor clearing, i.e. the
// encode_to_curve tail of the edwards25519_XMD:SHA-512_ELL2_NU_ suite.
func fromFieldElement(u *field.Element) (*edwards25519.Point, error) {
	// x1 = -A / (1 + 2*u^2), or -A when the denominator is zero.
	x1 := elligator2X(u)
	x1.Select(feNegA, x1, x1.Equal(feZero))

	x2 := new(field.Element).Negate(x1)
	x2.Subtract(x2, feA)

	// SqrtRatio returns the non-negative root.
	y1, isSquare := new(field.Element).SqrtRatio(curve25519Rhs(x1), feOne)
	y2, _ := new(field.Element).SqrtRatio(curve25519Rhs(x2), feOne)

	// sgn0(y) is 1 on the x1 branch and 0 on the x2 branch.
	y1.Negate(y1)

	xm := new(field.Element).Select(x1, x2, isSquare)
	ym := new(field.Element).Select(y1, y2, isSquare)

	// Rational map: x = sqrt(-(A+2)) * xm / ym, y = (xm - 1) / (xm + 1), with a single inversion.
	xmPlusOne := new(field.Element).Add(xm, feOne)
	den := new(field.Element).Multiply(ym, xmPlusOne)
	exceptional := den.Equal(feZero)
	inv := new(field.Element).Invert(den)

	xe := new(field.Element).Multiply(feSqrtNegAm2, xm)
	xe.Multiply(xe, xmPlusOne)
	xe.Multiply(xe, inv)

	ye := new(field.Element).Subtract(xm, feOne)
	ye.Multiply(ye, ym)
	ye.Multiply(ye, inv)

	// The exceptional case maps to the identity.
	xe.Select(feZero, xe, exceptional)
	ye.Select(feOne, ye, exceptional)

	return decompressCleared(ye, xe.IsNegative())
}

// reduceWide returns OS2IP(b) mod p for a 48-byte big-endian b.
func reduceWide(b []byte) *field.Element {
	var lo, hi [32]byte

	for i := 0; i < 32; i++ {
		lo[i] = b[47-i]
	}

	for i := 0; i < 16; i++ {
		hi[i] = b[15-i]
	}

	top := uint32(lo[31] >> 7)
	lo[31] &= 0x7f

	l, _ := new(field.Element).SetBytes(lo[:])
	h, _ := new(field.Element).SetBytes(hi[:])

	// b = lo + top*2^255 + hi*2^256, where 2^255 = 19 and 2^256 = 38 mod p.
	h.Mult32(h, 38)
	l.Add(l, h)

	return l.Add(l, new(field.Element).Mult32(feOne, 19*top))
}
