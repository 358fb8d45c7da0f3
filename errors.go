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

	"github.com/bytemare/ecvrf/internal"
)

var (
	// ErrInvalidProofEncoding is returned for a proof of the wrong length, or with a non-canonical point or scalar.
	ErrInvalidProofEncoding = internal.ErrInvalidProofEncoding

	// ErrInvalidPublicKey is returned for a public key that is not canonically encoded, not on the curve, or of
	// small order.
	ErrInvalidPublicKey = internal.ErrInvalidPublicKey

	// ErrVerificationFailed is returned when a well-formed proof does not verify.
	ErrVerificationFailed = internal.ErrVerificationFailed

	// ErrKeyDerivationFailed is returned when secret key material could not be produced or reached.
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	// ErrInvalidSecretKey is returned for a secret key of the wrong length, whose public half does not match its
	// seed, or that has been zeroized.
	ErrInvalidSecretKey = errors.New("invalid secret key")

	// ErrInvalidSeed is returned for a seed that is not 32 bytes long.
	ErrInvalidSeed = errors.New("invalid seed length")

	// ErrInvalidSuite is returned for an unknown suite identifier.
	ErrInvalidSuite = errors.New("invalid ECVRF suite")
)
