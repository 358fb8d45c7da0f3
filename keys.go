// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ecvrf

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"github.com/bytemare/ecvrf/internal"
)

// SecretKey is an Ed25519 secret key: the seed and its public key. Keys are shared by both suites.
type SecretKey struct {
	seed   [SeedLength]byte
	pk     [PublicKeyLength]byte
	zeroed bool
}

// KeyGen returns a secret key from a fresh random seed.
func KeyGen() (*SecretKey, error) {
	var seed [SeedLength]byte
	defer internal.Zeroize(seed[:])

	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivationFailed, err)
	}

	return NewSecretKey(seed[:])
}

// NewSecretKey deterministically derives the secret key of the 32-byte seed. The seed is copied.
func NewSecretKey(seed []byte) (*SecretKey, error) {
	if len(seed) != SeedLength {
		return nil, ErrInvalidSeed
	}

	sk := &SecretKey{}
	copy(sk.seed[:], seed)
	copy(sk.pk[:], internal.DerivePublicKey(seed))

	return sk, nil
}

// DecodeSecretKey decodes a 64-byte seed||pk secret key, and checks that the public key is the one of the seed.
func DecodeSecretKey(input []byte) (*SecretKey, error) {
	if len(input) != SecretKeyLength {
		return nil, ErrInvalidSecretKey
	}

	sk, err := NewSecretKey(input[:SeedLength])
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare(sk.pk[:], input[SeedLength:]) != 1 {
		sk.Zeroize()
		return nil, ErrInvalidSecretKey
	}

	return sk, nil
}

// PublicKey returns a copy of the encoded public key.
func (sk *SecretKey) PublicKey() []byte {
	return append([]byte(nil), sk.pk[:]...)
}

// Seed returns a copy of the secret seed. The caller is responsible for wiping it.
func (sk *SecretKey) Seed() []byte {
	return append([]byte(nil), sk.seed[:]...)
}

// Bytes returns a copy of the 64-byte seed||pk encoding. The caller is responsible for wiping it.
func (sk *SecretKey) Bytes() []byte {
	out := make([]byte, 0, SecretKeyLength)
	out = append(out, sk.seed[:]...)

	return append(out, sk.pk[:]...)
}

// Zeroize wipes the key. A zeroized key can not be used to prove.
func (sk *SecretKey) Zeroize() {
	internal.Zeroize(sk.seed[:])
	internal.Zeroize(sk.pk[:])
	sk.zeroed = true
}

// Zeroized returns whether sk is nil or has been wiped with Zeroize.
func (sk *SecretKey) Zeroized() bool {
	return !sk.usable()
}

func (sk *SecretKey) usable() bool {
	return sk != nil && !sk.zeroed
}
