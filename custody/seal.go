// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package custody

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/internal"
)

const (
	// sealMagic prefixes sealed key files.
	sealMagic = "ECVRFSK1"

	saltLength = 16

	// DefaultIterations is the PBKDF2-SHA256 iteration count used when none is configured.
	DefaultIterations = 600000

	sealHeaderLength = len(sealMagic) + 4 + saltLength + chacha20poly1305.NonceSizeX
)

var (
	// ErrUnseal is returned when a sealed key can not be opened, e.g. with the wrong passphrase.
	ErrUnseal = fmt.Errorf("%w: could not unseal key", ecvrf.ErrKeyDerivationFailed)

	errSealFormat = errors.New("invalid sealed key format")
)

// sealer encrypts key files under a passphrase: PBKDF2-SHA256 derives an XChaCha20-Poly1305 key from the
// passphrase and a random salt, and the key identifier is bound as associated data.
//
// Sealed layout: magic || iterations (uint32, big-endian) || salt || nonce || ciphertext.
type sealer struct {
	passphrase []byte
	iterations int
}

func newSealer(passphrase string, iterations int) *sealer {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	return &sealer{passphrase: []byte(passphrase), iterations: iterations}
}

func (s *sealer) key(salt []byte, iterations int) []byte {
	return pbkdf2.Key(s.passphrase, salt, iterations, chacha20poly1305.KeySize, sha256.New)
}

func (s *sealer) seal(id string, plaintext []byte) ([]byte, error) {
	header := make([]byte, sealHeaderLength)
	copy(header, sealMagic)
	binary.BigEndian.PutUint32(header[len(sealMagic):], uint32(s.iterations))

	salt := header[len(sealMagic)+4 : len(sealMagic)+4+saltLength]
	nonce := header[len(sealMagic)+4+saltLength:]

	if _, err := rand.Read(header[len(sealMagic)+4:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ecvrf.ErrKeyDerivationFailed, err)
	}

	key := s.key(salt, s.iterations)
	defer internal.Zeroize(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	return aead.Seal(header, nonce, plaintext, []byte(id)), nil
}

func (s *sealer) open(id string, sealed []byte) ([]byte, error) {
	if len(sealed) < sealHeaderLength+chacha20poly1305.Overhead || string(sealed[:len(sealMagic)]) != sealMagic {
		return nil, errSealFormat
	}

	iterations := int(binary.BigEndian.Uint32(sealed[len(sealMagic):]))
	if iterations <= 0 {
		return nil, errSealFormat
	}

	salt := sealed[len(sealMagic)+4 : len(sealMagic)+4+saltLength]
	nonce := sealed[len(sealMagic)+4+saltLength : sealHeaderLength]

	key := s.key(salt, iterations)
	defer internal.Zeroize(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, sealed[sealHeaderLength:], []byte(id))
	if err != nil {
		return nil, ErrUnseal
	}

	return plaintext, nil
}

func isSealed(contents []byte) bool {
	return len(contents) >= len(sealMagic) && string(contents[:len(sealMagic)]) == sealMagic
}
