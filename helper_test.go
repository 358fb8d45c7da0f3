// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ecvrf_test

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bytemare/ecvrf"
)

type configuration struct {
	name        string
	suite       ecvrf.Suite
	proofLength int
	// scalarOffset is the offset of s in a proof.
	scalarOffset int
}

var configurationTable = []configuration{
	{
		name:         "Draft03",
		suite:        ecvrf.Draft03,
		proofLength:  80,
		scalarOffset: 48,
	},
	{
		name:         "Draft13",
		suite:        ecvrf.Draft13,
		proofLength:  128,
		scalarOffset: 96,
	},
}

func testAll(t *testing.T, f func(*testing.T, *configuration)) {
	for _, test := range configurationTable {
		test := test
		t.Run(test.name, func(t *testing.T) {
			f(t, &test)
		})
	}
}

func randomBytes(length int) []byte {
	r := make([]byte, length)
	if _, err := rand.Read(r); err != nil {
		panic(fmt.Errorf("unexpected error in generating random bytes : %w", err))
	}

	return r
}

func newScheme(t *testing.T, c *configuration, options ...ecvrf.Option) ecvrf.Scheme {
	t.Helper()

	s, err := ecvrf.New(c.suite, options...)
	require.NoError(t, err)

	return s
}

func newKey(t *testing.T) *ecvrf.SecretKey {
	t.Helper()

	sk, err := ecvrf.KeyGen()
	require.NoError(t, err)

	return sk
}

// order is the little-endian encoding of the group order L.
const order = "edd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010"

// nonCanonicalIdentity encodes y = p + 1, which reduces to the identity.
const nonCanonicalIdentity = "eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"
