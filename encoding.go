// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ecvrf

import "github.com/bytemare/ecvrf/internal"

// ValidatePublicKey runs the checks a verifier applies to a public key: canonical encoding, on the curve, and not
// of small order.
func ValidatePublicKey(pk []byte) error {
	_, err := internal.DecodePublicKey(pk)
	return err
}

// ValidateProof returns whether the proof is structurally valid in the suite: its length, that all its points are
// canonically encoded, and that its scalar is reduced. It does not verify the proof.
func (s Suite) ValidateProof(proof []byte) error {
	if !s.Available() {
		return ErrInvalidSuite
	}

	_, err := internal.LoadConfiguration(drafts[s]).Decode(proof)

	return err
}
