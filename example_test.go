// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package ecvrf_test

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/bytemare/ecvrf"
)

// Example_prove shows how a prover produces a proof and its output for a message.
func Example_prove() {
	seed, _ := hex.DecodeString("9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")

	sk, err := ecvrf.NewSecretKey(seed)
	if err != nil {
		panic(err)
	}
	defer sk.Zeroize()

	vrf, err := ecvrf.New(ecvrf.Draft03)
	if err != nil {
		panic(err)
	}

	proof, err := vrf.Prove(sk, nil)
	if err != nil {
		panic(err)
	}

	output, err := vrf.ProofToHash(proof)
	if err != nil {
		panic(err)
	}

	fmt.Println(hex.EncodeToString(output[:16]))
	// Output: 5b49b554d05c0cd5a5325376b3387de5
}

// Example_verify shows how a verifier checks a proof and obtains the output.
func Example_verify() {
	pk, _ := hex.DecodeString("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	proof, _ := hex.DecodeString("b6b4699f87d56126c9117a7da55bd0085246f4c56dbc95d20172612e9d38e8d7" +
		"ca65e573a126ed88d4e30a46f80a6668" +
		"54d675cf3ba81de0de043c3774f061560f55edc256a787afe701677c0f602900")

	vrf, err := ecvrf.New(ecvrf.Draft03)
	if err != nil {
		panic(err)
	}

	if _, err = vrf.Verify(pk, proof, nil); err != nil {
		panic(err)
	}

	_, err = vrf.Verify(pk, proof, []byte("another message"))
	fmt.Println(errors.Is(err, ecvrf.ErrVerificationFailed))
	// Output: true
}
