// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// The ecvrf command generates keys, proves, verifies, and hashes ECVRF-EDWARDS25519-SHA512-ELL2 proofs, and
// manages keys held in custody.
package main

import (
	"os"

	"github.com/golang/glog"

	"github.com/bytemare/ecvrf/cmd/ecvrf/cmd"
)

func main() {
	err := cmd.New().Execute()
	glog.Flush()

	if err != nil {
		os.Exit(1)
	}
}
