// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package ecvrf implements the Elliptic Curve Verifiable Random Function ECVRF-EDWARDS25519-SHA512-ELL2, in the
// two versions used by Cardano: draft-irtf-cfrg-vrf-03 and the batch-compatible variant of
// draft-irtf-cfrg-vrf-13.
//
// Proofs and outputs are byte-compatible with libsodium's crypto_vrf_ietfdraft03 and crypto_vrf_ietfdraft13
// (batchcompat) functions. Keys are Ed25519 keys: the 32-byte seed is expanded with SHA-512 and clamped.
//
// A Scheme is selected at run time with New, and collaborators such as an audit logger or a metrics recorder are
// injected as options.
package ecvrf
