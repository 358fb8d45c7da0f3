// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package metrics records operation counts and latencies of VRF schemes and key custody backends.
package metrics

import "time"

// Results of an operation, used as the result label.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Recorder receives operation observations. Implementations must be safe for concurrent use.
type Recorder interface {
	// ObserveOperation records one VRF operation of the given suite, its result, and how long it took.
	ObserveOperation(op, suite, result string, elapsed time.Duration)

	// ObserveCustody records one key custody operation, and whether it failed.
	ObserveCustody(backend, op string, err error)
}

// Inert discards every observation.
type Inert struct{}

// ObserveOperation implements Recorder.
func (Inert) ObserveOperation(string, string, string, time.Duration) {}

// ObserveCustody implements Recorder.
func (Inert) ObserveCustody(string, string, error) {}
