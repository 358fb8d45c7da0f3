// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package audit provides the structured operation log injected into VRF schemes and key custody backends.
//
// Entries only ever carry public data: the suite, the key identifier, the outcome, and timings.
package audit

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Level is the severity of an Entry.
type Level byte

const (
	// Debug entries carry per-call diagnostics, e.g. why a proof was rejected.
	Debug Level = iota

	// Info entries record successful operations.
	Info

	// Warning entries record rejected inputs.
	Warning

	// Error entries record operational failures.
	Error
)

// String implements the Stringer() interface for the Level.
func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return ""
	}
}

// ParseLevel returns the level named by s, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return Debug, nil
	case "info", "":
		return Info, nil
	case "warn", "warning":
		return Warning, nil
	case "error":
		return Error, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// Operation identifies the logged operation.
type Operation byte

const (
	// Prove is proof generation.
	Prove Operation = iota + 1

	// Verify is proof verification.
	Verify

	// Hash is proof-to-hash output derivation.
	Hash

	// KeyGen is key pair generation.
	KeyGen

	// KeyGet is public key retrieval.
	KeyGet

	// Custody is any other key custody operation.
	Custody
)

// String implements the Stringer() interface for the Operation.
func (o Operation) String() string {
	switch o {
	case Prove:
		return "PROVE"
	case Verify:
		return "VERIFY"
	case Hash:
		return "HASH"
	case KeyGen:
		return "KEYGEN"
	case KeyGet:
		return "KEYGET"
	case Custody:
		return "CUSTODY"
	default:
		return ""
	}
}

// Entry is a single audit record.
type Entry struct {
	Time      time.Time
	Level     Level
	Operation Operation
	Suite     string
	KeyID     string
	Duration  time.Duration
	Success   bool
	Message   string
}

type jsonEntry struct {
	Time       string `json:"time"`
	Level      string `json:"level"`
	Operation  string `json:"operation"`
	Suite      string `json:"suite,omitempty"`
	KeyID      string `json:"key_id,omitempty"`
	DurationUS int64  `json:"duration_us"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
}

// JSON returns the entry as a single JSON object.
func (e *Entry) JSON() ([]byte, error) {
	return json.Marshal(&jsonEntry{
		Time:       e.Time.UTC().Format(time.RFC3339Nano),
		Level:      e.Level.String(),
		Operation:  e.Operation.String(),
		Suite:      e.Suite,
		KeyID:      e.KeyID,
		DurationUS: e.Duration.Microseconds(),
		Success:    e.Success,
		Message:    e.Message,
	})
}

// String returns the entry as a single text line.
func (e *Entry) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Level, e.Operation)

	if e.Suite != "" {
		fmt.Fprintf(&b, " suite=%s", e.Suite)
	}

	if e.KeyID != "" {
		fmt.Fprintf(&b, " key=%s", e.KeyID)
	}

	fmt.Fprintf(&b, " success=%t duration=%dus", e.Success, e.Duration.Microseconds())

	if e.Message != "" {
		fmt.Fprintf(&b, " msg=%q", e.Message)
	}

	return b.String()
}

// Logger receives audit entries. Implementations must be safe for concurrent use.
type Logger interface {
	Log(e *Entry)
}

// Nop discards every entry.
type Nop struct{}

// Log implements Logger.
func (Nop) Log(*Entry) {}

// Memory keeps entries in memory.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// Log implements Logger.
func (m *Memory) Log(e *Entry) {
	m.mu.Lock()
	m.entries = append(m.entries, *e)
	m.mu.Unlock()
}

// Entries returns a copy of the recorded entries.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Entry(nil), m.entries...)
}

// Reset drops the recorded entries.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()
}
