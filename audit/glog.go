// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package audit

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Format selects the rendering of entries written by Glog.
type Format byte

const (
	// Text renders entries with Entry.String.
	Text Format = iota

	// JSON renders entries with Entry.JSON.
	JSON
)

// ParseFormat returns the format named by s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unknown log format %q", s)
	}
}

// debugVerbosity is the glog -v level at which Debug entries are emitted.
const debugVerbosity = 2

// Glog writes entries at or above a minimum level through glog.
type Glog struct {
	minimum Level
	format  Format
}

// NewGlog returns a glog-backed Logger.
func NewGlog(minimum Level, format Format) *Glog {
	return &Glog{minimum: minimum, format: format}
}

// Log implements Logger.
func (g *Glog) Log(e *Entry) {
	if e.Level < g.minimum {
		return
	}

	line := e.String()

	if g.format == JSON {
		b, err := e.JSON()
		if err != nil {
			glog.Errorf("audit: could not encode entry: %v", err)
			return
		}

		line = string(b)
	}

	switch e.Level {
	case Debug:
		glog.V(debugVerbosity).Info(line)
	case Info:
		glog.Info(line)
	case Warning:
		glog.Warning(line)
	default:
		glog.Error(line)
	}
}
