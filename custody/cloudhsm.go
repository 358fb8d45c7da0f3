// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package custody

import (
	"fmt"
	"strings"
)

// CloudHSMConfig locates keys in a cloud provider's HSM service.
type CloudHSMConfig struct {
	Provider string `mapstructure:"provider"`
	Region   string `mapstructure:"region"`
	Cluster  string `mapstructure:"cluster"`
}

var cloudHSMProviders = map[string]bool{
	"aws":   true,
	"gcp":   true,
	"azure": true,
}

// NewCloudHSM validates the configuration and returns a cloud HSM Signer. No provider client is linked in:
// operations fail with ErrSigningUnavailable.
func NewCloudHSM(cfg *CloudHSMConfig) (Signer, error) {
	if !cloudHSMProviders[strings.ToLower(cfg.Provider)] {
		return nil, fmt.Errorf("%w: unknown cloud HSM provider %q", ErrInvalidConfig, cfg.Provider)
	}

	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: cloud HSM region is empty", ErrInvalidConfig)
	}

	return &unavailable{backend: BackendCloudHSM}, nil
}
