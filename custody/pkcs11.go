// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package custody

import "fmt"

// PKCS11Config locates a key on a PKCS#11 token.
type PKCS11Config struct {
	Library    string `mapstructure:"library"`
	TokenLabel string `mapstructure:"token_label"`
	Slot       *uint  `mapstructure:"slot"`
	PIN        string `mapstructure:"pin"`
}

// NewPKCS11 validates the configuration and returns a PKCS#11 Signer. No driver is linked in: operations fail
// with ErrSigningUnavailable.
func NewPKCS11(cfg *PKCS11Config) (Signer, error) {
	if cfg.Library == "" {
		return nil, fmt.Errorf("%w: pkcs11 library path is empty", ErrInvalidConfig)
	}

	if cfg.TokenLabel == "" && cfg.Slot == nil {
		return nil, fmt.Errorf("%w: pkcs11 needs a token label or a slot", ErrInvalidConfig)
	}

	return &unavailable{backend: BackendPKCS11}, nil
}
