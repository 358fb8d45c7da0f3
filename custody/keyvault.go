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
	"net/url"
)

// KeyVaultConfig locates keys in a remote key vault.
type KeyVaultConfig struct {
	URL      string `mapstructure:"url"`
	TenantID string `mapstructure:"tenant_id"`
	ClientID string `mapstructure:"client_id"`
}

// NewKeyVault validates the configuration and returns a key vault Signer. No vault client is linked in:
// operations fail with ErrSigningUnavailable.
func NewKeyVault(cfg *KeyVaultConfig) (Signer, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("%w: key vault URL must be an https URL, got %q", ErrInvalidConfig, cfg.URL)
	}

	return &unavailable{backend: BackendKeyVault}, nil
}
