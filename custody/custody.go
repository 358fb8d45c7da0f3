// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package custody keeps VRF secret keys behind a capability interface: callers name a key and get proofs and
// public keys, never the secret itself.
package custody

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bytemare/ecvrf"
)

// Backend identifiers, as used in configuration.
const (
	BackendSoftware = "software"
	BackendPKCS11   = "pkcs11"
	BackendCloudHSM = "cloudhsm"
	BackendKeyVault = "keyvault"

	maxKeyIDLength = 128
)

var (
	// ErrSigningUnavailable is returned by backends that can not reach their signing device.
	ErrSigningUnavailable = fmt.Errorf("%w: signing backend unavailable", ecvrf.ErrKeyDerivationFailed)

	// ErrKeyNotFound is returned for an unknown key identifier.
	ErrKeyNotFound = fmt.Errorf("%w: key not found", ecvrf.ErrKeyDerivationFailed)

	// ErrKeyExists is returned when generating a key under an identifier that is already in use.
	ErrKeyExists = errors.New("key already exists")

	// ErrInvalidKeyID is returned for an identifier that is empty, too long, starts with a dot, or holds characters
	// other than ASCII letters, digits, '_', '-', and '.'.
	ErrInvalidKeyID = errors.New("invalid key identifier")

	// ErrInvalidConfig is returned for an incomplete or unknown backend configuration.
	ErrInvalidConfig = errors.New("invalid custody configuration")

	keyIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)
)

// Signer holds secret keys and proves with them.
type Signer interface {
	// Backend returns the backend identifier.
	Backend() string

	// Generate creates a new key under id and returns its public key.
	Generate(ctx context.Context, id string) ([]byte, error)

	// Prove returns the proof of alpha under the key id.
	Prove(ctx context.Context, id string, alpha []byte) ([]byte, error)

	// PublicKey returns the public key of the key id.
	PublicKey(ctx context.Context, id string) ([]byte, error)

	// Delete removes the key id. Deleting an absent key is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the identifiers of the held keys, sorted.
	List(ctx context.Context) ([]string, error)

	// HealthCheck returns whether the backend is able to serve requests.
	HealthCheck(ctx context.Context) error

	// Close wipes the key material held in memory.
	Close()
}

// ValidateKeyID returns an error if id can not be used as a key identifier.
func ValidateKeyID(id string) error {
	if len(id) == 0 || len(id) > maxKeyIDLength || !keyIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidKeyID, id)
	}

	return nil
}

// Config selects and configures a backend.
type Config struct {
	Backend  string         `mapstructure:"backend"`
	Software SoftwareConfig `mapstructure:"software"`
	PKCS11   PKCS11Config   `mapstructure:"pkcs11"`
	CloudHSM CloudHSMConfig `mapstructure:"cloudhsm"`
	KeyVault KeyVaultConfig `mapstructure:"keyvault"`
}

// New returns the Signer of the configured backend, proving with scheme, and reporting every operation to the
// logger and metrics recorder set in options.
func New(cfg *Config, scheme ecvrf.Scheme, options ...Option) (Signer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", ErrInvalidConfig)
	}

	if scheme == nil {
		return nil, fmt.Errorf("%w: nil scheme", ErrInvalidConfig)
	}

	var (
		s   Signer
		err error
	)

	switch strings.ToLower(cfg.Backend) {
	case BackendSoftware, "":
		s, err = NewSoftware(&cfg.Software, scheme)
	case BackendPKCS11:
		s, err = NewPKCS11(&cfg.PKCS11)
	case BackendCloudHSM:
		s, err = NewCloudHSM(&cfg.CloudHSM)
	case BackendKeyVault:
		s, err = NewKeyVault(&cfg.KeyVault)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}

	if err != nil {
		return nil, err
	}

	return Instrument(s, scheme.Suite(), options...), nil
}
