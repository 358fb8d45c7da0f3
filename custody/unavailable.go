// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package custody

import (
	"context"
	"fmt"
)

// unavailable is a backend whose configuration has been validated but which has no signing device to talk to.
// Every operation fails with ErrSigningUnavailable.
type unavailable struct {
	backend string
}

func (u *unavailable) err() error {
	return fmt.Errorf("%s: %w", u.backend, ErrSigningUnavailable)
}

func (u *unavailable) Backend() string {
	return u.backend
}

func (u *unavailable) Generate(_ context.Context, id string) ([]byte, error) {
	if err := ValidateKeyID(id); err != nil {
		return nil, err
	}

	return nil, u.err()
}

func (u *unavailable) Prove(_ context.Context, id string, _ []byte) ([]byte, error) {
	if err := ValidateKeyID(id); err != nil {
		return nil, err
	}

	return nil, u.err()
}

func (u *unavailable) PublicKey(_ context.Context, id string) ([]byte, error) {
	if err := ValidateKeyID(id); err != nil {
		return nil, err
	}

	return nil, u.err()
}

func (u *unavailable) Delete(_ context.Context, id string) error {
	if err := ValidateKeyID(id); err != nil {
		return err
	}

	return u.err()
}

func (u *unavailable) List(context.Context) ([]string, error) {
	return nil, u.err()
}

func (u *unavailable) HealthCheck(context.Context) error {
	return u.err()
}

func (u *unavailable) Close() {}
