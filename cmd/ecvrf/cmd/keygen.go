// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/internal"
)

func keygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair",
		Long: `Generate a key pair from a random seed, or from --seed. Prints the 64-byte secret key
(seed || public key) and the public key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				sk  *ecvrf.SecretKey
				err error
			)

			if cmd.Flags().Changed("seed") {
				seed, err := decodeHexFlag(cmd, "seed")
				if err != nil {
					return err
				}

				sk, err = ecvrf.NewSecretKey(seed)
				if err != nil {
					return err
				}
			} else if sk, err = ecvrf.KeyGen(); err != nil {
				return err
			}

			defer sk.Zeroize()

			encoded := sk.Bytes()
			defer internal.Zeroize(encoded)

			fmt.Fprintf(cmd.OutOrStdout(), "sk: %s\npk: %s\n", hex.EncodeToString(encoded), hex.EncodeToString(sk.PublicKey()))

			return nil
		},
	}

	cmd.Flags().String("seed", "", "hex encoded 32-byte seed")

	return cmd
}
