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
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/internal"
)

// readSecretKey decodes the secret key from --sk, or from the file named by --sk-file.
func readSecretKey(cmd *cobra.Command) (*ecvrf.SecretKey, error) {
	var encoded string

	switch {
	case cmd.Flags().Changed("sk-file"):
		path, _ := cmd.Flags().GetString("sk-file")

		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		encoded = strings.TrimSpace(string(contents))
	case cmd.Flags().Changed("sk"):
		encoded, _ = cmd.Flags().GetString("sk")
	default:
		return nil, fmt.Errorf("one of --sk or --sk-file is required")
	}

	b, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("secret key: %w", err)
	}

	defer internal.Zeroize(b)

	return ecvrf.DecodeSecretKey(b)
}

func proveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Prove an input under a secret key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sk, err := readSecretKey(cmd)
			if err != nil {
				return err
			}
			defer sk.Zeroize()

			alpha, err := readAlpha(cmd)
			if err != nil {
				return err
			}

			s, err := a.scheme()
			if err != nil {
				return err
			}

			proof, err := s.Prove(sk, alpha)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(proof))

			return nil
		},
	}

	cmd.Flags().String("sk", "", "hex encoded 64-byte secret key")
	cmd.Flags().String("sk-file", "", "file holding the hex encoded secret key")
	alphaFlags(cmd)

	return cmd
}
