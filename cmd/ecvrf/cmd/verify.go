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
)

func verifyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a proof and print its output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pk, err := decodeHexFlag(cmd, "pk")
			if err != nil {
				return err
			}

			proof, err := decodeHexFlag(cmd, "proof")
			if err != nil {
				return err
			}

			alpha, err := readAlpha(cmd)
			if err != nil {
				return err
			}

			s, err := a.scheme()
			if err != nil {
				return err
			}

			beta, err := s.Verify(pk, proof, alpha)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(beta))

			return nil
		},
	}

	cmd.Flags().String("pk", "", "hex encoded public key")
	cmd.Flags().String("proof", "", "hex encoded proof")
	alphaFlags(cmd)

	_ = cmd.MarkFlagRequired("pk")
	_ = cmd.MarkFlagRequired("proof")

	return cmd
}

func hashCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the output of a proof, without verifying it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			proof, err := decodeHexFlag(cmd, "proof")
			if err != nil {
				return err
			}

			s, err := a.scheme()
			if err != nil {
				return err
			}

			beta, err := s.ProofToHash(proof)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(beta))

			return nil
		},
	}

	cmd.Flags().String("proof", "", "hex encoded proof")
	_ = cmd.MarkFlagRequired("proof")

	return cmd
}
