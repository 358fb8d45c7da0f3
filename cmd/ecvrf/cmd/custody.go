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

	"github.com/bytemare/ecvrf/custody"
)

// withSigner runs f with the configured custody backend, and wipes its cached keys afterwards.
func withSigner(a *app, f func(cmd *cobra.Command, s custody.Signer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.signer()
		if err != nil {
			return err
		}
		defer s.Close()

		return f(cmd, s, args)
	}
}

func custodyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custody",
		Short: "Manage keys held by the configured custody backend",
	}

	generate := &cobra.Command{
		Use:   "generate <id>",
		Short: "Generate a key and print its public key",
		Args:  cobra.ExactArgs(1),
		RunE: withSigner(a, func(cmd *cobra.Command, s custody.Signer, args []string) error {
			pk, err := s.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pk))

			return nil
		}),
	}

	prove := &cobra.Command{
		Use:   "prove <id>",
		Short: "Prove an input under a key",
		Args:  cobra.ExactArgs(1),
		RunE: withSigner(a, func(cmd *cobra.Command, s custody.Signer, args []string) error {
			alpha, err := readAlpha(cmd)
			if err != nil {
				return err
			}

			proof, err := s.Prove(cmd.Context(), args[0], alpha)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(proof))

			return nil
		}),
	}
	alphaFlags(prove)

	publicKey := &cobra.Command{
		Use:   "public-key <id>",
		Short: "Print the public key of a key",
		Args:  cobra.ExactArgs(1),
		RunE: withSigner(a, func(cmd *cobra.Command, s custody.Signer, args []string) error {
			pk, err := s.PublicKey(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(pk))

			return nil
		}),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the key identifiers",
		Args:  cobra.NoArgs,
		RunE: withSigner(a, func(cmd *cobra.Command, s custody.Signer, _ []string) error {
			ids, err := s.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}

			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: withSigner(a, func(cmd *cobra.Command, s custody.Signer, args []string) error {
			return s.Delete(cmd.Context(), args[0])
		}),
	}

	health := &cobra.Command{
		Use:   "health",
		Short: "Check that the backend can serve requests",
		Args:  cobra.NoArgs,
		RunE: withSigner(a, func(cmd *cobra.Command, s custody.Signer, _ []string) error {
			if err := s.HealthCheck(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", s.Backend())

			return nil
		}),
	}

	cmd.AddCommand(generate, prove, publicKey, list, del, health)

	return cmd
}
