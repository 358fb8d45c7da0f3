// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package cmd implements the ecvrf command line.
package cmd

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/audit"
	"github.com/bytemare/ecvrf/config"
	"github.com/bytemare/ecvrf/custody"
	"github.com/bytemare/ecvrf/metrics"
)

var errAlpha = errors.New("set only one of --alpha and --message")

// app holds what the commands share once the configuration is loaded.
type app struct {
	v        *viper.Viper
	cfgFile  string
	cfg      *config.Config
	suite    ecvrf.Suite
	logger   audit.Logger
	registry *prometheus.Registry
	recorder metrics.Recorder
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	config.Setup(a.v)

	if err := a.v.BindPFlag("suite", cmd.Flags().Lookup("suite")); err != nil {
		return err
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)

		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", a.cfgFile, err)
		}
	}

	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}

	if a.suite, err = cfg.SuiteID(); err != nil {
		return err
	}

	if a.logger, err = cfg.Logger(); err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	if a.recorder, err = metrics.NewPrometheus(a.registry); err != nil {
		return err
	}

	a.cfg = cfg

	return nil
}

func (a *app) scheme() (ecvrf.Scheme, error) {
	return ecvrf.New(a.suite, ecvrf.WithLogger(a.logger), ecvrf.WithMetrics(a.recorder))
}

func (a *app) signer() (custody.Signer, error) {
	s, err := a.scheme()
	if err != nil {
		return nil, err
	}

	return custody.New(&a.cfg.Custody, s, custody.WithLogger(a.logger), custody.WithMetrics(a.recorder))
}

// New returns the root command with all subcommands attached.
func New() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "ecvrf",
		Short: "ECVRF-EDWARDS25519-SHA512-ELL2 proofs, draft 03 and draft 13",
		Long: `ecvrf generates keys, and proves, verifies, and hashes Verifiable Random Function proofs
byte-compatible with libsodium's ietfdraft03 and ietfdraft13 (batch-compatible) functions.
All binary inputs and outputs are hex encoded.`,
		PersistentPreRunE: a.load,
		SilenceUsage:      true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "configuration file (YAML, JSON, or TOML)")
	root.PersistentFlags().String("suite", "", "VRF suite: draft03 or draft13 (default from configuration)")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(
		keygenCommand(),
		proveCommand(a),
		verifyCommand(a),
		hashCommand(a),
		custodyCommand(a),
		hammerCommand(a),
	)

	return root
}

func decodeHexFlag(cmd *cobra.Command, name string) ([]byte, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}

	return b, nil
}

// alphaFlags registers the two ways of passing the VRF input.
func alphaFlags(cmd *cobra.Command) {
	cmd.Flags().String("alpha", "", "hex encoded input")
	cmd.Flags().String("message", "", "input as a raw string")
}

func readAlpha(cmd *cobra.Command) ([]byte, error) {
	if cmd.Flags().Changed("alpha") && cmd.Flags().Changed("message") {
		return nil, errAlpha
	}

	if cmd.Flags().Changed("message") {
		m, err := cmd.Flags().GetString("message")
		return []byte(m), err
	}

	return decodeHexFlag(cmd, "alpha")
}
