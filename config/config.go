// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package config loads the settings of the ecvrf tool from a file and ECVRF_ prefixed environment variables.
//
// Nothing in here is read on a cryptographic path: the suite, the logger, and the custody backend are resolved
// once and injected.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/audit"
	"github.com/bytemare/ecvrf/custody"
)

// EnvPrefix prefixes the environment variables overriding configuration keys, e.g. ECVRF_CUSTODY_SOFTWARE_PATH
// for custody.software.path.
const EnvPrefix = "ECVRF"

// Log configures the audit log.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Metrics configures metrics exposition.
type Metrics struct {
	// Listen is the address serving /metrics, if set.
	Listen string `mapstructure:"listen"`
}

// Config holds all settings.
type Config struct {
	Suite   string         `mapstructure:"suite"`
	Log     Log            `mapstructure:"log"`
	Metrics Metrics        `mapstructure:"metrics"`
	Custody custody.Config `mapstructure:"custody"`
}

var defaults = map[string]interface{}{
	"suite":                       "draft03",
	"log.level":                   "info",
	"log.format":                  "text",
	"metrics.listen":              "",
	"custody.backend":             custody.BackendSoftware,
	"custody.software.path":       "keys",
	"custody.software.passphrase": "",
	"custody.software.iterations": custody.DefaultIterations,
	"custody.pkcs11.library":      "",
	"custody.pkcs11.token_label":  "",
	"custody.pkcs11.pin":          "",
	"custody.cloudhsm.provider":   "",
	"custody.cloudhsm.region":     "",
	"custody.cloudhsm.cluster":    "",
	"custody.keyvault.url":        "",
	"custody.keyvault.tenant_id":  "",
	"custody.keyvault.client_id":  "",
}

// Setup registers the defaults and the environment bindings on v. Every key has a default, so that any of them
// can be overridden from the environment.
func Setup(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration file at path, if not empty, applies environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	Setup(v)

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that all named values are known.
func (c *Config) Validate() error {
	if _, err := c.SuiteID(); err != nil {
		return err
	}

	if _, err := audit.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	if _, err := audit.ParseFormat(c.Log.Format); err != nil {
		return err
	}

	switch strings.ToLower(c.Custody.Backend) {
	case custody.BackendSoftware, custody.BackendPKCS11, custody.BackendCloudHSM, custody.BackendKeyVault, "":
		return nil
	default:
		return fmt.Errorf("%w: unknown backend %q", custody.ErrInvalidConfig, c.Custody.Backend)
	}
}

// SuiteID returns the configured suite.
func (c *Config) SuiteID() (ecvrf.Suite, error) {
	return ecvrf.ParseSuite(c.Suite)
}

// Logger returns the glog-backed audit logger configured by the log section.
func (c *Config) Logger() (audit.Logger, error) {
	level, err := audit.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	format, err := audit.ParseFormat(c.Log.Format)
	if err != nil {
		return nil, err
	}

	return audit.NewGlog(level, format), nil
}
