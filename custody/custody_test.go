// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package custody_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/audit"
	"github.com/bytemare/ecvrf/custody"
)

type mockSigner struct {
	mock.Mock
}

func (m *mockSigner) Backend() string {
	return "mock"
}

func (m *mockSigner) Generate(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).([]byte)

	return b, args.Error(1)
}

func (m *mockSigner) Prove(ctx context.Context, id string, alpha []byte) ([]byte, error) {
	args := m.Called(ctx, id, alpha)
	b, _ := args.Get(0).([]byte)

	return b, args.Error(1)
}

func (m *mockSigner) PublicKey(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).([]byte)

	return b, args.Error(1)
}

func (m *mockSigner) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSigner) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)

	return ids, args.Error(1)
}

func (m *mockSigner) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSigner) Close() {
	m.Called()
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveOperation(op, suite, result string, elapsed time.Duration) {
	m.Called(op, suite, result, elapsed)
}

func (m *mockRecorder) ObserveCustody(backend, op string, err error) {
	m.Called(backend, op, err)
}

func TestInstrument(t *testing.T) {
	ctx := context.Background()
	signer := &mockSigner{}
	recorder := &mockRecorder{}
	logger := &audit.Memory{}

	signer.On("Generate", ctx, "k").Return([]byte{1}, nil)
	signer.On("Prove", ctx, "k", []byte("m")).Return([]byte{2}, nil)
	signer.On("PublicKey", ctx, "missing").Return(nil, custody.ErrKeyNotFound)
	signer.On("HealthCheck", ctx).Return(errors.New("disk on fire"))
	signer.On("Close").Return()

	recorder.On("ObserveCustody", "mock", "generate", nil).Once()
	recorder.On("ObserveCustody", "mock", "prove", nil).Once()
	recorder.On("ObserveCustody", "mock", "public_key", custody.ErrKeyNotFound).Once()
	recorder.On("ObserveCustody", "mock", "health_check", mock.Anything).Once()

	s := custody.Instrument(signer, ecvrf.Draft03, custody.WithLogger(logger), custody.WithMetrics(recorder))

	pk, err := s.Generate(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, pk)

	proof, err := s.Prove(ctx, "k", []byte("m"))
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, proof)

	_, err = s.PublicKey(ctx, "missing")
	assert.ErrorIs(t, err, custody.ErrKeyNotFound)

	assert.Error(t, s.HealthCheck(ctx))

	s.Close()

	signer.AssertExpectations(t)
	recorder.AssertExpectations(t)

	entries := logger.Entries()
	require.Len(t, entries, 4)

	assert.Equal(t, audit.KeyGen, entries[0].Operation)
	assert.Equal(t, "k", entries[0].KeyID)
	assert.Equal(t, "Draft03", entries[0].Suite)
	assert.Equal(t, audit.Info, entries[0].Level)

	assert.Equal(t, audit.Prove, entries[1].Operation)
	assert.True(t, entries[1].Success)

	assert.Equal(t, audit.KeyGet, entries[2].Operation)
	assert.Equal(t, audit.Warning, entries[2].Level)
	assert.False(t, entries[2].Success)

	assert.Equal(t, audit.Custody, entries[3].Operation)
	assert.Equal(t, audit.Error, entries[3].Level)
	assert.Contains(t, entries[3].Message, "disk on fire")
}

func TestNew(t *testing.T) {
	scheme := newScheme(t)
	slot := uint(0)

	valid := []*custody.Config{
		{Software: custody.SoftwareConfig{Path: filepath.Join(t.TempDir(), "keys")}},
		{Backend: "PKCS11", PKCS11: custody.PKCS11Config{Library: "/usr/lib/softhsm/libsofthsm2.so", Slot: &slot}},
		{Backend: "cloudhsm", CloudHSM: custody.CloudHSMConfig{Provider: "aws", Region: "eu-west-1"}},
		{Backend: "keyvault", KeyVault: custody.KeyVaultConfig{URL: "https://vault.example.com"}},
	}

	for _, cfg := range valid {
		s, err := custody.New(cfg, scheme)
		require.NoError(t, err, cfg.Backend)
		require.NotNil(t, s)
	}

	invalid := []*custody.Config{
		nil,
		{Backend: "tpm"},
		{Backend: "software"},
		{Backend: "pkcs11", PKCS11: custody.PKCS11Config{Library: "/lib.so"}},
		{Backend: "pkcs11", PKCS11: custody.PKCS11Config{TokenLabel: "vrf"}},
		{Backend: "cloudhsm", CloudHSM: custody.CloudHSMConfig{Provider: "ibm", Region: "x"}},
		{Backend: "cloudhsm", CloudHSM: custody.CloudHSMConfig{Provider: "gcp"}},
		{Backend: "keyvault", KeyVault: custody.KeyVaultConfig{URL: "http://vault.example.com"}},
		{Backend: "keyvault"},
	}

	for _, cfg := range invalid {
		_, err := custody.New(cfg, scheme)
		assert.ErrorIs(t, err, custody.ErrInvalidConfig)
	}
}

func TestUnavailableBackends(t *testing.T) {
	ctx := context.Background()
	scheme := newScheme(t)

	configs := map[string]*custody.Config{
		custody.BackendPKCS11:   {Backend: "pkcs11", PKCS11: custody.PKCS11Config{Library: "/lib.so", TokenLabel: "vrf"}},
		custody.BackendCloudHSM: {Backend: "cloudhsm", CloudHSM: custody.CloudHSMConfig{Provider: "gcp", Region: "us"}},
		custody.BackendKeyVault: {Backend: "keyvault", KeyVault: custody.KeyVaultConfig{URL: "https://kv.example"}},
	}

	for backend, cfg := range configs {
		s, err := custody.New(cfg, scheme)
		require.NoError(t, err)
		assert.Equal(t, backend, s.Backend())

		_, err = s.Generate(ctx, "k")
		assert.ErrorIs(t, err, custody.ErrSigningUnavailable)
		assert.ErrorIs(t, err, ecvrf.ErrKeyDerivationFailed)

		_, err = s.Prove(ctx, "k", nil)
		assert.ErrorIs(t, err, ecvrf.ErrKeyDerivationFailed)

		_, err = s.PublicKey(ctx, "k")
		assert.ErrorIs(t, err, ecvrf.ErrKeyDerivationFailed)

		assert.ErrorIs(t, s.Delete(ctx, "k"), ecvrf.ErrKeyDerivationFailed)

		_, err = s.List(ctx)
		assert.ErrorIs(t, err, ecvrf.ErrKeyDerivationFailed)

		assert.ErrorIs(t, s.HealthCheck(ctx), custody.ErrSigningUnavailable)

		_, err = s.Prove(ctx, "../k", nil)
		assert.ErrorIs(t, err, custody.ErrInvalidKeyID)

		s.Close()
	}
}
