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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bytemare/ecvrf"
	"github.com/bytemare/ecvrf/internal"
)

const (
	keyFileSuffix   = ".key"
	healthCheckFile = ".health_check"
	dirPermissions  = 0o700
	filePermissions = 0o600
)

// SoftwareConfig configures the file-backed software backend.
type SoftwareConfig struct {
	// Path is the directory holding the key files.
	Path string `mapstructure:"path"`

	// Passphrase, if set, seals key files at rest.
	Passphrase string `mapstructure:"passphrase"`

	// Iterations is the PBKDF2 iteration count for newly sealed keys. Defaults to DefaultIterations.
	Iterations int `mapstructure:"iterations"`
}

// Software keeps keys in files, one per identifier, in a directory only readable by its owner. Loaded keys are
// cached in memory until deleted.
type Software struct {
	dir    string
	scheme ecvrf.Scheme
	sealer *sealer

	mu    sync.RWMutex
	cache map[string]*ecvrf.SecretKey
}

// NewSoftware returns a software backend storing keys under cfg.Path, creating the directory if needed.
func NewSoftware(cfg *SoftwareConfig, scheme ecvrf.Scheme) (*Software, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: software key path is empty", ErrInvalidConfig)
	}

	if scheme == nil {
		return nil, fmt.Errorf("%w: nil scheme", ErrInvalidConfig)
	}

	if err := os.MkdirAll(cfg.Path, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating key directory: %w", err)
	}

	s := &Software{
		dir:    cfg.Path,
		scheme: scheme,
		cache:  make(map[string]*ecvrf.SecretKey),
	}

	if cfg.Passphrase != "" {
		s.sealer = newSealer(cfg.Passphrase, cfg.Iterations)
	}

	return s, nil
}

// Backend implements Signer.
func (s *Software) Backend() string {
	return BackendSoftware
}

func (s *Software) path(id string) string {
	return filepath.Join(s.dir, id+keyFileSuffix)
}

// Generate implements Signer.
func (s *Software) Generate(ctx context.Context, id string) ([]byte, error) {
	if err := check(ctx, id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[id]; ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyExists, id)
	}

	if _, err := os.Stat(s.path(id)); err == nil {
		return nil, fmt.Errorf("%w: %q", ErrKeyExists, id)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	sk, err := ecvrf.KeyGen()
	if err != nil {
		return nil, err
	}

	if err = s.store(id, sk); err != nil {
		sk.Zeroize()
		return nil, err
	}

	s.cache[id] = sk

	return sk.PublicKey(), nil
}

func (s *Software) store(id string, sk *ecvrf.SecretKey) error {
	contents := sk.Bytes()
	defer internal.Zeroize(contents)

	if s.sealer != nil {
		sealed, err := s.sealer.seal(id, contents)
		if err != nil {
			return err
		}

		return writeFileAtomic(s.dir, s.path(id), sealed)
	}

	return writeFileAtomic(s.dir, s.path(id), contents)
}

// load reads the key id from disk. The caller must hold the write lock.
func (s *Software) load(id string) (*ecvrf.SecretKey, error) {
	contents, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, id)
	}

	if err != nil {
		return nil, err
	}

	defer internal.Zeroize(contents)

	switch {
	case s.sealer != nil && isSealed(contents):
		plaintext, err := s.sealer.open(id, contents)
		if err != nil {
			return nil, err
		}

		defer internal.Zeroize(plaintext)

		return ecvrf.DecodeSecretKey(plaintext)
	case s.sealer == nil && !isSealed(contents):
		return ecvrf.DecodeSecretKey(contents)
	default:
		return nil, fmt.Errorf("%w: key %q is not stored as configured", ErrUnseal, id)
	}
}

// cached loads the key id into the cache if it is not there yet.
func (s *Software) cached(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[id]; ok {
		return nil
	}

	sk, err := s.load(id)
	if err != nil {
		return err
	}

	s.cache[id] = sk

	return nil
}

// withKey runs f on the key id with the read lock held, so that a concurrent Delete can not wipe it meanwhile.
func (s *Software) withKey(id string, f func(sk *ecvrf.SecretKey) error) error {
	if err := s.cached(id); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sk, ok := s.cache[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, id)
	}

	return f(sk)
}

// Prove implements Signer.
func (s *Software) Prove(ctx context.Context, id string, alpha []byte) (proof []byte, err error) {
	if err = check(ctx, id); err != nil {
		return nil, err
	}

	err = s.withKey(id, func(sk *ecvrf.SecretKey) error {
		proof, err = s.scheme.Prove(sk, alpha)
		return err
	})

	return proof, err
}

// PublicKey implements Signer.
func (s *Software) PublicKey(ctx context.Context, id string) (pk []byte, err error) {
	if err = check(ctx, id); err != nil {
		return nil, err
	}

	err = s.withKey(id, func(sk *ecvrf.SecretKey) error {
		pk = sk.PublicKey()
		return nil
	})

	return pk, err
}

// Delete implements Signer. The cached key is wiped.
func (s *Software) Delete(ctx context.Context, id string) error {
	if err := check(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sk, ok := s.cache[id]; ok {
		sk.Zeroize()
		delete(s.cache, id)
	}

	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// List implements Signer.
func (s *Software) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), keyFileSuffix) {
			continue
		}

		id := strings.TrimSuffix(e.Name(), keyFileSuffix)
		if ValidateKeyID(id) == nil {
			ids = append(ids, id)
		}
	}

	sort.Strings(ids)

	return ids, nil
}

// HealthCheck implements Signer by writing and removing a probe file in the key directory.
func (s *Software) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	probe := filepath.Join(s.dir, healthCheckFile)
	if err := os.WriteFile(probe, []byte("ok"), filePermissions); err != nil {
		return fmt.Errorf("key directory is not writable: %w", err)
	}

	return os.Remove(probe)
}

// Close wipes every cached key.
func (s *Software) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sk := range s.cache {
		sk.Zeroize()
		delete(s.cache, id)
	}
}

func check(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return ValidateKeyID(id)
}

// writeFileAtomic writes contents to a temporary file in dir, and renames it to path once synced.
func writeFileAtomic(dir, path string, contents []byte) error {
	f, err := os.CreateTemp(dir, ".tmp-")
	if err != nil {
		return err
	}

	tmp := f.Name()
	defer os.Remove(tmp)

	if err = f.Chmod(filePermissions); err != nil {
		f.Close()
		return err
	}

	if _, err = f.Write(contents); err != nil {
		f.Close()
		return err
	}

	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
