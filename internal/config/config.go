// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads build settings from TOML configuration files
// into a flat key store consumed by the build pipeline.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Store is a flat lookup over the settings of a parsed configuration
// file. It implements the pipeline's configuration store contract.
type Store struct {
	values map[string]any
}

// New creates a [Store] from already parsed values.
func New(values map[string]any) *Store {
	if values == nil {
		values = map[string]any{}
	}

	return &Store{values: values}
}

// LoadTOML reads and parses the TOML file at path into a [Store].
func LoadTOML(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var values map[string]any

	err = toml.Unmarshal(data, &values)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return New(values), nil
}

// Get returns the raw value for the given setting name and whether it
// is present.
func (s *Store) Get(name string) (any, bool) {
	value, exists := s.values[name]
	return value, exists
}

// Override returns a copy of the store with the given settings
// replaced. The receiver is left unchanged.
func (s *Store) Override(overrides map[string]any) *Store {
	values := make(map[string]any, len(s.values)+len(overrides))

	for name, value := range s.values {
		values[name] = value
	}

	for name, value := range overrides {
		values[name] = value
	}

	return New(values)
}
