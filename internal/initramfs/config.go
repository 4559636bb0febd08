// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"fmt"
	"os"
	"slices"
)

const defaultShebang = "#!/bin/sh"

// Store is the configuration source consumed by the pipeline. A
// lookup returns the raw value for a setting name and whether it is
// present at all.
type Store interface {
	Get(name string) (any, bool)
}

// Config is the validated, typed view of the settings the pipeline
// needs. It is assembled once by [NewConfig] and read-only afterwards.
type Config struct {
	// BuildDir is the build root the initramfs tree is staged in.
	BuildDir string

	// OutDir is the directory pack hooks write the final artifact to.
	OutDir string

	// Clean removes an existing build root before building.
	Clean bool

	// Shebang is the first line of the generated init script.
	Shebang string

	// Owner is the numeric id applied as user and group to every
	// path created under the build root.
	Owner int

	// Paths are the directories created under the build root. The
	// slice is deduplicated; its order carries no meaning.
	Paths []string

	// Dependencies are files copied into the build root at their
	// source paths, in the given order.
	Dependencies []string
}

// NewConfig assembles a [Config] from the given store. Absence of
// build_dir, out_dir or clean is a fatal configuration error. Shebang
// and owner fall back to "#!/bin/sh" and the current user id.
func NewConfig(store Store) (*Config, error) {
	cfg := &Config{
		Shebang: defaultShebang,
		Owner:   os.Getuid(),
	}

	var err error

	cfg.BuildDir, err = requiredString(store, "build_dir")
	if err != nil {
		return nil, err
	}

	cfg.OutDir, err = requiredString(store, "out_dir")
	if err != nil {
		return nil, err
	}

	cfg.Clean, err = requiredBool(store, "clean")
	if err != nil {
		return nil, err
	}

	if value, exists := store.Get("shebang"); exists {
		cfg.Shebang, err = asString("shebang", value)
		if err != nil {
			return nil, err
		}
	}

	if value, exists := store.Get("owner"); exists {
		cfg.Owner, err = asInt("owner", value)
		if err != nil {
			return nil, err
		}
	}

	if value, exists := store.Get("paths"); exists {
		paths, err := asStringSlice("paths", value)
		if err != nil {
			return nil, err
		}

		cfg.Paths = dedupe(paths)
	}

	if value, exists := store.Get("dependencies"); exists {
		cfg.Dependencies, err = asStringSlice("dependencies", value)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func requiredString(store Store, name string) (string, error) {
	value, exists := store.Get(name)
	if !exists {
		return "", &ConfigError{Name: name, Err: ErrSettingMissing}
	}

	return asString(name, value)
}

func requiredBool(store Store, name string) (bool, error) {
	value, exists := store.Get(name)
	if !exists {
		return false, &ConfigError{Name: name, Err: ErrSettingMissing}
	}

	typed, isBool := value.(bool)
	if !isBool {
		return false, invalidType(name, value)
	}

	return typed, nil
}

func asString(name string, value any) (string, error) {
	typed, isString := value.(string)
	if !isString {
		return "", invalidType(name, value)
	}

	return typed, nil
}

func asInt(name string, value any) (int, error) {
	switch typed := value.(type) {
	case int:
		return typed, nil
	case int64:
		return int(typed), nil
	default:
		return 0, invalidType(name, value)
	}
}

func asStringSlice(name string, value any) ([]string, error) {
	switch typed := value.(type) {
	case []string:
		return typed, nil
	case []any:
		result := make([]string, len(typed))

		for idx, element := range typed {
			converted, err := asString(name, element)
			if err != nil {
				return nil, err
			}

			result[idx] = converted
		}

		return result, nil
	default:
		return nil, invalidType(name, value)
	}
}

func invalidType(name string, value any) error {
	return &ConfigError{
		Name: name,
		Err:  fmt.Errorf("%w: unexpected type %T", ErrSettingInvalid, value),
	}
}

func dedupe(input []string) []string {
	result := make([]string, 0, len(input))

	for _, element := range input {
		if !slices.Contains(result, element) {
			result = append(result, element)
		}
	}

	return result
}
