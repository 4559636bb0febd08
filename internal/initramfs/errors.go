// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"errors"
	"fmt"
)

var (
	// ErrSettingMissing is returned if a required setting is absent
	// from the configuration store.
	ErrSettingMissing = errors.New("required setting not found")

	// ErrSettingInvalid is returned if a setting has a value of an
	// unusable type.
	ErrSettingInvalid = errors.New("invalid setting value")

	// ErrNotRegular is returned if an archive source is not a regular
	// file.
	ErrNotRegular = errors.New("source is not a regular file")
)

// ConfigError wraps errors for a single configuration setting.
type ConfigError struct {
	Name string
	Err  error
}

// Error implements the [error] interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Name, e.Err)
}

// Is implements the [errors.Is] interface.
func (*ConfigError) Is(other error) bool {
	_, ok := other.(*ConfigError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// HookError wraps an error returned by a hook. It aborts the whole
// pipeline; no partial stage output is kept.
type HookError struct {
	Stage Stage
	Hook  string
	Err   error
}

// Error implements the [error] interface.
func (e *HookError) Error() string {
	return fmt.Sprintf("hook %s in stage %s: %v", e.Hook, e.Stage, e.Err)
}

// Is implements the [errors.Is] interface.
func (*HookError) Is(other error) bool {
	_, ok := other.(*HookError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *HookError) Unwrap() error {
	return e.Err
}
