// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package proc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCommand is returned if Run is called without any arguments.
var ErrNoCommand = errors.New("no command given")

// CommandError wraps a nonzero exit of an external command. It carries
// the captured standard output and standard error of the command.
type CommandError struct {
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

// Error implements the [error] interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s: %v: %s",
		strings.Join(e.Args, " "), e.Err, strings.TrimSpace(e.Stderr))
}

// Is implements the [errors.Is] interface.
func (*CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CommandError) Unwrap() error {
	return e.Err
}
