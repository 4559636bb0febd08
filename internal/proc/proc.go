// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package proc runs external commands synchronously with captured
// output. A nonzero exit code is fatal and carries the captured
// streams.
package proc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// Result holds the captured output of a completed command.
type Result struct {
	Stdout string
	Stderr string
}

// Runner runs external commands.
type Runner struct {
	log *slog.Logger
}

// NewRunner creates a new [Runner] logging through the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{log: logger}
}

// Run executes the command given by args and blocks until it
// terminates. Standard output and standard error are captured and
// returned. A nonzero exit code is returned as a [*CommandError]
// carrying both captured streams.
func (r *Runner) Run(ctx context.Context, args ...string) (*Result, error) {
	if len(args) == 0 {
		return nil, ErrNoCommand
	}

	r.log.Debug("Running command", slog.Any("args", args))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	err = cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}

	var outBuf, errBuf bytes.Buffer

	group := errgroup.Group{}
	group.Go(func() error {
		_, err := io.Copy(&outBuf, stdout)
		return err
	})
	group.Go(func() error {
		_, err := io.Copy(&errBuf, stderr)
		return err
	})

	copyErr := group.Wait()
	waitErr := cmd.Wait()

	result := &Result{
		Stdout: outBuf.String(),
		Stderr: errBuf.String(),
	}

	if waitErr != nil {
		r.log.Error("Command failed",
			slog.Any("args", args),
			slog.String("stdout", result.Stdout),
			slog.String("stderr", result.Stderr))

		return nil, &CommandError{
			Args:   args,
			Stdout: result.Stdout,
			Stderr: result.Stderr,
			Err:    waitErr,
		}
	}

	if copyErr != nil {
		return nil, fmt.Errorf("read output: %w", copyErr)
	}

	return result, nil
}
