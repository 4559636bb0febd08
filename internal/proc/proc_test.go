// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package proc_test

import (
	"testing"

	"github.com/aibor/mkinitramfs/internal/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun(t *testing.T) {
	runner := proc.NewRunner(nil)

	result, err := runner.Run(t.Context(), "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)

	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestRunNonZeroExit(t *testing.T) {
	runner := proc.NewRunner(nil)

	_, err := runner.Run(t.Context(), "sh", "-c", "echo some out; echo failed >&2; exit 3")
	require.Error(t, err)

	var cmdErr *proc.CommandError

	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "some out\n", cmdErr.Stdout)
	assert.Equal(t, "failed\n", cmdErr.Stderr)
	assert.ErrorContains(t, err, "failed")
}

func TestRunNoCommand(t *testing.T) {
	runner := proc.NewRunner(nil)

	_, err := runner.Run(t.Context())
	require.ErrorIs(t, err, proc.ErrNoCommand)
}

func TestRunUnknownCommand(t *testing.T) {
	runner := proc.NewRunner(nil)

	_, err := runner.Run(t.Context(), "this-command-does-not-exist")
	require.Error(t, err)
}
