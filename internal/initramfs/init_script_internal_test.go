// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStore map[string]any

func (s testStore) Get(name string) (any, bool) {
	value, exists := s[name]
	return value, exists
}

func newTestGenerator(t *testing.T, registry Registry) *Generator {
	t.Helper()

	dir := t.TempDir()

	gen, err := New(testStore{
		"build_dir": filepath.Join(dir, "build"),
		"out_dir":   filepath.Join(dir, "out"),
		"clean":     true,
		"owner":     os.Getuid(),
	}, registry, nil)
	require.NoError(t, err)

	return gen
}

func TestGenerateInitStateMachine(t *testing.T) {
	tests := []struct {
		name          string
		failStage     Stage
		expectedState initState
	}{
		{
			name:          "written",
			expectedState: stateWritten,
		},
		{
			name:          "failed pre",
			failStage:     StageInitPre,
			expectedState: stateFailed,
		},
		{
			name:          "failed main",
			failStage:     StageInitMain,
			expectedState: stateFailed,
		},
		{
			name:          "failed final",
			failStage:     StageInitFinal,
			expectedState: stateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := Registry{}

			if tt.failStage != "" {
				registry.Register(tt.failStage, Hook{
					Name: "broken",
					Func: func(context.Context, *Context) ([]string, error) {
						return nil, errors.New("boom")
					},
				})
			}

			gen := newTestGenerator(t, registry)

			require.NoError(t, gen.Build(t.Context()))

			err := gen.GenerateInit(t.Context())
			initPath := filepath.Join(gen.cfg.BuildDir, initFileName)

			if tt.expectedState == stateFailed {
				require.ErrorIs(t, err, &HookError{})

				// A failed generation must not write the init file.
				_, err = os.Stat(initPath)
				require.ErrorIs(t, err, os.ErrNotExist)
			} else {
				require.NoError(t, err)

				_, err = os.Stat(initPath)
				require.NoError(t, err)
			}

			assert.Equal(t, tt.expectedState, gen.initState)
		})
	}
}
