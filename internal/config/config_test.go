// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/mkinitramfs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
build_dir = "/tmp/initramfs/build"
out_dir = "/tmp/initramfs/out"
clean = true
shebang = "#!/bin/sh -l"
owner = 0

paths = ["/lib", "/lib/modules", "/bin"]
dependencies = ["/bin/busybox"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadTOML(t *testing.T) {
	store, err := config.LoadTOML(writeConfig(t, testConfig))
	require.NoError(t, err)

	buildDir, exists := store.Get("build_dir")
	require.True(t, exists)
	assert.Equal(t, "/tmp/initramfs/build", buildDir)

	clean, exists := store.Get("clean")
	require.True(t, exists)
	assert.Equal(t, true, clean)

	owner, exists := store.Get("owner")
	require.True(t, exists)
	assert.Equal(t, int64(0), owner)

	paths, exists := store.Get("paths")
	require.True(t, exists)
	assert.Equal(t, []any{"/lib", "/lib/modules", "/bin"}, paths)

	_, exists = store.Get("unknown")
	assert.False(t, exists)
}

func TestLoadTOMLMissingFile(t *testing.T) {
	_, err := config.LoadTOML(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTOMLInvalid(t *testing.T) {
	_, err := config.LoadTOML(writeConfig(t, "build_dir = ["))
	require.Error(t, err)
}

func TestOverride(t *testing.T) {
	store := config.New(map[string]any{
		"clean":     false,
		"build_dir": "/tmp/b",
	})

	overridden := store.Override(map[string]any{"clean": true})

	clean, _ := overridden.Get("clean")
	assert.Equal(t, true, clean)

	buildDir, _ := overridden.Get("build_dir")
	assert.Equal(t, "/tmp/b", buildDir)

	// The original store is unchanged.
	clean, _ = store.Get("clean")
	assert.Equal(t, false, clean)
}
