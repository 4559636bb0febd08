// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/mkinitramfs/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (int, string) {
	t.Helper()

	var output bytes.Buffer

	cfg := cmd.IO{
		Stdin:  bytes.NewReader(nil),
		Stdout: &output,
		Stderr: &output,
	}

	rc := cmd.Run(t.Context(), append([]string{"mkinitramfs"}, args...), cfg)

	return rc, output.String()
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	buildDir := filepath.Join(dir, "build")
	outDir := filepath.Join(dir, "out")

	source := filepath.Join(dir, "busybox")
	require.NoError(t, os.WriteFile(source, []byte("busybox"), 0o755))

	configFile := filepath.Join(dir, "config.toml")
	configContent := fmt.Sprintf(`
build_dir = %q
out_dir = %q
clean = true

paths = ["/lib", "/bin"]
dependencies = [%q]
`, buildDir, outDir, source)
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0o644))

	rc, output := runCmd(t, "-config", configFile)
	require.Equal(t, 0, rc, output)

	_, err := os.Stat(filepath.Join(buildDir, "init"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, "initramfs.cpio"))
	require.NoError(t, err)
}

func TestRunNoPack(t *testing.T) {
	dir := t.TempDir()

	configFile := filepath.Join(dir, "config.toml")
	configContent := fmt.Sprintf(`
build_dir = %q
out_dir = %q
clean = true
`, filepath.Join(dir, "build"), filepath.Join(dir, "out"))
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0o644))

	rc, output := runCmd(t, "-config", configFile, "-no-pack")
	require.Equal(t, 0, rc, output)

	// No pack hooks, no archive, just a warning.
	_, err := os.Stat(filepath.Join(dir, "out"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, output, "No pack hooks registered")
}

func TestRunMissingConfigFile(t *testing.T) {
	rc, _ := runCmd(t, "-config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, -1, rc)
}

func TestRunMissingRequiredSetting(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(
		configFile, []byte(`build_dir = "/tmp/b"`), 0o644))

	rc, output := runCmd(t, "-config", configFile)
	assert.Equal(t, -1, rc)
	assert.Contains(t, output, "out_dir")
}

func TestRunHelp(t *testing.T) {
	rc, output := runCmd(t, "-help")
	assert.Equal(t, 0, rc)
	assert.Contains(t, output, "-config")
}

func TestRunVersion(t *testing.T) {
	rc, _ := runCmd(t, "-version")
	assert.Equal(t, 0, rc)
}

func TestRunUnknownFlag(t *testing.T) {
	rc, _ := runCmd(t, "-unknown")
	assert.Equal(t, -1, rc)
}
