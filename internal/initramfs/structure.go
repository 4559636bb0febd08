// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import "log/slog"

// generateStructure creates the required directory skeleton under the
// build root. It is idempotent and safe to run against an existing
// tree.
func (g *Generator) generateStructure() error {
	g.log.Info("Generating build structure",
		slog.String("build_dir", g.cfg.BuildDir))

	err := g.fs.EnsureDir("/")
	if err != nil {
		return err
	}

	for _, path := range g.cfg.Paths {
		err := g.fs.EnsureDir(path)
		if err != nil {
			return err
		}
	}

	return nil
}

// deployDependencies copies each configured dependency into the build
// tree, mirroring its source path. Missing parent directories are
// created on demand.
func (g *Generator) deployDependencies() error {
	for _, dependency := range g.cfg.Dependencies {
		g.log.Debug("Deploying dependency",
			slog.String("path", dependency))

		err := g.fs.CopyFile(dependency, "", true)
		if err != nil {
			return err
		}
	}

	return nil
}
