// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/aibor/mkinitramfs/internal/fsops"
	"github.com/aibor/mkinitramfs/internal/proc"
)

// Generator orchestrates the initramfs build pipeline.
//
// Create one with [New], then call [Generator.Build],
// [Generator.GenerateInit] and [Generator.Pack] in that order. A
// failed run leaves the build tree as-is; recover by re-running with
// the clean setting enabled.
type Generator struct {
	cfg      *Config
	registry Registry
	fs       *fsops.Ops
	log      *slog.Logger
	bctx     *Context

	initState initState
}

// New creates a [Generator] from the given configuration store and
// hook registry. The store's settings are validated here, before any
// build step runs.
func New(store Store, registry Registry, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := NewConfig(store)
	if err != nil {
		return nil, err
	}

	if registry == nil {
		registry = Registry{}
	}

	ops := fsops.New(cfg.BuildDir, cfg.Owner, logger)

	gen := &Generator{
		cfg:      cfg,
		registry: registry,
		fs:       ops,
		log:      logger,
	}

	gen.bctx = &Context{
		Config: cfg,
		FS:     ops,
		Proc:   proc.NewRunner(logger),
		Log:    logger,
	}

	return gen, nil
}

// Config returns the validated configuration.
func (g *Generator) Config() *Config {
	return g.cfg
}

// Build runs the build phase: optional clean of the build root, the
// built-in structure generation followed by custom build_pre hooks,
// then the built-in dependency deployment followed by custom
// build_tasks hooks.
func (g *Generator) Build(ctx context.Context) error {
	err := g.cleanBuildDir()
	if err != nil {
		return err
	}

	g.log.Info("Running pre build tasks")

	err = g.generateStructure()
	if err != nil {
		return err
	}

	err = g.invokeHooks(ctx, StageBuildPre)
	if err != nil {
		return err
	}

	g.log.Info("Running build tasks")

	err = g.deployDependencies()
	if err != nil {
		return err
	}

	return g.invokeHooks(ctx, StageBuildTasks)
}

// cleanBuildDir removes the build root if the clean setting is
// enabled and the directory exists. A missing build root is not an
// error. Without clean an existing build root is reused as-is.
func (g *Generator) cleanBuildDir() error {
	if !g.cfg.Clean {
		g.log.Debug("Not cleaning build dir",
			slog.String("path", g.cfg.BuildDir))

		return nil
	}

	_, err := os.Stat(g.cfg.BuildDir)
	if errors.Is(err, fs.ErrNotExist) {
		g.log.Info("Build dir not present, not cleaning",
			slog.String("path", g.cfg.BuildDir))

		return nil
	}

	if err != nil {
		return fmt.Errorf("stat build dir: %w", err)
	}

	g.log.Warn("Cleaning build dir", slog.String("path", g.cfg.BuildDir))

	err = os.RemoveAll(g.cfg.BuildDir)
	if err != nil {
		return fmt.Errorf("clean build dir: %w", err)
	}

	return nil
}

// Pack runs all registered pack hooks over the completed build tree.
// Without pack hooks the build root itself is the final artifact,
// which is logged but not an error.
func (g *Generator) Pack(ctx context.Context) error {
	if !g.registry.Has(StagePack) {
		g.log.Warn("No pack hooks registered, the final build is the build dir",
			slog.String("path", g.cfg.BuildDir))

		return nil
	}

	g.log.Info("Running pack hooks")

	return g.invokeHooks(ctx, StagePack)
}
