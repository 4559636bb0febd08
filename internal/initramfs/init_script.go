// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"context"
)

// Set on build.
var version = "dev"

const (
	initFileName = "init"
	initFileMode = 0o755
	initTrailer  = "# END INIT"
)

// initState tracks the progress of init script generation.
type initState int

const (
	statePending initState = iota
	statePreHooksRun
	stateMainOrCustomRun
	stateFinalHooksRun
	stateWritten
	stateFailed
)

// initMainStages are the standard init body stages, replaced entirely
// by custom_init when that stage has hooks.
var initMainStages = []Stage{StageInitMain, StageInitLate, StageInitMount}

// GenerateInit composes the init script from the init hook stages and
// writes it as executable "init" file into the build root. The script
// starts with the configured shebang and a provenance comment and
// ends with a terminating sentinel. Any hook error aborts generation
// and no file is written.
func (g *Generator) GenerateInit(ctx context.Context) error {
	g.log.Info("Generating init script")
	g.initState = statePending

	lines := []string{
		g.cfg.Shebang,
		"# Generated by mkinitramfs " + version,
	}

	out, err := g.RunHooks(ctx, StageInitPre)
	if err != nil {
		g.initState = stateFailed
		return err
	}

	lines = append(lines, out...)
	g.initState = statePreHooksRun

	body, err := g.initBody(ctx)
	if err != nil {
		g.initState = stateFailed
		return err
	}

	lines = append(lines, body...)
	g.initState = stateMainOrCustomRun

	out, err = g.RunHooks(ctx, StageInitFinal)
	if err != nil {
		g.initState = stateFailed
		return err
	}

	lines = append(lines, out...)
	g.initState = stateFinalHooksRun

	lines = append(lines, initTrailer)

	err = g.fs.WriteFile(initFileName, lines, initFileMode, true)
	if err != nil {
		g.initState = stateFailed
		return err
	}

	g.initState = stateWritten

	return nil
}

// initBody returns the main part of the init script. With hooks
// registered for custom_init, that stage replaces the three standard
// body stages entirely.
func (g *Generator) initBody(ctx context.Context) ([]string, error) {
	if g.registry.Has(StageCustomInit) {
		return g.RunHooks(ctx, StageCustomInit)
	}

	var lines []string

	for _, stage := range initMainStages {
		out, err := g.RunHooks(ctx, stage)
		if err != nil {
			return nil, err
		}

		lines = append(lines, out...)
	}

	return lines, nil
}
