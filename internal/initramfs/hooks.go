// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"context"
	"log/slog"

	"github.com/aibor/mkinitramfs/internal/fsops"
	"github.com/aibor/mkinitramfs/internal/proc"
)

// Stage is a named point in the build pipeline owning an ordered list
// of hooks.
type Stage string

// All stages, in pipeline order. The three main init stages are
// skipped entirely when at least one hook is registered for
// [StageCustomInit].
const (
	StageBuildPre   Stage = "build_pre"
	StageBuildTasks Stage = "build_tasks"
	StageInitPre    Stage = "init_pre"
	StageInitMain   Stage = "init_main"
	StageInitLate   Stage = "init_late"
	StageInitMount  Stage = "init_mount"
	StageCustomInit Stage = "custom_init"
	StageInitFinal  Stage = "init_final"
	StagePack       Stage = "pack"
)

// Context is the build context passed to every hook. Hooks share it
// and may mutate the build tree through FS.
type Context struct {
	Config *Config
	FS     *fsops.Ops
	Proc   *proc.Runner
	Log    *slog.Logger
}

// HookFunc is the callable invoked at a stage. It may contribute init
// script lines by returning them. A nil or empty result means the
// hook produced no output, which is logged but not an error. A
// returned error aborts the whole pipeline.
type HookFunc func(ctx context.Context, bctx *Context) ([]string, error)

// Hook is a named [HookFunc]. The name shows up in logs and errors.
type Hook struct {
	Name string
	Func HookFunc
}

// Registry maps stages to their ordered hook lists.
type Registry map[Stage][]Hook

// Register appends hooks to the given stage, preserving registration
// order.
func (r Registry) Register(stage Stage, hooks ...Hook) {
	r[stage] = append(r[stage], hooks...)
}

// Has reports whether at least one hook is registered for the stage.
func (r Registry) Has(stage Stage) bool {
	return len(r[stage]) > 0
}

// RunHooks invokes all hooks registered for the given stage in order
// and collects their output lines, preceded by a stage sentinel
// comment. A hook error aborts the stage; no partial output is
// returned.
func (g *Generator) RunHooks(ctx context.Context, stage Stage) ([]string, error) {
	g.log.Info("Running init stage", slog.String("stage", string(stage)))

	out := []string{"# Begin " + string(stage)}

	for _, hook := range g.registry[stage] {
		g.log.Debug("Running hook",
			slog.String("stage", string(stage)),
			slog.String("hook", hook.Name))

		lines, err := hook.Func(ctx, g.bctx)
		if err != nil {
			return nil, &HookError{Stage: stage, Hook: hook.Name, Err: err}
		}

		if len(lines) == 0 {
			g.log.Warn("Hook returned no output",
				slog.String("stage", string(stage)),
				slog.String("hook", hook.Name))

			continue
		}

		out = append(out, lines...)
	}

	return out, nil
}

// invokeHooks runs the hooks registered for a build stage, discarding
// any output lines.
func (g *Generator) invokeHooks(ctx context.Context, stage Stage) error {
	hooks := g.registry[stage]
	if len(hooks) == 0 {
		return nil
	}

	g.log.Info("Running custom tasks", slog.String("stage", string(stage)))

	for _, hook := range hooks {
		g.log.Debug("Running hook",
			slog.String("stage", string(stage)),
			slog.String("hook", hook.Name))

		_, err := hook.Func(ctx, g.bctx)
		if err != nil {
			return &HookError{Stage: stage, Hook: hook.Name, Err: err}
		}
	}

	return nil
}
