// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/mkinitramfs/internal/config"
	"github.com/aibor/mkinitramfs/internal/initramfs"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func run(ctx context.Context, flags *Flags) error {
	store, err := config.LoadTOML(flags.configPath)
	if err != nil {
		return err
	}

	if flags.clean {
		store = store.Override(map[string]any{"clean": true})
	}

	registry := initramfs.Registry{}
	if !flags.noPack {
		registry.Register(
			initramfs.StagePack,
			initramfs.NewCPIOPack(flags.outFile),
		)
	}

	gen, err := initramfs.New(store, registry, slog.Default())
	if err != nil {
		return err
	}

	err = gen.Build(ctx)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	err = gen.GenerateInit(ctx)
	if err != nil {
		return fmt.Errorf("generate init: %w", err)
	}

	err = gen.Pack(ctx)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	return nil
}

func handleParseArgsError(err error) int {
	// [flag.ErrHelp] is returned when help or version is requested, so
	// exit without error in this case.
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	// The flag set already prints parse errors.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	flags := NewFlags(args[0], cfg.Stderr)

	err := flags.ParseArgs(args[1:])
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.Debug())

	err = run(ctx, flags)
	if err != nil {
		slog.Error(err.Error())
		return -1
	}

	return 0
}
