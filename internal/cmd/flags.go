// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/adrg/xdg"
)

// Set on build.
var version = "dev"

const (
	configFileName    = "mkinitramfs/config.toml"
	systemConfigPath  = "/etc/mkinitramfs/config.toml"
	defaultArchiveOut = "initramfs.cpio"
)

// DefaultConfigPath returns the user's XDG config file if present and
// the system wide path otherwise.
func DefaultConfigPath() string {
	path, err := xdg.SearchConfigFile(configFileName)
	if err != nil {
		return systemConfigPath
	}

	return path
}

type Flags struct {
	name    string
	flagSet *flag.FlagSet

	configPath string
	outFile    string
	clean      bool
	noPack     bool

	debugFlag   bool
	versionFlag bool
}

func NewFlags(name string, output io.Writer) *Flags {
	flags := &Flags{
		name:       name,
		configPath: DefaultConfigPath(),
		outFile:    defaultArchiveOut,
	}

	flags.initFlagset(output)

	return flags
}

func (f *Flags) initFlagset(output io.Writer) {
	fs := flag.NewFlagSet(f.name+" [flags...]", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(
		&f.configPath,
		"config",
		f.configPath,
		"path to the TOML configuration file",
	)

	fs.StringVar(
		&f.outFile,
		"out-file",
		f.outFile,
		"file name of the CPIO archive written to the output directory",
	)

	fs.BoolVar(
		&f.clean,
		"clean",
		f.clean,
		"remove an existing build dir before building, regardless of "+
			"the configured clean setting",
	)

	fs.BoolVar(
		&f.noPack,
		"no-pack",
		f.noPack,
		"do not register the built-in CPIO pack hook. The build dir is "+
			"the final artifact.",
	)

	fs.BoolVar(
		&f.debugFlag,
		"debug",
		f.debugFlag,
		"enable debug output",
	)

	fs.BoolVar(
		&f.versionFlag,
		"version",
		f.versionFlag,
		"show version and exit",
	)

	f.flagSet = fs
}

func (f *Flags) Debug() bool {
	return f.debugFlag
}

func (f *Flags) printVersionInformation() {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	fmt.Fprintf(f.flagSet.Output(), "%s: %s\n\n", f.name, version)
	fmt.Fprintln(f.flagSet.Output(), buildInfo.String())
}

func (f *Flags) ParseArgs(args []string) error {
	if err := f.flagSet.Parse(args); err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using
	// [flag.ErrHelp] the main binary is supposed to return with a non
	// error exit code.
	if f.versionFlag {
		f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: flag.ErrHelp}
	}

	return nil
}
