// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fsops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

const defaultDirMode = 0o755

// DefaultFileMode is the permission mode for written files unless a
// caller overrides it.
const DefaultFileMode = 0o644

// Ops provides filesystem operations scoped to a build root directory.
//
// Every path created or modified through an [Ops] ends up owned by the
// configured numeric identity, used as both user and group.
type Ops struct {
	root  string
	owner int
	log   *slog.Logger
}

// New creates a new [Ops] for the given build root. The owner id is
// applied as user and group to every touched path.
func New(root string, owner int, logger *slog.Logger) *Ops {
	if logger == nil {
		logger = slog.Default()
	}

	return &Ops{
		root:  root,
		owner: owner,
		log:   logger,
	}
}

// Root returns the build root path.
func (o *Ops) Root() string {
	return o.root
}

// Resolve maps a name into the build root. An absolute name is
// reinterpreted as relative to the build root, so a resolved path can
// never escape it.
func (o *Ops) Resolve(name string) string {
	cleaned := filepath.Clean(string(filepath.Separator) + name)
	return filepath.Join(o.root, strings.TrimPrefix(cleaned, string(filepath.Separator)))
}

// EnsureDir ensures the directory for the given in-root name and all
// missing ancestors exist. Existing directories are left untouched
// except for an ownership check.
func (o *Ops) EnsureDir(name string) error {
	return o.ensurePath(o.Resolve(name))
}

// ensurePath ascends to the nearest existing ancestor of path, creates
// the missing chain top-down and applies ownership to every created
// directory as well as the target.
func (o *Ops) ensurePath(path string) error {
	var missing []string

	current := path

	for {
		info, err := os.Stat(current)
		if err == nil {
			if !info.IsDir() {
				return &PathError{Op: "mkdir", Path: current, Err: ErrNotDir}
			}

			break
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", current, err)
		}

		missing = append(missing, current)

		parent := filepath.Dir(current)
		if parent == current {
			break
		}

		current = parent
	}

	for idx := len(missing) - 1; idx >= 0; idx-- {
		err := os.Mkdir(missing[idx], defaultDirMode)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("mkdir %s: %w", missing[idx], err)
		}

		o.log.Debug("Created directory", slog.String("path", missing[idx]))

		err = o.EnforceOwnership(missing[idx])
		if err != nil {
			return err
		}
	}

	if len(missing) == 0 {
		return o.EnforceOwnership(path)
	}

	return nil
}

// EnforceOwnership sets owner and group of path to the configured
// identity. It is a no-op if both already match.
func (o *Ops) EnforceOwnership(path string) error {
	var stat unix.Stat_t

	err := unix.Stat(path, &stat)
	if err != nil {
		return &PathError{Op: "stat", Path: path, Err: err}
	}

	if int(stat.Uid) == o.owner && int(stat.Gid) == o.owner {
		o.log.Debug("Ownership already correct",
			slog.String("path", path),
			slog.Int("owner", o.owner))

		return nil
	}

	err = os.Chown(path, o.owner, o.owner)
	if err != nil {
		return fmt.Errorf("chown %s: %w", path, err)
	}

	o.log.Debug("Set owner",
		slog.String("path", path),
		slog.Int("owner", o.owner))

	return nil
}

// WriteFile joins lines with newlines and writes them to the file for
// name, replacing any existing content. With inRoot set, name is
// resolved relative to the build root. The given mode is applied even
// if the file existed before.
func (o *Ops) WriteFile(name string, lines []string, mode fs.FileMode, inRoot bool) error {
	path := name
	if inRoot {
		path = o.Resolve(name)
	}

	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), mode)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	// os.WriteFile applies the mode on creation only.
	err = os.Chmod(path, mode)
	if err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}

	o.log.Info("Wrote file",
		slog.String("path", path),
		slog.String("mode", mode.String()))

	return o.EnforceOwnership(path)
}

// CopyFile copies source to dest, preserving mode and modification
// time. An empty dest defaults to the source path. With inRoot set,
// dest is resolved relative to the build root. Missing parent
// directories of the destination are created. An existing destination
// is overwritten with a warning.
func (o *Ops) CopyFile(source, dest string, inRoot bool) error {
	if dest == "" {
		o.log.Debug("No destination specified, using source",
			slog.String("source", source))

		dest = source
	}

	path := dest
	if inRoot {
		path = o.Resolve(dest)
	}

	sourceInfo, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("stat %s: %w", source, err)
	}

	err = o.ensurePath(filepath.Dir(path))
	if err != nil {
		return err
	}

	destInfo, err := os.Stat(path)
	if err == nil {
		// Opening the destination would truncate the source.
		if os.SameFile(sourceInfo, destInfo) {
			return &PathError{Op: "copy", Path: path, Err: ErrSameFile}
		}

		o.log.Warn("File already exists, overwriting",
			slog.String("path", path))
	}

	o.log.Info("Copying file",
		slog.String("source", source),
		slog.String("dest", path))

	err = copyFile(source, path)
	if err != nil {
		return err
	}

	return o.EnforceOwnership(path)
}

func copyFile(source, dest string) error {
	src, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open %s: %w", source, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", source, err)
	}

	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", dest, err)
	}

	err = dst.Close()
	if err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}

	// The destination may have existed with a different mode.
	err = os.Chmod(dest, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("chmod %s: %w", dest, err)
	}

	err = os.Chtimes(dest, info.ModTime(), info.ModTime())
	if err != nil {
		return fmt.Errorf("chtimes %s: %w", dest, err)
	}

	return nil
}
