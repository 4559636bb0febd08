// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fsops

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotDir is returned if a path exists but is not a directory.
	ErrNotDir = errors.New("not a directory")

	// ErrSameFile is returned if a copy destination resolves to the
	// source file itself.
	ErrSameFile = errors.New("source and destination are the same file")
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
