// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fsops provides the primitive filesystem operations used to
// populate an initramfs build root. All operations are idempotent where
// possible and leave every touched path owned by a single configured
// numeric identity.
package fsops
