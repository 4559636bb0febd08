// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package initramfs implements the initramfs build pipeline. A
// [Generator] materializes a directory structure and required files
// under a build root, composes the init script from registered hooks
// and delegates final packing to registered pack hooks.
//
// The pipeline is strictly sequential. Stages run in fixed order,
// hooks run in registration order within their stage, and built-in
// tasks always precede custom hooks of the same stage. The first
// error aborts the whole pipeline; re-running with the clean setting
// enabled discards any partial state.
package initramfs
