// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cavaliergopher/cpio"
)

const (
	numLinks = 2

	defaultArchiveName = "initramfs.cpio"
	outDirMode         = 0o755
)

// CPIOWriter writes build tree entries as CPIO records.
type CPIOWriter struct {
	cpioWriter *cpio.Writer
}

// NewCPIOWriter creates a new archive writer.
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	return &CPIOWriter{cpio.NewWriter(w)}
}

// Close closes the [CPIOWriter]. Flush is called by the underlying
// closer.
func (w *CPIOWriter) Close() error {
	err := w.cpioWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// writeHeader writes the cpio header.
func (w *CPIOWriter) writeHeader(hdr *cpio.Header) error {
	err := w.cpioWriter.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", hdr.Name, err)
	}

	return nil
}

// WriteDirectory adds a directory entry for the given path to the
// archive.
func (w *CPIOWriter) WriteDirectory(path string) error {
	header := &cpio.Header{
		Name:  path,
		Mode:  cpio.TypeDir | cpio.ModePerm,
		Links: numLinks,
	}

	return w.writeHeader(header)
}

// WriteLink adds a symbolic link for the given path pointing to the
// given target.
func (w *CPIOWriter) WriteLink(path, target string) error {
	header := &cpio.Header{
		Name: path,
		Mode: cpio.TypeSymlink | cpio.ModePerm,
		Size: int64(len(target)),
	}

	err := w.writeHeader(header)
	if err != nil {
		return err
	}

	// Body of a link is the path of the target file.
	_, err = w.cpioWriter.Write([]byte(target))
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}

// WriteRegular copies the existing file from source into the archive.
// With mode 0 the source file's mode is kept.
func (w *CPIOWriter) WriteRegular(path string, source fs.File, mode fs.FileMode) error {
	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("read info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	cpioHdr, err := cpio.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("create header: %w", err)
	}

	cpioHdr.Name = path
	if mode != 0 {
		cpioHdr.Mode = cpio.FileMode(mode)
	}

	err = w.writeHeader(cpioHdr)
	if err != nil {
		return err
	}

	_, err = io.Copy(w.cpioWriter, source)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}

// NewCPIOPack returns a pack hook that archives the completed build
// tree into the configured output directory under the given file
// name. An empty name falls back to "initramfs.cpio".
func NewCPIOPack(name string) Hook {
	if name == "" {
		name = defaultArchiveName
	}

	fn := func(_ context.Context, bctx *Context) ([]string, error) {
		err := os.MkdirAll(bctx.Config.OutDir, outDirMode)
		if err != nil {
			return nil, fmt.Errorf("create out dir: %w", err)
		}

		path := filepath.Join(bctx.Config.OutDir, name)

		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create archive file: %w", err)
		}
		defer file.Close()

		writer := NewCPIOWriter(file)

		err = writeTree(writer, bctx.Config.BuildDir)
		if err != nil {
			_ = writer.Close()
			_ = os.Remove(path)

			return nil, fmt.Errorf("write archive: %w", err)
		}

		err = writer.Close()
		if err != nil {
			_ = os.Remove(path)
			return nil, err
		}

		bctx.Log.Info("Wrote initramfs archive", slog.String("path", path))

		return nil, nil
	}

	return Hook{Name: "cpio_pack", Func: fn}
}

// writeTree writes all entries below root into the given writer,
// with paths relative to root.
func writeTree(writer *CPIOWriter, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("rel path for %s: %w", path, err)
		}

		switch {
		case entry.IsDir():
			return writer.WriteDirectory(rel)
		case entry.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("readlink %s: %w", path, err)
			}

			return writer.WriteLink(rel, target)
		default:
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer file.Close()

			return writer.WriteRegular(rel, file, 0)
		}
	})
}
