package transfer

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// copyFile duplicates src into dst, overwriting any existing file. Permission
// bits and modification time are carried over from the source.
func copyFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// The file may have pre-existed with different permissions; O_CREATE
	// only applies the mode on creation.
	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return fs.Chtimes(dst, time.Now(), info.ModTime())
}

// copyTree recursively copies the tree rooted at src into dst, creating dst
// and any missing intermediate directories. Existing destination files are
// overwritten file-by-file; files only present under dst are left alone.
func copyTree(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := dst
		if rel != "." {
			target = filepath.Join(dst, rel)
		}

		if info.IsDir() {
			return fs.MkdirAll(target, info.Mode().Perm())
		}
		return copyFile(fs, path, target)
	})
}
