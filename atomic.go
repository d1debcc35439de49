package adrules

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// writeFileAtomic writes to a hidden temporary file next to filename and renames
// it into place once everything was flushed to disk. On failure the temporary
// file is removed and filename is left untouched.
func writeFileAtomic(filename string, write func(w io.Writer) error) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	fail := func(err error) error {
		f.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to write %s", filename)
	}

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to write %s", filename)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to write %s", filename)
	}
	return nil
}
