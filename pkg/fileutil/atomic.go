// Package fileutil writes files so readers never see half of them, and
// reads small files with a size cap.
package fileutil

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Moushudyx/game-sl/internal/errors"
)

// PartialSuffix marks in-progress files created by AtomicWriteFunc.
const PartialSuffix = ".partial"

// AtomicWriteFunc streams content produced by write into path atomically.
// The content goes to a hidden "."+base+"-*.partial" file in the same
// directory, which is renamed over path once write and close succeed.
// On any failure the partial file is removed and path is left untouched.
//
// The parent directory must exist.
func AtomicWriteFunc(path string, perm os.FileMode, write func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+"-*"+PartialSuffix)
	if err != nil {
		return errors.IOf(err, "creating partial file for %s", base)
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.IOf(err, "setting permissions on %s", base)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return errors.IOf(err, "closing partial file for %s", base)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.IOf(err, "replacing %s", path)
	}
	return nil
}

// AtomicWriteFile writes data to path atomically.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return AtomicWriteFunc(path, perm, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return errors.IOf(err, "writing %s", filepath.Base(path))
		}
		return nil
	})
}

// AtomicWriteJSON writes v as 2-space indented JSON with a trailing newline,
// mode 0644.
func AtomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return AtomicWriteFile(path, append(data, '\n'), 0o644)
}

// AtomicWriteYAML writes v as YAML, mode 0644.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.Marshal panics on unsupported types
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	return AtomicWriteFile(path, data, 0o644)
}
