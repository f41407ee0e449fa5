// Package editor runs the user's text editor for config files and remarks.
package editor

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/pkg/fileutil"
)

// ErrNoEditor indicates no editor command could be determined.
var ErrNoEditor = errors.NewSentinel(errors.KindNotFound, "no editor found")

// Open edits path in the user's editor and waits for it to exit.
// $EDITOR and $VISUAL may carry arguments, e.g. "code --wait".
func Open(path string) error {
	fields, err := command(os.Getenv, exec.LookPath, runtime.GOOS)
	if err != nil {
		return err
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", fields[0])
	}
	return nil
}

// EditText opens initial in the editor through a temporary file named after
// hint, e.g. "Celeste-Backup-20240102-030405.txt", and returns the saved
// text. Trailing line breaks added by the editor are dropped.
func EditText(hint, initial string) (string, error) {
	dir, err := os.MkdirTemp("", "gamesl-edit-*")
	if err != nil {
		return "", errors.IOf(err, "creating temp directory")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(hint))
	if err := os.WriteFile(path, []byte(initial), 0o600); err != nil {
		return "", errors.IOf(err, "writing %s", path)
	}

	if err := Open(path); err != nil {
		return "", err
	}

	data, err := fileutil.ReadFileLimit(path, fileutil.MaxRemarkSize)
	if err != nil {
		return "", errors.Wrap(err, "reading edited text")
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// command picks the editor: $EDITOR, then $VISUAL, then notepad on
// Windows, else nano and finally vi when installed.
func command(getenv func(string) string, lookPath func(string) (string, error), goos string) ([]string, error) {
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(getenv(key)); len(fields) > 0 {
			return fields, nil
		}
	}

	fallbacks := []string{"nano", "vi"}
	if goos == "windows" {
		fallbacks = []string{"notepad"}
	}
	for _, name := range fallbacks {
		if _, err := lookPath(name); err == nil {
			return []string{name}, nil
		}
	}
	return nil, errors.Wrapf(ErrNoEditor, "set $EDITOR, tried %s", strings.Join(fallbacks, ", "))
}
